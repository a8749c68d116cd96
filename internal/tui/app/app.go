// Package app provides the main TUI application that wires all views together.
package app

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/clock"
	"github.com/mindvr/reststyle/internal/config"
	"github.com/mindvr/reststyle/internal/log"
	"github.com/mindvr/reststyle/internal/preview"
	"github.com/mindvr/reststyle/internal/quiz"
	"github.com/mindvr/reststyle/internal/session"
	"github.com/mindvr/reststyle/internal/share"
	"github.com/mindvr/reststyle/internal/tui"
	"github.com/mindvr/reststyle/internal/tui/commands"
	"github.com/mindvr/reststyle/internal/tui/views"
)

// Deps are the collaborators the App needs. Persister, Kakao and Opener may
// be nil; the matching features are then disabled.
type Deps struct {
	Cfg       *config.Config
	Dir       string
	Logger    *log.Logger
	Persister *session.Persister
	Resolver  *share.Resolver
	Kakao     *share.KakaoSharer
	Opener    share.Opener
}

// App is the main TUI application that wires all views together.
type App struct {
	model     *tui.Model
	deps      Deps
	questions []content.Question

	timers  *clock.Dispatcher
	session *quiz.Session
	toast   *share.Toast
	help    help.Model

	// View models
	startView   views.StartModel
	quizView    views.QuizModel
	loadingView views.LoadingModel
	resultView  views.ResultModel
	panelView   views.PanelModel
}

// New creates an App and restores the saved session, if any.
func New(d Deps) *App {
	model := tui.NewModel(d.Cfg, d.Dir, d.Logger)
	d.Cfg = model.Cfg
	if d.Resolver == nil {
		d.Resolver = &share.Resolver{}
	}

	questions := content.Questions()
	timers := clock.NewDispatcher(8)

	opts := quiz.Options{
		Questions:    len(questions),
		AutoFinish:   d.Cfg.Quiz.AutoFinish,
		LoadingDelay: d.Cfg.LoadingDelay(),
		Scheduler:    timers,
		Observer:     log.SessionObserver(d.Logger, len(questions)),
	}
	if d.Persister != nil {
		opts.Saver = d.Persister
	}

	a := &App{
		model:     model,
		deps:      d,
		questions: questions,
		timers:    timers,
		session:   quiz.NewSession(opts),
		toast:     share.NewToast(timers, d.Cfg.ToastDuration(), nil),
		help:      help.New(),
	}
	if d.Persister != nil {
		if st := d.Persister.Load(); st != nil {
			a.session.Restore(*st)
		}
	}
	a.loadingView = views.NewLoadingModel(model.Width)
	a.syncViews()
	return a
}

// Session exposes the underlying session.
func (a *App) Session() *quiz.Session {
	return a.session
}

// Close stops pending timers. The saved state is left untouched.
func (a *App) Close() {
	a.session.Close()
	a.toast.Dismiss()
	a.timers.Close()
}

// Init returns the initial commands for the TUI.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		commands.ListenTimersCmd(a.timers),
		a.phaseCmd(),
	)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		a.help.Width = msg.Width
		a.loadingView, _ = a.loadingView.Update(msg)
		a.syncViews()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.Quit):
			return a, tea.Quit
		case key.Matches(msg, tui.DefaultKeyMap.Help):
			a.model.ShowHelp = !a.model.ShowHelp
			a.help.ShowAll = a.model.ShowHelp
			return a, nil
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.TimerFiredMsg:
		prev := a.session.Phase()
		msg.Fn()
		return a, tea.Batch(commands.ListenTimersCmd(a.timers), a.afterTransition(prev))

	case tui.TimersClosedMsg:
		return a, nil

	case spinner.TickMsg:
		if a.session.Phase() != quiz.PhaseLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingView, cmd = a.loadingView.Update(msg)
		return a, cmd
	}

	if cmd, handled := a.handleAction(msg); handled {
		return a, cmd
	}
	return a.routeToView(msg)
}

// handleAction processes messages emitted by views and commands.
func (a *App) handleAction(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case views.StartQuizMsg:
		prev := a.session.Phase()
		a.model.Err = nil
		a.session.Start()
		return a.afterTransition(prev), true

	case views.ChooseMsg:
		prev := a.session.Phase()
		if err := a.session.Choose(msg.Answer); err != nil {
			a.model.Err = err
			return nil, true
		}
		a.model.Err = nil
		return a.afterTransition(prev), true

	case views.FinishMsg:
		prev := a.session.Phase()
		if err := a.session.Finish(); err != nil {
			a.model.Err = err
			return nil, true
		}
		return a.afterTransition(prev), true

	case views.RetryMsg:
		prev := a.session.Phase()
		a.closePanel()
		a.model.Notice = ""
		a.session.Reset()
		return a.afterTransition(prev), true

	case views.ShareMsg:
		if a.model.Sharing {
			return nil, true
		}
		a.model.Sharing = true
		a.resultView.SetSharing(true)
		return commands.ShareCmd(a.deps.Resolver, a.payload()), true

	case tui.ShareDoneMsg:
		a.handleShareDone(msg)
		return nil, true

	case views.PanelCopyMsg:
		return commands.CopyPanelCmd(a.deps.Resolver, msg.Text), true

	case tui.PanelCopiedMsg:
		if msg.Toast != "" {
			a.toast.Show(msg.Toast)
			a.logShare(log.EventShareCopied, "panel", nil)
		}
		return nil, true

	case views.PanelCloseMsg:
		a.closePanel()
		return nil, true

	case views.NaverMsg:
		if a.deps.Opener == nil {
			return nil, true
		}
		return commands.NaverCmd(a.deps.Opener, a.payload()), true

	case tui.NaverOpenedMsg:
		a.logShare(log.EventShareNaver, "naver", msg.Err)
		if msg.Err != nil {
			a.model.Notice = msg.URL
		}
		return nil, true

	case views.KakaoMsg:
		if a.deps.Kakao == nil {
			a.model.Notice = share.MsgKakaoSetup
			return nil, true
		}
		return commands.KakaoCmd(a.deps.Kakao, a.payload()), true

	case tui.KakaoSentMsg:
		a.handleKakaoSent(msg)
		return nil, true

	case tui.PreviewWrittenMsg:
		e := log.LogEvent{Event: log.EventPreviewWritten, Path: msg.Path}
		if msg.Err != nil {
			e.Error = msg.Err.Error()
		}
		_ = a.model.Logger.Append(e)
		return nil, true
	}
	return nil, false
}

func (a *App) handleShareDone(msg tui.ShareDoneMsg) {
	a.model.Sharing = false
	a.resultView.SetSharing(false)
	if errors.Is(msg.Err, share.ErrShareInProgress) {
		return
	}
	res := msg.Result
	switch res.Outcome {
	case share.OutcomeNative:
		a.logShare(log.EventShareNative, res.Outcome.String(), nil)
	case share.OutcomeClipboard, share.OutcomeLegacy:
		a.toast.Show(res.Toast)
		a.logShare(log.EventShareCopied, res.Outcome.String(), nil)
	default:
		a.model.Panel = tui.PanelState{Open: true, Content: res.Text}
		a.panelView = views.NewPanelModel(res.Text, a.model.Width)
		a.logShare(log.EventSharePanel, res.Outcome.String(), errors.Join(res.Errors...))
	}
}

func (a *App) handleKakaoSent(msg tui.KakaoSentMsg) {
	if msg.Err == nil {
		a.model.Notice = ""
		a.logShare(log.EventShareKakao, "kakao", nil)
		return
	}
	var ue *share.UserError
	if errors.As(msg.Err, &ue) {
		a.model.Notice = ue.Message
	} else {
		a.model.Notice = share.MsgKakaoSend
	}
	a.logShare(log.EventShareKakaoFailed, "kakao", msg.Err)
}

func (a *App) logShare(event, channel string, err error) {
	e := log.LogEvent{Event: event, Channel: channel}
	if err != nil {
		e.Error = err.Error()
	}
	_ = a.model.Logger.Append(e)
}

// routeToView forwards remaining messages to the active view.
func (a *App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.model.Panel.Open {
		a.panelView, cmd = a.panelView.Update(msg)
		return a, cmd
	}
	switch a.session.Phase() {
	case quiz.PhaseStart:
		a.startView, cmd = a.startView.Update(msg)
	case quiz.PhaseQuiz:
		a.quizView, cmd = a.quizView.Update(msg)
	case quiz.PhaseLoading:
		a.loadingView, cmd = a.loadingView.Update(msg)
	case quiz.PhaseResult:
		a.resultView, cmd = a.resultView.Update(msg)
	}
	return a, cmd
}

// afterTransition refreshes the views and returns the entry command of a
// newly entered phase.
func (a *App) afterTransition(prev quiz.Phase) tea.Cmd {
	a.syncViews()
	if a.session.Phase() == prev {
		return nil
	}
	return a.phaseCmd()
}

// phaseCmd returns the command a phase needs on entry.
func (a *App) phaseCmd() tea.Cmd {
	switch a.session.Phase() {
	case quiz.PhaseLoading:
		a.loadingView = views.NewLoadingModel(a.model.Width)
		return a.loadingView.Init()
	case quiz.PhaseResult:
		p := a.payload()
		cfg := a.deps.Cfg
		img := preview.ImageURL(cfg.Share.TypeOGBaseURL, cfg.Share.OGImageDefault, p.Index)
		return commands.WritePreviewCmd(a.model.Dir, preview.MetaFor(p, img))
	}
	return nil
}

// syncViews rebuilds the view models from the session.
func (a *App) syncViews() {
	w, h := a.model.Width, a.model.Height
	a.startView = views.NewStartModel(a.deps.Cfg.Brand.Name, len(a.questions), w, h)

	quizView := views.NewQuizModel(a.questions, w)
	quizView.SetAnswered(a.session.Answered())
	a.quizView = quizView

	resultView := views.NewResultModel(a.session.Persona(), a.session.Score(), a.session.Questions(), w)
	resultView.SetSharing(a.model.Sharing)
	a.resultView = resultView

	if a.model.Panel.Open {
		a.panelView = views.NewPanelModel(a.model.Panel.Content, w)
	}
}

func (a *App) payload() share.Payload {
	return share.PayloadFor(a.session, a.deps.Cfg.Share.SiteURL)
}

func (a *App) closePanel() {
	a.model.Panel = tui.PanelState{}
}

// View renders the current application state.
func (a *App) View() string {
	var body string
	if a.model.Panel.Open {
		body = a.panelView.View()
	} else {
		switch a.session.Phase() {
		case quiz.PhaseStart:
			body = a.startView.View()
		case quiz.PhaseQuiz:
			body = a.quizView.View()
		case quiz.PhaseLoading:
			body = a.loadingView.View()
		case quiz.PhaseResult:
			body = a.resultView.View()
		default:
			body = "Unknown state"
		}
	}

	var footer []string
	if msg := a.toast.Message(); msg != "" {
		footer = append(footer, tui.ToastStyle.Render(msg))
	}
	if a.model.Notice != "" {
		footer = append(footer, tui.WarningStyle.Render(a.model.Notice))
	}
	if a.model.Err != nil {
		footer = append(footer, tui.ErrorStyle.Render(a.model.Err.Error()))
	}
	if a.model.CtrlCPending {
		footer = append(footer, tui.DimStyle.Render("Press Ctrl+C again to exit"))
	}
	if a.model.ShowHelp {
		footer = append(footer, a.help.View(tui.DefaultKeyMap))
	}
	if len(footer) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Center, body, "", strings.Join(footer, "\n"))
	}

	return a.centerContent(body)
}

// centerContent centers the given content both horizontally and vertically.
func (a *App) centerContent(body string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		body,
	)
}
