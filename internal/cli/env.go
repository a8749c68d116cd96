package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/clock"
	"github.com/mindvr/reststyle/internal/config"
	"github.com/mindvr/reststyle/internal/kakao"
	"github.com/mindvr/reststyle/internal/log"
	"github.com/mindvr/reststyle/internal/preview"
	"github.com/mindvr/reststyle/internal/quiz"
	"github.com/mindvr/reststyle/internal/session"
	"github.com/mindvr/reststyle/internal/share"
)

// errNoResult is returned by commands that need a session in Result.
var errNoResult = errors.New("no result yet; answer with: reststyle answer A|B, or finish with: reststyle answer")

// env is the per-invocation wiring shared by all commands.
type env struct {
	dir       string
	cfg       *config.Config
	logger    *log.Logger
	store     *session.Store
	persister *session.Persister
}

// loadEnv resolves the app directory and opens its config, log and store.
// A missing or invalid config.yaml falls back to defaults.
func loadEnv() (*env, error) {
	dir := dirFlag
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	logger, err := log.NewLogger(dir)
	if err != nil {
		return nil, err
	}

	cfg, cfgErr := config.ReadConfig(dir)
	if cfgErr != nil {
		cfg = config.DefaultConfig()
		if !errors.Is(cfgErr, os.ErrNotExist) {
			debugf("config ignored: %v", cfgErr)
		}
	}

	store := session.NewStore(dir)
	return &env{
		dir:       dir,
		cfg:       cfg,
		logger:    logger,
		store:     store,
		persister: session.NewPersister(store, log.PersistErrorHook(logger)),
	}, nil
}

// newSession builds a session that saves through the persister and logs
// transitions. sched may be nil for commands that never wait.
func (e *env) newSession(sched clock.Scheduler) *quiz.Session {
	n := len(content.Questions())
	return quiz.NewSession(quiz.Options{
		Questions:    n,
		AutoFinish:   e.cfg.Quiz.AutoFinish,
		LoadingDelay: e.cfg.LoadingDelay(),
		Scheduler:    sched,
		Saver:        e.persister,
		Observer:     log.SessionObserver(e.logger, n),
	})
}

// restore installs the saved state, if any. Returns false when nothing
// valid was stored.
func (e *env) restore(s *quiz.Session) bool {
	st := e.persister.Load()
	if st == nil {
		return false
	}
	s.Restore(*st)
	return true
}

// savedState returns the stored state, or an empty Start state.
func (e *env) savedState() quiz.State {
	if st := e.persister.Load(); st != nil {
		return *st
	}
	return quiz.State{Phase: quiz.PhaseStart}
}

// resultState returns the saved state when the session reached Result.
func (e *env) resultState() (quiz.State, error) {
	st := e.savedState()
	if st.Phase != quiz.PhaseResult || len(st.Answers) < len(content.Questions()) {
		return st, errNoResult
	}
	return st, nil
}

func (e *env) payload(st quiz.State) share.Payload {
	return share.BuildPayload(quiz.Score(st.Answers), len(content.Questions()), e.cfg.Share.SiteURL)
}

func (e *env) imageURL(idx int) string {
	return preview.ImageURL(e.cfg.Share.TypeOGBaseURL, e.cfg.Share.OGImageDefault, idx)
}

func (e *env) meta(p share.Payload) preview.Meta {
	return preview.MetaFor(p, e.imageURL(p.Index))
}

// writePreview rewrites result.html and logs the outcome.
func (e *env) writePreview(p share.Payload) (string, error) {
	path, err := preview.Write(e.dir, e.meta(p))
	ev := log.LogEvent{Event: log.EventPreviewWritten, Path: path}
	if err != nil {
		ev.Error = err.Error()
	}
	_ = e.logger.Append(ev)
	return path, err
}

func (e *env) resolver() *share.Resolver {
	return share.NewSystemResolver(e.cfg.Share.NativeCommand)
}

func (e *env) kakaoSharer() *share.KakaoSharer {
	return &share.KakaoSharer{
		Loader: kakao.NewLoader(kakao.LoaderOptions{
			AppKey:      e.cfg.Share.KakaoAppKey,
			AccessToken: e.cfg.Share.KakaoAccessToken,
			APIBase:     e.cfg.Share.KakaoAPIBase,
		}),
		ImageFor: e.imageURL,
	}
}

func (e *env) opener() share.Opener {
	return share.NewSystemBrowser()
}

// logShare records a share attempt.
func (e *env) logShare(event, channel string, err error) {
	ev := log.LogEvent{Event: event, Channel: channel}
	if err != nil {
		ev.Error = err.Error()
	}
	_ = e.logger.Append(ev)
}

// waitForResult runs scheduled callbacks on the calling goroutine until the
// session reaches Result or timeout passes.
func waitForResult(d *clock.Dispatcher, s *quiz.Session, timeout time.Duration) error {
	stop := time.AfterFunc(timeout, d.Close)
	defer stop.Stop()
	for s.Phase() == quiz.PhaseLoading {
		fn, ok := d.Next()
		if !ok {
			return fmt.Errorf("timed out waiting for result after %v", timeout)
		}
		fn()
	}
	return nil
}

var debugOut io.Writer = os.Stderr

// debugf prints to stderr when --verbose is set.
func debugf(format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(debugOut, "[debug] "+format+"\n", args...)
}
