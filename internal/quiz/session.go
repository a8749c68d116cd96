package quiz

import (
	"errors"
	"time"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/clock"
)

// Phase is the session screen. Values are persisted as the "step" field.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseQuiz
	PhaseLoading
	PhaseResult
)

// String returns a lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseQuiz:
		return "quiz"
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the four phases.
func (p Phase) Valid() bool {
	return p >= PhaseStart && p <= PhaseResult
}

// State is the persisted part of a session.
type State struct {
	Phase   Phase
	Answers []Answer
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{Phase: s.Phase}
	if len(s.Answers) > 0 {
		out.Answers = append([]Answer(nil), s.Answers...)
	}
	return out
}

// Equal compares phase and answers.
func (s State) Equal(o State) bool {
	if s.Phase != o.Phase || len(s.Answers) != len(o.Answers) {
		return false
	}
	for i := range s.Answers {
		if s.Answers[i] != o.Answers[i] {
			return false
		}
	}
	return true
}

// Event names a session transition reported to observers.
type Event string

const (
	EventRestored Event = "restored"
	EventStarted  Event = "started"
	EventAnswered Event = "answered"
	EventLoading  Event = "loading"
	EventResult   Event = "result"
	EventReset    Event = "reset"
)

// Guard errors returned by session operations. None of them change state.
var (
	ErrWrongPhase    = errors.New("operation not allowed in current phase")
	ErrQuizComplete  = errors.New("all questions already answered")
	ErrIncomplete    = errors.New("quiz has unanswered questions")
	ErrInvalidAnswer = errors.New("answer must be A or B")
)

// DefaultLoadingDelay is how long the Loading screen stays up.
const DefaultLoadingDelay = time.Second

// Saver receives the state after every transition. Implementations must
// not block and must swallow their own failures.
type Saver interface {
	Save(State)
}

// Observer is notified after every transition with the new state.
type Observer func(ev Event, st State)

// Options configures a Session.
type Options struct {
	Questions    int // defaults to content.QuestionCount
	AutoFinish   bool
	LoadingDelay time.Duration
	Scheduler    clock.Scheduler
	Saver        Saver
	Observer     Observer
}

// Session owns the phase and the answer sequence.
//
// All methods must be called from one goroutine; scheduled callbacks are
// expected to be delivered on that goroutine too (see clock.Dispatcher).
type Session struct {
	opts    Options
	state   State
	pending clock.Task
	gen     uint64
}

// NewSession returns a session in the Start phase.
func NewSession(opts Options) *Session {
	if opts.Questions <= 0 {
		opts.Questions = content.QuestionCount
	}
	if opts.LoadingDelay <= 0 {
		opts.LoadingDelay = DefaultLoadingDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.Real{}
	}
	return &Session{opts: opts, state: State{Phase: PhaseStart}}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state.Clone()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.state.Phase
}

// Questions returns the configured question count.
func (s *Session) Questions() int {
	return s.opts.Questions
}

// Answered returns how many answers have been given.
func (s *Session) Answered() int {
	return len(s.state.Answers)
}

// AllAnswered reports whether every question has an answer.
func (s *Session) AllAnswered() bool {
	return len(s.state.Answers) >= s.opts.Questions
}

// Score returns the count of A answers.
func (s *Session) Score() int {
	return Score(s.state.Answers)
}

// PersonaIndex returns the persona index for the current score.
func (s *Session) PersonaIndex() int {
	return PersonaIndex(s.Score(), s.opts.Questions)
}

// Persona returns the catalog entry for the current score.
func (s *Session) Persona() content.Persona {
	return content.PersonaAt(s.PersonaIndex())
}

// Restore installs a previously saved state. A restored Loading phase, or
// a fully answered Quiz when auto-finish is on, re-arms the Loading timer.
func (s *Session) Restore(st State) {
	s.cancelPending()
	s.gen++
	st = st.Clone()
	if !st.Phase.Valid() {
		st = State{Phase: PhaseStart}
	}
	if len(st.Answers) > s.opts.Questions {
		st.Answers = st.Answers[:s.opts.Questions]
	}
	s.state = st

	switch {
	case st.Phase == PhaseLoading:
		s.scheduleResult()
	case st.Phase == PhaseQuiz && s.AllAnswered() && s.opts.AutoFinish:
		s.state.Phase = PhaseLoading
		s.scheduleResult()
	}
	s.commit(EventRestored)
}

// Start clears the answers and enters Quiz from any phase.
func (s *Session) Start() {
	s.cancelPending()
	s.gen++
	s.state = State{Phase: PhaseQuiz}
	s.commit(EventStarted)
}

// Choose appends an answer. When it completes the quiz and auto-finish is
// configured, the session moves to Loading and schedules Result.
func (s *Session) Choose(a Answer) error {
	if !a.Valid() {
		return ErrInvalidAnswer
	}
	if s.state.Phase != PhaseQuiz {
		return ErrWrongPhase
	}
	if s.AllAnswered() {
		return ErrQuizComplete
	}

	s.state.Answers = append(s.state.Answers, a)
	s.commit(EventAnswered)

	if s.AllAnswered() && s.opts.AutoFinish {
		s.enterLoading()
	}
	return nil
}

// Finish moves a fully answered Quiz to Loading.
func (s *Session) Finish() error {
	if s.state.Phase != PhaseQuiz {
		return ErrWrongPhase
	}
	if !s.AllAnswered() {
		return ErrIncomplete
	}
	s.enterLoading()
	return nil
}

// Reset returns to Start with no answers and cancels any pending Result
// transition.
func (s *Session) Reset() {
	s.cancelPending()
	s.gen++
	s.state = State{Phase: PhaseStart}
	s.commit(EventReset)
}

// Close cancels pending timers. The state is left as is.
func (s *Session) Close() {
	s.cancelPending()
	s.gen++
}

func (s *Session) enterLoading() {
	s.state.Phase = PhaseLoading
	s.commit(EventLoading)
	s.scheduleResult()
}

func (s *Session) scheduleResult() {
	s.cancelPending()
	gen := s.gen
	s.pending = s.opts.Scheduler.AfterFunc(s.opts.LoadingDelay, func() {
		// A reset between arming and firing bumps gen.
		if gen != s.gen || s.state.Phase != PhaseLoading {
			return
		}
		s.pending = nil
		s.state.Phase = PhaseResult
		s.commit(EventResult)
	})
}

func (s *Session) cancelPending() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Session) commit(ev Event) {
	snapshot := s.state.Clone()
	if s.opts.Saver != nil {
		func() {
			defer func() { _ = recover() }()
			s.opts.Saver.Save(snapshot)
		}()
	}
	if s.opts.Observer != nil {
		s.opts.Observer(ev, snapshot)
	}
}
