package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/mindvr/reststyle/internal/clock"
)

type recordingSaver struct {
	saved []State
}

func (r *recordingSaver) Save(st State) { r.saved = append(r.saved, st) }

type panickySaver struct{}

func (panickySaver) Save(State) { panic("disk on fire") }

func newTestSession(t *testing.T, autoFinish bool) (*Session, *clock.Manual, *recordingSaver) {
	t.Helper()
	m := clock.NewManual()
	saver := &recordingSaver{}
	s := NewSession(Options{
		Questions:    12,
		AutoFinish:   autoFinish,
		LoadingDelay: time.Second,
		Scheduler:    m,
		Saver:        saver,
	})
	return s, m, saver
}

func answerN(t *testing.T, s *Session, answers ...Answer) {
	t.Helper()
	for i, a := range answers {
		if err := s.Choose(a); err != nil {
			t.Fatalf("Choose #%d: %v", i+1, err)
		}
	}
}

func pattern(n int) []Answer {
	out := make([]Answer, n)
	for i := range out {
		if i%3 == 0 {
			out[i] = AnswerB
		} else {
			out[i] = AnswerA
		}
	}
	return out
}

func TestTwelfthAnswerEntersLoadingThenResult(t *testing.T) {
	s, m, _ := newTestSession(t, true)
	s.Start()

	all := pattern(12)
	answerN(t, s, all[:11]...)
	if s.Phase() != PhaseQuiz {
		t.Fatalf("after 11 answers phase = %v, want quiz", s.Phase())
	}

	if err := s.Choose(all[11]); err != nil {
		t.Fatalf("Choose 12th: %v", err)
	}
	if s.Phase() != PhaseLoading {
		t.Fatalf("after 12th answer phase = %v, want loading", s.Phase())
	}

	m.Advance(999 * time.Millisecond)
	if s.Phase() != PhaseLoading {
		t.Fatalf("before delay phase = %v, want loading", s.Phase())
	}
	m.Advance(time.Millisecond)
	if s.Phase() != PhaseResult {
		t.Fatalf("after delay phase = %v, want result", s.Phase())
	}

	if got, want := s.Score(), Score(all); got != want {
		t.Errorf("Score = %d, want %d", got, want)
	}
	if s.Score() != 8 {
		t.Errorf("Score = %d, want 8 for the test pattern", s.Score())
	}
}

func TestResetDuringLoadingCancelsResult(t *testing.T) {
	s, m, _ := newTestSession(t, true)
	s.Start()
	answerN(t, s, pattern(12)...)
	if s.Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want loading", s.Phase())
	}

	s.Reset()
	m.Advance(5 * time.Second)

	st := s.State()
	if st.Phase != PhaseStart {
		t.Errorf("phase = %v, want start", st.Phase)
	}
	if len(st.Answers) != 0 {
		t.Errorf("answers = %v, want none", st.Answers)
	}
	if m.Pending() != 0 {
		t.Errorf("pending tasks = %d, want 0", m.Pending())
	}
}

func TestStartDuringLoadingCancelsResult(t *testing.T) {
	s, m, _ := newTestSession(t, true)
	s.Start()
	answerN(t, s, pattern(12)...)

	s.Start()
	answerN(t, s, AnswerA)
	m.Advance(5 * time.Second)

	if s.Phase() != PhaseQuiz {
		t.Errorf("phase = %v, want quiz", s.Phase())
	}
	if s.Answered() != 1 {
		t.Errorf("answered = %d, want 1", s.Answered())
	}
}

func TestChooseGuardWhenComplete(t *testing.T) {
	s, _, _ := newTestSession(t, false)
	s.Start()
	answerN(t, s, pattern(12)...)

	if s.Phase() != PhaseQuiz {
		t.Fatalf("without auto-finish phase = %v, want quiz", s.Phase())
	}
	if err := s.Choose(AnswerA); !errors.Is(err, ErrQuizComplete) {
		t.Errorf("13th Choose error = %v, want ErrQuizComplete", err)
	}
	if s.Answered() != 12 {
		t.Errorf("answered = %d, want 12", s.Answered())
	}
}

func TestFinishWithoutAutoFinish(t *testing.T) {
	s, m, _ := newTestSession(t, false)
	s.Start()
	answerN(t, s, pattern(11)...)

	if err := s.Finish(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Finish with 11 answers error = %v, want ErrIncomplete", err)
	}
	answerN(t, s, AnswerB)
	if err := s.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if s.Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want loading", s.Phase())
	}
	m.Advance(time.Second)
	if s.Phase() != PhaseResult {
		t.Errorf("phase = %v, want result", s.Phase())
	}
}

func TestChooseOutsideQuiz(t *testing.T) {
	s, _, _ := newTestSession(t, true)
	if err := s.Choose(AnswerA); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Choose at start error = %v, want ErrWrongPhase", err)
	}
	s.Start()
	if err := s.Choose(Answer("C")); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("Choose(C) error = %v, want ErrInvalidAnswer", err)
	}
	if err := s.Finish(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Finish with no answers error = %v, want ErrIncomplete", err)
	}
}

func TestEveryTransitionIsSaved(t *testing.T) {
	s, m, saver := newTestSession(t, true)
	s.Start()
	answerN(t, s, pattern(12)...)
	m.Advance(time.Second)
	s.Reset()

	// start + 12 answers + loading + result + reset
	if got := len(saver.saved); got != 16 {
		t.Fatalf("saves = %d, want 16", got)
	}
	if saver.saved[0].Phase != PhaseQuiz {
		t.Errorf("first save phase = %v, want quiz", saver.saved[0].Phase)
	}
	if last := saver.saved[len(saver.saved)-1]; last.Phase != PhaseStart || len(last.Answers) != 0 {
		t.Errorf("last save = %+v, want empty start", last)
	}
	if saver.saved[14].Phase != PhaseResult || len(saver.saved[14].Answers) != 12 {
		t.Errorf("result save = %+v", saver.saved[14])
	}
}

func TestSaverPanicDoesNotEscape(t *testing.T) {
	s := NewSession(Options{Scheduler: clock.NewManual(), Saver: panickySaver{}})
	s.Start()
	if err := s.Choose(AnswerA); err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if s.Answered() != 1 {
		t.Errorf("answered = %d, want 1", s.Answered())
	}
}

func TestRestoreLoadingRearmsTimer(t *testing.T) {
	s, m, _ := newTestSession(t, true)
	s.Restore(State{Phase: PhaseLoading, Answers: pattern(12)})
	if s.Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want loading", s.Phase())
	}
	m.Advance(time.Second)
	if s.Phase() != PhaseResult {
		t.Errorf("phase = %v, want result", s.Phase())
	}
}

func TestRestoreCompleteQuizAutoFinishes(t *testing.T) {
	s, m, _ := newTestSession(t, true)
	s.Restore(State{Phase: PhaseQuiz, Answers: pattern(12)})
	if s.Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want loading", s.Phase())
	}
	m.Advance(time.Second)
	if s.Phase() != PhaseResult {
		t.Errorf("phase = %v, want result", s.Phase())
	}
}

func TestRestoreTruncatesAndSanitises(t *testing.T) {
	s, _, _ := newTestSession(t, false)
	s.Restore(State{Phase: PhaseResult, Answers: pattern(20)})
	if s.Answered() != 12 {
		t.Errorf("answered = %d, want 12", s.Answered())
	}
	s.Restore(State{Phase: Phase(9)})
	if s.Phase() != PhaseStart {
		t.Errorf("phase = %v, want start for invalid phase", s.Phase())
	}
}

func TestObserverSeesEvents(t *testing.T) {
	m := clock.NewManual()
	var events []Event
	s := NewSession(Options{
		Questions:  2,
		AutoFinish: true,
		Scheduler:  m,
		Observer:   func(ev Event, _ State) { events = append(events, ev) },
	})
	s.Start()
	answerN(t, s, AnswerA, AnswerA)
	m.Advance(DefaultLoadingDelay)

	want := []Event{EventStarted, EventAnswered, EventAnswered, EventLoading, EventResult}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, events[i], want[i])
		}
	}
	// floor(2*8/3)
	if s.PersonaIndex() != 5 {
		t.Errorf("PersonaIndex = %d, want 5", s.PersonaIndex())
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	s, _, _ := newTestSession(t, true)
	s.Start()
	answerN(t, s, AnswerA)
	st := s.State()
	st.Answers[0] = AnswerB
	if s.State().Answers[0] != AnswerA {
		t.Error("State() must return a copy")
	}
}
