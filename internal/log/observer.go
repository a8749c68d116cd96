package log

import (
	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
)

// sessionEvents maps session transitions to log event names.
var sessionEvents = map[quiz.Event]string{
	quiz.EventRestored: EventStateRestored,
	quiz.EventStarted:  EventQuizStarted,
	quiz.EventAnswered: EventAnswerChosen,
	quiz.EventLoading:  EventQuizFinished,
	quiz.EventResult:   EventResultShown,
	quiz.EventReset:    EventSessionReset,
}

// SessionObserver returns a quiz.Observer that records transitions.
// Logging failures are dropped.
func SessionObserver(l *Logger, questions int) quiz.Observer {
	return func(ev quiz.Event, st quiz.State) {
		name, ok := sessionEvents[ev]
		if !ok {
			return
		}
		e := LogEvent{
			Event:    name,
			Phase:    st.Phase.String(),
			Answered: len(st.Answers),
		}
		if ev == quiz.EventAnswered && len(st.Answers) > 0 {
			e.Answer = string(st.Answers[len(st.Answers)-1])
		}
		if ev == quiz.EventResult {
			score := quiz.Score(st.Answers)
			e.Score = IntPtr(score)
			e.Persona = content.PersonaAt(quiz.PersonaIndex(score, questions)).Name
		}
		_ = l.Append(e)
	}
}

// PersistErrorHook returns a callback that records save failures.
func PersistErrorHook(l *Logger) func(error) {
	return func(err error) {
		_ = l.Append(LogEvent{Event: EventPersistFailed, Error: err.Error()})
	}
}
