package tui

import (
	"fmt"
	"io"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
)

// FallbackRunner handles non-TTY execution by guiding users to CLI commands.
type FallbackRunner struct {
	out io.Writer
}

// NewFallbackRunner creates a new FallbackRunner.
func NewFallbackRunner(out io.Writer) *FallbackRunner {
	return &FallbackRunner{out: out}
}

// Run prints where the saved session stands and which command continues it.
// st may be nil when nothing was saved.
func (f *FallbackRunner) Run(st *quiz.State) error {
	fmt.Fprintln(f.out, "Non-TTY environment detected.")

	if st == nil {
		st = &quiz.State{Phase: quiz.PhaseStart}
	}
	questions := content.Questions()

	switch st.Phase {
	case quiz.PhaseQuiz:
		if len(st.Answers) < len(questions) {
			q := questions[len(st.Answers)]
			fmt.Fprintf(f.out, "%s\n  A) %s\n  B) %s\n", q.Prompt, q.A, q.B)
			fmt.Fprintln(f.out, "Use 'reststyle answer A' or 'reststyle answer B' to continue.")
			return nil
		}
		fmt.Fprintln(f.out, "All questions answered. Use 'reststyle answer' to finish.")
	case quiz.PhaseLoading:
		fmt.Fprintln(f.out, "Your result is being prepared. Use 'reststyle answer' to finish.")
	case quiz.PhaseResult:
		fmt.Fprintln(f.out, "Use 'reststyle result' to see your rest style, or 'reststyle share' to share it.")
	default:
		fmt.Fprintln(f.out, "Use 'reststyle answer A|B' to start the quiz.")
	}
	return nil
}
