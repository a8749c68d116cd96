// status.go implements the "reststyle status" command showing quiz progress.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
	"github.com/mindvr/reststyle/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show quiz progress",
	Long: `Display the saved phase, every question with its answer, and the
next question to answer.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	st := e.savedState()
	questions := content.Questions()
	ui.NewProgressDisplay(out, questions, st).Render()

	switch {
	case st.Phase == quiz.PhaseQuiz && len(st.Answers) < len(questions):
		q := questions[len(st.Answers)]
		fmt.Fprintf(out, "\nNext: %s\n  A) %s\n  B) %s\n", q.Prompt, q.A, q.B)
	case st.Phase == quiz.PhaseResult:
		fmt.Fprintln(out, "\nSee your result with: reststyle result")
	case len(st.Answers) >= len(questions):
		fmt.Fprintln(out, "\nFinish with: reststyle answer")
	default:
		fmt.Fprintln(out, "\nStart with: reststyle answer A|B")
	}
	debugf("storage: %s", e.store.Path())
	return nil
}
