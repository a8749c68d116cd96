// answer.go implements the "reststyle answer" command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/clock"
	"github.com/mindvr/reststyle/internal/quiz"
)

// resultGrace is added to the loading delay before giving up on Result.
const resultGrace = 5 * time.Second

var answerCmd = &cobra.Command{
	Use:   "answer [A|B]",
	Short: "Answer the next question",
	Long: `Submit one answer, starting a new quiz when none is in progress.
When the answer completes the quiz the command waits on the loading
screen and then prints the result. Without an argument a fully answered
quiz is finished.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnswer,
}

func runAnswer(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	timers := clock.NewDispatcher(4)
	defer timers.Close()
	s := e.newSession(timers)
	defer s.Close()
	e.restore(s)

	switch s.Phase() {
	case quiz.PhaseStart, quiz.PhaseResult:
		s.Start()
	}

	// A restored Loading phase only needs waiting.
	if s.Phase() == quiz.PhaseQuiz {
		if len(args) == 1 {
			a, err := quiz.ParseAnswer(args[0])
			if err != nil {
				return err
			}
			if err := chooseOrExplain(s, a); err != nil {
				return err
			}
		} else if err := s.Finish(); err != nil {
			return fmt.Errorf("%w; answer with: reststyle answer A|B", err)
		}
	}

	if s.Phase() != quiz.PhaseLoading {
		printQuestion(out, s)
		return nil
	}

	fmt.Fprintln(out, "개미가 열심히 분석 중입니다! 잠시만 기다려 주세요.")
	if err := waitForResult(timers, s, e.cfg.LoadingDelay()+resultGrace); err != nil {
		return err
	}

	p := e.payload(s.State())
	if path, err := e.writePreview(p); err != nil {
		debugf("preview not written: %v", err)
	} else {
		debugf("preview written: %s", path)
	}

	fmt.Fprintf(out, "\n%s\n%s (점수 %d/%d)\n\n", p.Title, p.Persona.Tagline, p.Score, s.Questions())
	fmt.Fprintln(out, "See the full card with: reststyle result")
	return nil
}

func chooseOrExplain(s *quiz.Session, a quiz.Answer) error {
	err := s.Choose(a)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, quiz.ErrQuizComplete):
		return fmt.Errorf("%w; finish with: reststyle answer", err)
	default:
		return err
	}
}

// printQuestion prints the next question, or a finish hint when all are answered.
func printQuestion(out io.Writer, s *quiz.Session) {
	questions := content.Questions()
	n := s.Answered()
	if n >= len(questions) {
		fmt.Fprintln(out, "모든 질문에 답했어요! Finish with: reststyle answer")
		return
	}
	q := questions[n]
	fmt.Fprintf(out, "[%d/%d] %s\n  A) %s\n  B) %s\n", n+1, len(questions), q.Prompt, q.A, q.B)
}
