// Package ui provides plain terminal output for the quiz commands.
// This file implements the per-question progress display shown by status.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
)

// QuestionStatus represents where a question stands in the session.
type QuestionStatus int

const (
	StatusPending  QuestionStatus = iota // Not reached yet
	StatusCurrent                        // Next to answer
	StatusAnswered                       // Answered A or B
)

// QuestionState holds the display state of a single question.
type QuestionState struct {
	Number int
	Prompt string
	Status QuestionStatus
	Answer quiz.Answer
}

// ProgressDisplay renders the question list for a session state.
type ProgressDisplay struct {
	out       io.Writer
	isTTY     bool
	phase     quiz.Phase
	questions []QuestionState
}

// NewProgressDisplay builds the display for st over the given questions.
// Colors are used only when out is a terminal.
func NewProgressDisplay(out io.Writer, questions []content.Question, st quiz.State) *ProgressDisplay {
	p := &ProgressDisplay{out: out, phase: st.Phase}
	if f, ok := out.(*os.File); ok {
		p.isTTY = term.IsTerminal(int(f.Fd()))
	}

	inQuiz := st.Phase == quiz.PhaseQuiz
	for i, q := range questions {
		qs := QuestionState{Number: i + 1, Prompt: q.Prompt}
		switch {
		case i < len(st.Answers):
			qs.Status = StatusAnswered
			qs.Answer = st.Answers[i]
		case inQuiz && i == len(st.Answers):
			qs.Status = StatusCurrent
		}
		p.questions = append(p.questions, qs)
	}
	return p
}

// Answered returns how many questions have an answer.
func (p *ProgressDisplay) Answered() int {
	n := 0
	for _, q := range p.questions {
		if q.Status == StatusAnswered {
			n++
		}
	}
	return n
}

// Render writes the header, one line per question and a summary line.
func (p *ProgressDisplay) Render() {
	var buf strings.Builder

	if p.isTTY {
		buf.WriteString(fmt.Sprintf("\033[1m나의 휴식 스타일 찾기 - %s\033[0m\n\n", p.phase))
	} else {
		buf.WriteString(fmt.Sprintf("Phase: %s\n\n", p.phase))
	}

	for i := range p.questions {
		if p.isTTY {
			buf.WriteString(formatQuestionLine(&p.questions[i]))
		} else {
			buf.WriteString(formatQuestionLinePlain(&p.questions[i]))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(fmt.Sprintf("\nProgress: %d/%d answered\n", p.Answered(), len(p.questions)))
	fmt.Fprint(p.out, buf.String())
}

// formatQuestionLine formats a single question line with ANSI colors and status icons.
func formatQuestionLine(q *QuestionState) string {
	return fmt.Sprintf("  %s %2d. %s  %s", statusIcon(q.Status), q.Number, truncate(q.Prompt, 40), statusDetail(q))
}

// formatQuestionLinePlain formats a question line for non-TTY output.
func formatQuestionLinePlain(q *QuestionState) string {
	var status string
	switch q.Status {
	case StatusAnswered:
		status = "ANSWERED " + string(q.Answer)
	case StatusCurrent:
		status = "CURRENT"
	default:
		status = "PENDING"
	}
	return fmt.Sprintf("[%s] %d: %s", status, q.Number, q.Prompt)
}

// statusIcon returns the status icon for a question.
func statusIcon(status QuestionStatus) string {
	switch status {
	case StatusAnswered:
		return "\033[32m\u2705\033[0m" // green checkmark
	case StatusCurrent:
		return "\033[33m\u25b8\033[0m" // yellow arrow
	default:
		return "\033[90m\u25cb\033[0m" // dim circle
	}
}

// statusDetail returns the right-side detail text for a question.
func statusDetail(q *QuestionState) string {
	switch q.Status {
	case StatusAnswered:
		return fmt.Sprintf("\033[90m[%s]\033[0m", q.Answer)
	case StatusCurrent:
		return "\033[33m[next]\033[0m"
	default:
		return ""
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
