package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
	"github.com/mindvr/reststyle/internal/tui"
)

// ChooseMsg carries the user's answer to the current question.
type ChooseMsg struct {
	Answer quiz.Answer
}

// FinishMsg asks to leave a fully answered quiz for the result.
type FinishMsg struct{}

// QuizModel is the view model for the question screen.
type QuizModel struct {
	questions []content.Question
	answered  int
	progress  progress.Model
	width     int
}

// NewQuizModel creates a QuizModel over the catalog questions.
func NewQuizModel(questions []content.Question, width int) QuizModel {
	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = boxWidth(width) - 6
	return QuizModel{questions: questions, progress: p, width: width}
}

// SetAnswered updates how many questions have been answered.
func (m *QuizModel) SetAnswered(n int) {
	m.answered = n
}

func (m QuizModel) complete() bool {
	return m.answered >= len(m.questions)
}

// Update handles messages for the quiz view.
func (m QuizModel) Update(msg tea.Msg) (QuizModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.complete() && key.Matches(msg, tui.DefaultKeyMap.Finish):
			return m, func() tea.Msg { return FinishMsg{} }
		case m.complete():
			return m, nil
		case key.Matches(msg, tui.DefaultKeyMap.ChooseA):
			return m, func() tea.Msg { return ChooseMsg{Answer: quiz.AnswerA} }
		case key.Matches(msg, tui.DefaultKeyMap.ChooseB):
			return m, func() tea.Msg { return ChooseMsg{Answer: quiz.AnswerB} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = boxWidth(msg.Width) - 6
	}
	return m, nil
}

// View renders the quiz view.
func (m QuizModel) View() string {
	var b strings.Builder
	total := len(m.questions)

	ratio := 0.0
	if total > 0 {
		ratio = float64(m.answered) / float64(total)
	}
	b.WriteString(m.progress.ViewAs(ratio))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%d / %d", min(m.answered+1, total), total)))
	b.WriteString("\n\n")

	if m.complete() {
		b.WriteString(tui.SuccessStyle.Render("모든 질문에 답했어요!"))
		b.WriteString("\n\n")
		b.WriteString(tui.ButtonStyle.Render("결과 보기"))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: See result       q: Exit"))
	} else {
		q := m.questions[m.answered]
		b.WriteString(tui.TitleStyle.Render(q.Prompt))
		b.WriteString("\n\n")
		w := boxWidth(m.width) - 6
		b.WriteString(tui.OptionStyle.Width(w).Render("A  " + q.A))
		b.WriteString("\n")
		b.WriteString(tui.OptionStyle.Width(w).Render("B  " + q.B))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("a/←: A       b/→: B       q: Exit"))
	}

	return tui.BoxStyle.
		Width(boxWidth(m.width)).
		Align(lipgloss.Left).
		Render(b.String())
}
