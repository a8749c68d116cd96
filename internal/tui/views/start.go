// Package views provides TUI view components for the rest style quiz.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindvr/reststyle/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// StartQuizMsg is sent when the user starts (or restarts) the quiz.
type StartQuizMsg struct{}

// ============================================================================
// StartModel
// ============================================================================

// StartModel is the view model for the start screen.
type StartModel struct {
	brand     string
	questions int
	width     int
	height    int
}

// NewStartModel creates a StartModel.
func NewStartModel(brand string, questions, width, height int) StartModel {
	return StartModel{brand: brand, questions: questions, width: width, height: height}
}

// Init returns the initial command for the start view.
func (m StartModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the start view.
func (m StartModel) Update(msg tea.Msg) (StartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, tui.DefaultKeyMap.Start) {
			return m, func() tea.Msg { return StartQuizMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the start view.
func (m StartModel) View() string {
	var b strings.Builder

	b.WriteString(tui.DimStyle.Render(m.brand))
	b.WriteString("\n\n")
	b.WriteString(tui.TitleStyle.Render("나의 휴식 스타일 찾기"))
	b.WriteString("\n\n")
	b.WriteString("오늘도 바쁘게 일하는 당신, 일개미의 쉬는 시간은 어떻게 보내고 있나요?\n")
	b.WriteString(fmt.Sprintf("지금부터 %d가지 질문에 답하고, 나만의 직장인 휴식 스타일을 확인해 보세요.", m.questions))
	b.WriteString("\n\n")
	b.WriteString(tui.ButtonStyle.Render("시작하기"))
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("참고: 본 테스트는 업무 중 짧은 마이크로 브레이크 활용 아이디어를 제공합니다."))
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: Start       q: Exit"))

	return tui.BoxStyle.
		Width(boxWidth(m.width)).
		Align(lipgloss.Center).
		Render(b.String())
}

// boxWidth keeps boxes readable on narrow and wide terminals.
func boxWidth(width int) int {
	w := width - 4
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}
