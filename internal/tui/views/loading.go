package views

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindvr/reststyle/internal/tui"
)

// LoadingModel is shown while the result is being prepared.
type LoadingModel struct {
	spinner spinner.Model
	width   int
}

// NewLoadingModel creates a LoadingModel.
func NewLoadingModel(width int) LoadingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.WarningStyle
	return LoadingModel{spinner: sp, width: width}
}

// Init starts the spinner.
func (m LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner.
func (m LoadingModel) Update(msg tea.Msg) (LoadingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the loading view.
func (m LoadingModel) View() string {
	body := m.spinner.View() + " 개미가 열심히 분석 중입니다!\n" +
		tui.DimStyle.Render("잠시만 기다려 주세요. 곧 마무리됩니다~")
	return tui.BoxStyle.
		Width(boxWidth(m.width)).
		Align(lipgloss.Center).
		Render(body)
}
