package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindvr/reststyle/internal/tui"
)

// PanelCopyMsg asks to copy the panel text.
type PanelCopyMsg struct {
	Text string
}

// PanelCloseMsg closes the panel.
type PanelCloseMsg struct{}

// PanelModel shows the share text when no automatic channel worked.
type PanelModel struct {
	text     string
	textarea textarea.Model
	width    int
}

// NewPanelModel creates a PanelModel holding text.
func NewPanelModel(text string, width int) PanelModel {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(boxWidth(width) - 6)
	ta.SetHeight(strings.Count(text, "\n") + 2)
	ta.SetValue(text)
	// Left unfocused so keystrokes cannot edit the text.
	ta.Blur()
	return PanelModel{text: text, textarea: ta, width: width}
}

// Text returns the panel content.
func (m PanelModel) Text() string {
	return m.text
}

// Update handles messages for the panel.
func (m PanelModel) Update(msg tea.Msg) (PanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.Copy):
			text := m.text
			return m, func() tea.Msg { return PanelCopyMsg{Text: text} }
		case key.Matches(msg, tui.DefaultKeyMap.Close):
			return m, func() tea.Msg { return PanelCloseMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(boxWidth(msg.Width) - 6)
	}
	return m, nil
}

// View renders the panel.
func (m PanelModel) View() string {
	var b strings.Builder
	b.WriteString(tui.WarningStyle.Render("공유 내용 복사"))
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("c: Copy       esc: Close"))
	return tui.PanelStyle.
		Width(boxWidth(m.width)).
		Render(b.String())
}
