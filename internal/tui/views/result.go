package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/tui"
)

// ShareMsg requests the share chain.
type ShareMsg struct{}

// NaverMsg requests the Naver deep link.
type NaverMsg struct{}

// KakaoMsg requests a Kakao feed message.
type KakaoMsg struct{}

// RetryMsg requests a fresh session.
type RetryMsg struct{}

// ResultModel is the view model for the persona card.
type ResultModel struct {
	persona   content.Persona
	score     int
	questions int
	sharing   bool
	width     int
}

// NewResultModel creates a ResultModel.
func NewResultModel(p content.Persona, score, questions, width int) ResultModel {
	return ResultModel{persona: p, score: score, questions: questions, width: width}
}

// SetSharing marks whether a share is running.
func (m *ResultModel) SetSharing(v bool) {
	m.sharing = v
}

// Update handles messages for the result view.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		km := tui.DefaultKeyMap
		switch {
		case key.Matches(msg, km.Share):
			return m, func() tea.Msg { return ShareMsg{} }
		case key.Matches(msg, km.Naver):
			return m, func() tea.Msg { return NaverMsg{} }
		case key.Matches(msg, km.Kakao):
			return m, func() tea.Msg { return KakaoMsg{} }
		case key.Matches(msg, km.Retry):
			return m, func() tea.Msg { return RetryMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the result view.
func (m ResultModel) View() string {
	var b strings.Builder
	p := m.persona

	b.WriteString(tui.DimStyle.Render("나의 휴식 스타일은"))
	b.WriteString("\n")
	b.WriteString(tui.TitleStyle.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(p.Tagline)
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("점수 %d/%d", m.score, m.questions)))
	b.WriteString("\n\n")

	for _, line := range p.Desc {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(p.Tips) > 0 {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render("추천 휴식 팁"))
		b.WriteString("\n")
		for _, tip := range p.Tips {
			b.WriteString("• ")
			b.WriteString(tip)
			b.WriteString("\n")
		}
	}
	if len(p.Hashtags) > 0 {
		b.WriteString("\n")
		b.WriteString(tui.HashtagStyle.Render(strings.Join(p.Hashtags, " ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.sharing {
		b.WriteString(tui.DimStyle.Render("공유 중..."))
	} else {
		b.WriteString(tui.DimStyle.Render("s: Share       n: Naver       k: Kakao       r: Retry       q: Exit"))
	}

	return tui.BoxStyle.
		Width(boxWidth(m.width)).
		Render(b.String())
}
