// Package share resolves how a quiz result leaves the terminal: native
// share, clipboard, terminal copy, or a panel holding the raw text.
package share

import (
	"fmt"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
)

// Payload is the data handed to every share channel.
type Payload struct {
	Title       string
	Description string
	Text        string
	URL         string
	Score       int
	Index       int
	Persona     content.Persona
}

// TitleFor returns the share title for a persona name.
func TitleFor(name string) string {
	return "내 휴식 스타일: " + name
}

// Compose builds the three-line share text. Lines are joined with real
// newlines, not a literal backslash-n.
func Compose(title, tagline string, score, questions int, url string) string {
	return fmt.Sprintf("%s\n%s (점수 %d/%d)\n%s", title, tagline, score, questions, url)
}

// Describe returns the one-line summary used in previews and feeds.
func Describe(tagline string, score, questions int) string {
	return fmt.Sprintf("%s · 점수 %d/%d", tagline, score, questions)
}

// BuildPayload derives the payload for a score out of questions.
func BuildPayload(score, questions int, siteURL string) Payload {
	idx := quiz.PersonaIndex(score, questions)
	p := content.PersonaAt(idx)
	title := TitleFor(p.Name)
	return Payload{
		Title:       title,
		Description: Describe(p.Tagline, score, questions),
		Text:        Compose(title, p.Tagline, score, questions, siteURL),
		URL:         siteURL,
		Score:       score,
		Index:       idx,
		Persona:     p,
	}
}

// PayloadFor derives the payload from a session's current answers.
func PayloadFor(s *quiz.Session, siteURL string) Payload {
	return BuildPayload(s.Score(), s.Questions(), siteURL)
}
