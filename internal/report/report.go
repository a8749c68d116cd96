// Package report builds the persona result card shown after the quiz.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/log"
	"github.com/mindvr/reststyle/internal/quiz"
)

// Report holds the result of a finished quiz.
type Report struct {
	Persona   content.Persona
	Index     int
	Score     int
	Questions int
	// RangeLo and RangeHi are the scores that map to the same persona.
	RangeLo  int
	RangeHi  int
	Answers  []quiz.Answer
	Duration time.Duration
	Shares   int
}

// GenerateReport builds a Report from a session state. Timing and share
// counts come from the event log in dir; a missing or unreadable log leaves
// them zero.
func GenerateReport(st quiz.State, questions int, dir string) *Report {
	score := quiz.Score(st.Answers)
	idx := quiz.PersonaIndex(score, questions)
	lo, hi, _ := quiz.ScoreRange(idx, questions)

	r := &Report{
		Persona:   content.PersonaAt(idx),
		Index:     idx,
		Score:     score,
		Questions: questions,
		RangeLo:   lo,
		RangeHi:   hi,
		Answers:   append([]quiz.Answer(nil), st.Answers...),
	}

	if dir == "" {
		return r
	}
	logger, err := log.NewLogger(dir)
	if err != nil {
		return r
	}
	events, err := logger.ReadAll()
	if err == nil && len(events) > 0 {
		r.Duration = computeDuration(events)
		r.Shares = countShares(events)
	}
	return r
}

// FormatMarkdown renders the card as markdown for glamour.
func FormatMarkdown(r *Report) string {
	var b strings.Builder
	p := r.Persona

	b.WriteString("# 나의 휴식 스타일\n\n")
	fmt.Fprintf(&b, "## %s\n\n", p.Name)
	fmt.Fprintf(&b, "> %s\n\n", p.Tagline)
	fmt.Fprintf(&b, "**점수 %d/%d** (이 유형: %s)\n\n", r.Score, r.Questions, formatRange(r.RangeLo, r.RangeHi))

	for _, line := range p.Desc {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n")

	if len(p.Tips) > 0 {
		b.WriteString("### 추천 휴식 팁\n\n")
		for i, tip := range p.Tips {
			fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
		}
		b.WriteString("\n")
	}

	if len(p.Hashtags) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(p.Hashtags, " "))
	}

	if r.Duration > 0 {
		fmt.Fprintf(&b, "---\n\n소요 시간: %s\n", formatDuration(r.Duration))
	}

	return b.String()
}

// WriteReport writes the markdown card to {dir}/result.md.
// Creates the directory if it does not exist.
func WriteReport(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, "result.md")
	if err := os.WriteFile(path, []byte(FormatMarkdown(r)), 0644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	return path, nil
}

func formatRange(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("%d점", lo)
	}
	return fmt.Sprintf("%d~%d점", lo, hi)
}

// computeDuration returns the time between the last quiz start and the
// first result after it.
func computeDuration(events []log.LogEvent) time.Duration {
	var started time.Time
	var last time.Duration
	for _, e := range events {
		switch e.Event {
		case log.EventQuizStarted:
			started = e.Time
		case log.EventSessionReset:
			started = time.Time{}
		case log.EventResultShown:
			if !started.IsZero() && e.Time.After(started) {
				last = e.Time.Sub(started)
				started = time.Time{}
			}
		}
	}
	return last
}

// countShares counts successful shares of any channel.
func countShares(events []log.LogEvent) int {
	n := 0
	for _, e := range events {
		switch e.Event {
		case log.EventShareNative, log.EventShareCopied, log.EventShareNaver, log.EventShareKakao:
			if e.Error == "" {
				n++
			}
		}
	}
	return n
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", h, m, s)
}
