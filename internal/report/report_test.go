package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/log"
	"github.com/mindvr/reststyle/internal/quiz"
)

func answers(a int, n int) []quiz.Answer {
	out := make([]quiz.Answer, n)
	for i := range out {
		if i < a {
			out[i] = quiz.AnswerA
		} else {
			out[i] = quiz.AnswerB
		}
	}
	return out
}

func TestGenerateReportPersona(t *testing.T) {
	r := GenerateReport(quiz.State{Phase: quiz.PhaseResult, Answers: answers(12, 12)}, 12, "")
	if r.Score != 12 || r.Index != 7 {
		t.Fatalf("score=%d index=%d, want 12/7", r.Score, r.Index)
	}
	if r.Persona.Name != content.PersonaAt(7).Name {
		t.Errorf("persona = %q", r.Persona.Name)
	}
	if r.RangeLo != 12 || r.RangeHi != 12 {
		t.Errorf("range = %d..%d, want 12..12", r.RangeLo, r.RangeHi)
	}
}

func TestFormatMarkdown(t *testing.T) {
	r := GenerateReport(quiz.State{Answers: answers(0, 12)}, 12, "")
	md := FormatMarkdown(r)
	p := content.PersonaAt(0)
	for _, want := range []string{"## " + p.Name, p.Tagline, "**점수 0/12**", "0~1점"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "소요 시간") {
		t.Error("duration line should be omitted without log data")
	}
}

func TestDurationAndSharesFromLog(t *testing.T) {
	dir := t.TempDir()
	logger, err := log.NewLogger(dir)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, e := range []log.LogEvent{
		{Time: base, Event: log.EventQuizStarted},
		{Time: base.Add(90 * time.Second), Event: log.EventResultShown},
		{Time: base.Add(100 * time.Second), Event: log.EventShareCopied},
		{Time: base.Add(110 * time.Second), Event: log.EventShareKakaoFailed, Error: "x"},
	} {
		if err := logger.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	r := GenerateReport(quiz.State{Answers: answers(6, 12)}, 12, dir)
	if r.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", r.Duration)
	}
	if r.Shares != 1 {
		t.Errorf("Shares = %d, want 1", r.Shares)
	}
	if !strings.Contains(FormatMarkdown(r), "소요 시간: 1m30s") {
		t.Error("markdown missing duration")
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	r := GenerateReport(quiz.State{Answers: answers(3, 12)}, 12, "")
	path, err := WriteReport(dir, r)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != FormatMarkdown(r) {
		t.Error("file content differs from FormatMarkdown")
	}
}
