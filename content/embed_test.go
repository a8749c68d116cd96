package content

import (
	"strings"
	"testing"
)

func TestCatalogSizes(t *testing.T) {
	if got := len(Questions()); got != QuestionCount {
		t.Errorf("questions: got %d, want %d", got, QuestionCount)
	}
	if got := len(Personas()); got != PersonaCount {
		t.Errorf("personas: got %d, want %d", got, PersonaCount)
	}
}

func TestPersonasAreComplete(t *testing.T) {
	for i, p := range Personas() {
		if p.Key != i {
			t.Errorf("persona %d: key = %d", i, p.Key)
		}
		if p.Name == "" || p.Tagline == "" {
			t.Errorf("persona %d: missing name or tagline", i)
		}
		if len(p.Desc) == 0 || len(p.Tips) == 0 || len(p.Hashtags) == 0 {
			t.Errorf("persona %d: empty desc, tips or hashtags", i)
		}
	}
}

func TestQuestionsHaveBothOptions(t *testing.T) {
	for i, q := range Questions() {
		if q.Prompt == "" || q.A == "" || q.B == "" {
			t.Errorf("question %d incomplete: %+v", i, q)
		}
	}
}

func TestPersonaAtClamps(t *testing.T) {
	if PersonaAt(-3).Key != 0 {
		t.Error("negative index should clamp to 0")
	}
	if PersonaAt(42).Key != PersonaCount-1 {
		t.Errorf("large index should clamp to %d", PersonaCount-1)
	}
}

func TestParseRejectsWrongCount(t *testing.T) {
	_, _, err := parse([]byte("- prompt: only one\n  a: x\n  b: y\n"), personasYAML)
	if err == nil {
		t.Fatal("expected error for short question list")
	}
	if !strings.Contains(err.Error(), "questions") {
		t.Errorf("error = %v, want mention of questions", err)
	}
}

func TestResultPageHasHead(t *testing.T) {
	if !strings.Contains(ResultPage, "<head>") {
		t.Error("result page shell must contain a <head> element")
	}
}
