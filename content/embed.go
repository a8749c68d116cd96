// Package content holds the embedded quiz catalog: questions, personas and
// the HTML shell of the shareable result page.
package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var questionsYAML []byte

//go:embed personas.yaml
var personasYAML []byte

// ResultPage is the HTML shell the preview package injects meta tags into.
//
//go:embed result.html
var ResultPage string

// Question is one binary quiz item.
type Question struct {
	Prompt string `yaml:"prompt"`
	A      string `yaml:"a"`
	B      string `yaml:"b"`
}

// Persona is a rest-style archetype keyed by persona index.
type Persona struct {
	Key      int      `yaml:"key"`
	Name     string   `yaml:"name"`
	Tagline  string   `yaml:"tagline"`
	Desc     []string `yaml:"desc"`
	Tips     []string `yaml:"tips"`
	Hashtags []string `yaml:"hashtags"`
}

// QuestionCount and PersonaCount are fixed by the catalog format.
const (
	QuestionCount = 12
	PersonaCount  = 8
)

var (
	loadOnce  sync.Once
	questions []Question
	personas  []Persona
	loadErr   error
)

func load() {
	loadOnce.Do(func() {
		questions, personas, loadErr = parse(questionsYAML, personasYAML)
	})
}

func parse(qData, pData []byte) ([]Question, []Persona, error) {
	var qs []Question
	if err := yaml.Unmarshal(qData, &qs); err != nil {
		return nil, nil, fmt.Errorf("parsing questions: %w", err)
	}
	if len(qs) != QuestionCount {
		return nil, nil, fmt.Errorf("questions: got %d, want %d", len(qs), QuestionCount)
	}

	var ps []Persona
	if err := yaml.Unmarshal(pData, &ps); err != nil {
		return nil, nil, fmt.Errorf("parsing personas: %w", err)
	}
	if len(ps) != PersonaCount {
		return nil, nil, fmt.Errorf("personas: got %d, want %d", len(ps), PersonaCount)
	}
	for i, p := range ps {
		if p.Key != i {
			return nil, nil, fmt.Errorf("persona %d has key %d", i, p.Key)
		}
	}
	return qs, ps, nil
}

// Questions returns the quiz questions in order.
// Panics if the embedded catalog is malformed.
func Questions() []Question {
	load()
	if loadErr != nil {
		panic(loadErr)
	}
	return questions
}

// Personas returns the persona catalog ordered by index.
func Personas() []Persona {
	load()
	if loadErr != nil {
		panic(loadErr)
	}
	return personas
}

// PersonaAt returns the persona for idx, clamping out-of-range indexes.
func PersonaAt(idx int) Persona {
	ps := Personas()
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ps) {
		idx = len(ps) - 1
	}
	return ps[idx]
}
