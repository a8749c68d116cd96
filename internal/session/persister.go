package session

import (
	"encoding/json"
	"fmt"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
)

// StateKey is the storage key holding the quiz progress.
const StateKey = "restStyleState"

// KV is the subset of Store the Persister needs.
type KV interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// record is the stored JSON shape. Pointers distinguish missing fields.
type record struct {
	Step    *int      `json:"step"`
	Answers *[]string `json:"answers"`
}

// Persister saves and restores quiz.State under StateKey.
type Persister struct {
	kv        KV
	questions int
	onError   func(error)
}

// NewPersister returns a Persister over kv. onError, if non-nil, receives
// save failures; they are never returned to the caller.
func NewPersister(kv KV, onError func(error)) *Persister {
	return &Persister{kv: kv, questions: content.QuestionCount, onError: onError}
}

// Save writes st. Failures are reported to onError only.
func (p *Persister) Save(st quiz.State) {
	data, err := Encode(st)
	if err == nil {
		err = p.kv.SetItem(StateKey, string(data))
	}
	if err != nil && p.onError != nil {
		p.onError(fmt.Errorf("saving state: %w", err))
	}
}

// Load returns the stored state, or nil when nothing usable is stored.
func (p *Persister) Load() *quiz.State {
	raw, ok, err := p.kv.GetItem(StateKey)
	if err != nil || !ok {
		return nil
	}
	st, err := Decode([]byte(raw), p.questions)
	if err != nil {
		return nil
	}
	return st
}

// Clear removes the stored state.
func (p *Persister) Clear() error {
	if err := p.kv.RemoveItem(StateKey); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	return nil
}

// Encode renders st as {"step":N,"answers":[...]}.
func Encode(st quiz.State) ([]byte, error) {
	step := int(st.Phase)
	answers := make([]string, len(st.Answers))
	for i, a := range st.Answers {
		answers[i] = string(a)
	}
	return json.Marshal(record{Step: &step, Answers: &answers})
}

// Decode parses a stored record. Missing fields default to step 0 and no
// answers; unknown fields are ignored. A step outside 0..3, an answer other
// than A or B, or more than questions answers is an error.
func Decode(data []byte, questions int) (*quiz.State, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}

	st := &quiz.State{Phase: quiz.PhaseStart}
	if rec.Step != nil {
		phase := quiz.Phase(*rec.Step)
		if !phase.Valid() {
			return nil, fmt.Errorf("invalid step %d", *rec.Step)
		}
		st.Phase = phase
	}
	if rec.Answers != nil {
		if len(*rec.Answers) > questions {
			return nil, fmt.Errorf("too many answers: %d", len(*rec.Answers))
		}
		for _, s := range *rec.Answers {
			a := quiz.Answer(s)
			if !a.Valid() {
				return nil, fmt.Errorf("invalid answer %q", s)
			}
			st.Answers = append(st.Answers, a)
		}
	}
	return st, nil
}
