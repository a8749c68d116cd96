// Package quiz implements rest-style scoring and the quiz session machine.
package quiz

import "fmt"

// Answer is one binary choice.
type Answer string

// Answer values.
const (
	AnswerA Answer = "A"
	AnswerB Answer = "B"
)

// Valid reports whether a is A or B.
func (a Answer) Valid() bool {
	return a == AnswerA || a == AnswerB
}

// ParseAnswer accepts "A"/"B" in either case.
func ParseAnswer(s string) (Answer, error) {
	switch s {
	case "A", "a":
		return AnswerA, nil
	case "B", "b":
		return AnswerB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
}

// Score counts the A answers.
func Score(answers []Answer) int {
	n := 0
	for _, a := range answers {
		if a == AnswerA {
			n++
		}
	}
	return n
}

// personaBuckets is the number of personas scores are spread over.
const personaBuckets = 8

// PersonaIndex maps a score out of n questions to a persona index in [0, 7].
//
// The divisor is n+1, not n: for twelve questions the buckets are
// floor(score*8/13), which gives uneven widths: personas 2, 5 and 7 are
// reached by a single score each, the rest by two. Results must stay
// bit-for-bit compatible, so do not normalise it to score*8/n.
func PersonaIndex(score, n int) int {
	if score < 0 {
		score = 0
	}
	idx := score * personaBuckets / (n + 1)
	if idx > personaBuckets-1 {
		idx = personaBuckets - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// ScoreRange returns the inclusive score range mapped to persona idx, or
// ok=false when no score in [0, n] reaches it.
func ScoreRange(idx, n int) (lo, hi int, ok bool) {
	lo, hi = -1, -1
	for s := 0; s <= n; s++ {
		if PersonaIndex(s, n) != idx {
			continue
		}
		if lo < 0 {
			lo = s
		}
		hi = s
	}
	return lo, hi, lo >= 0
}
