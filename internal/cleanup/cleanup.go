// Package cleanup implements pruning of old quiz sessions from the event log.
package cleanup

import (
	"fmt"
	"sort"
	"time"

	"github.com/mindvr/reststyle/internal/log"
)

// sessionSpan is the last activity of one session in the log.
type sessionSpan struct {
	id   string
	last time.Time
}

// spans groups events by session id, oldest session first. Events without
// a session id are grouped under "".
func spans(events []log.LogEvent) []sessionSpan {
	last := make(map[string]time.Time)
	for _, ev := range events {
		if t, ok := last[ev.Session]; !ok || ev.Time.After(t) {
			last[ev.Session] = ev.Time
		}
	}
	out := make([]sessionSpan, 0, len(last))
	for id, t := range last {
		out = append(out, sessionSpan{id: id, last: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].last.Equal(out[j].last) {
			return out[i].id < out[j].id
		}
		return out[i].last.Before(out[j].last)
	})
	return out
}

// drop removes the named sessions from the log unless dryRun is set.
func drop(l *log.Logger, events []log.LogEvent, remove map[string]bool, dryRun bool) error {
	if dryRun || len(remove) == 0 {
		return nil
	}
	kept := make([]log.LogEvent, 0, len(events))
	for _, ev := range events {
		if !remove[ev.Session] {
			kept = append(kept, ev)
		}
	}
	if err := l.Replace(kept); err != nil {
		return fmt.Errorf("rewriting log: %w", err)
	}
	return nil
}

// PruneByAge removes sessions whose last event is older than maxAgeDays.
// If dryRun is true, the log is left untouched; the function only returns
// the session ids that would be removed. The logger's own session is
// never pruned.
func PruneByAge(l *log.Logger, maxAgeDays int, dryRun bool) ([]string, error) {
	events, err := l.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	remove := make(map[string]bool)
	var pruned []string

	for _, s := range spans(events) {
		if s.id == l.SessionID() {
			continue
		}
		if s.last.Before(cutoff) {
			remove[s.id] = true
			pruned = append(pruned, s.id)
		}
	}

	if err := drop(l, events, remove, dryRun); err != nil {
		return nil, err
	}
	return pruned, nil
}

// PruneKeepRecent removes every session except the most recent keep
// sessions. If dryRun is true, the log is not rewritten. Returns the
// pruned session ids, oldest first.
func PruneKeepRecent(l *log.Logger, keep int, dryRun bool) ([]string, error) {
	events, err := l.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}

	all := spans(events)
	if len(all) <= keep {
		return nil, nil
	}

	remove := make(map[string]bool)
	var pruned []string
	for _, s := range all[:len(all)-keep] {
		if s.id == l.SessionID() {
			continue
		}
		remove[s.id] = true
		pruned = append(pruned, s.id)
	}

	if err := drop(l, events, remove, dryRun); err != nil {
		return nil, err
	}
	return pruned, nil
}
