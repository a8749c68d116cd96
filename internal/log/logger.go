// Package log provides structured event logging.
// This file appends JSON events to log.jsonl in the app directory.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event type constants.
const (
	EventStateRestored    = "state_restored"
	EventQuizStarted      = "quiz_started"
	EventAnswerChosen     = "answer_chosen"
	EventQuizFinished     = "quiz_finished"
	EventResultShown      = "result_shown"
	EventSessionReset     = "session_reset"
	EventPersistFailed    = "persist_failed"
	EventShareNative      = "share_native"
	EventShareCopied      = "share_copied"
	EventSharePanel       = "share_panel"
	EventShareNaver       = "share_naver"
	EventShareKakao       = "share_kakao"
	EventShareKakaoFailed = "share_kakao_failed"
	EventPreviewWritten   = "preview_written"
)

// LogEvent represents a single structured event written to the log.
type LogEvent struct {
	Time     time.Time              `json:"time"`
	Event    string                 `json:"event"`
	Session  string                 `json:"session,omitempty"`
	Phase    string                 `json:"phase,omitempty"`
	Answer   string                 `json:"answer,omitempty"`
	Answered int                    `json:"answered,omitempty"`
	Score    *int                   `json:"score,omitempty"`
	Persona  string                 `json:"persona,omitempty"`
	Channel  string                 `json:"channel,omitempty"`
	Path     string                 `json:"path,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path    string
	session string
	mu      sync.Mutex
}

// NewLogger creates a Logger that writes to log.jsonl inside dir.
// Creates dir if it does not already exist.
// Does not truncate an existing log file.
// Every event is stamped with a fresh per-process session id.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create app directory: %w", err)
	}

	return &Logger{
		path:    filepath.Join(dir, "log.jsonl"),
		session: uuid.New().String(),
	}, nil
}

// SessionID returns the id stamped on this logger's events.
func (l *Logger) SessionID() string {
	return l.session
}

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// The file is opened in append mode, written to, and then closed.
// Thread-safe via mutex. A nil Logger discards events.
func (l *Logger) Append(event LogEvent) error {
	if l == nil {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}
	if event.Session == "" {
		event.Session = l.session
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	// Write the JSON line followed by a newline.
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}

// IntPtr is a helper for optional numeric fields such as Score.
func IntPtr(v int) *int {
	return &v
}

// Replace atomically rewrites the log file with events.
func (l *Logger) Replace(events []LogEvent) error {
	var buf []byte
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal log event: %w", err)
		}
		buf = append(buf, data...)
		buf = append(buf, '\n')
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".log-*.jsonl")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp log: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace log file: %w", err)
	}
	return nil
}
