// Package capture defines the event-log boundary to the key-capture layer.
//
// Capture layers serialize raw press/release events into a small versioned
// JSON format; this package loads such logs and replays them through a
// recording session so the analytics pass sees exactly what a live host
// would have produced.
package capture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/keybeat/keybeat/internal/session"
)

// LogVersion is the current event-log format version.
const LogVersion = 1

// Raw event types.
const (
	EventDown = "down"
	EventUp   = "up"
)

// RawEvent is one captured key transition.
type RawEvent struct {
	Type        string `json:"type"` // "down" or "up"
	Key         string `json:"key"`
	Code        string `json:"code,omitempty"`
	TimestampMs int64  `json:"ts"`

	// The fields below are meaningful on "up" events only.
	Correct  bool   `json:"correct,omitempty"`
	Expected string `json:"expected,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// Log is a complete captured session.
type Log struct {
	Version int        `json:"version"`
	Text    string     `json:"text"`
	Events  []RawEvent `json:"events"`
}

// Load reads and validates an event log from path.
func Load(path string) (Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Log{}, fmt.Errorf("failed to read event log: %w", err)
	}
	var log Log
	if err := json.Unmarshal(data, &log); err != nil {
		return Log{}, fmt.Errorf("failed to decode event log: %w", err)
	}
	if err := log.Validate(); err != nil {
		return Log{}, err
	}
	return log, nil
}

// Save writes an event log to path.
func Save(path string, log Log) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode event log: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}
	return nil
}

// Validate checks structural requirements of the log.
func (l Log) Validate() error {
	if l.Version != LogVersion {
		return fmt.Errorf("unsupported event log version %d", l.Version)
	}
	if l.Text == "" {
		return fmt.Errorf("event log has no expected text")
	}
	for i, e := range l.Events {
		if e.Type != EventDown && e.Type != EventUp {
			return fmt.Errorf("event %d has unknown type %q", i, e.Type)
		}
		if e.Key == "" {
			return fmt.Errorf("event %d has no key", i)
		}
	}
	return nil
}

// Replay feeds the log through a fresh recording session and returns it
// closed. The replay owns cursor semantics the way a live host would:
// explicit positions win; otherwise the cursor advances one step per
// release, and Backspace steps it back.
func Replay(l Log) *session.Session {
	s := session.New(l.Text)
	for _, e := range l.Events {
		switch e.Type {
		case EventDown:
			s.OnKeyDown(e.Key, e.Code, e.TimestampMs)
		case EventUp:
			replayKeyUp(s, e)
		}
	}
	return s
}

func replayKeyUp(s *session.Session, e RawEvent) {
	if e.Key == "Backspace" {
		s.OnKeyUpAt(e.Key, e.Code, e.TimestampMs, e.Correct, "", s.Cursor())
		if c := s.Cursor(); c > 0 {
			s.SetCursor(c - 1)
		}
		return
	}
	if e.Position != nil {
		expected := e.Expected
		s.OnKeyUpAt(e.Key, e.Code, e.TimestampMs, e.Correct, expected, *e.Position)
		s.SetCursor(*e.Position + 1)
		return
	}
	if e.Expected != "" {
		s.OnKeyUpAt(e.Key, e.Code, e.TimestampMs, e.Correct, e.Expected, s.Cursor())
	} else {
		s.OnKeyUp(e.Key, e.Code, e.TimestampMs, e.Correct)
	}
	s.SetCursor(s.Cursor() + 1)
}
