// Package session records press/release events for one typing exercise.
package session

import (
	"github.com/keybeat/keybeat/internal/model"
)

// Session owns the event log for a single timed exercise. It is bound to one
// expected text at creation and mutated only through OnKeyDown, OnKeyUp, and
// SetCursor. All callbacks arrive serially on the interaction thread; the
// session is not safe for concurrent use.
type Session struct {
	text   []rune
	events []model.KeystrokeEvent

	// pending maps currently-held keys to their press timestamp. It supports
	// multi-key overlap and guards against duplicate key-down delivery.
	pending map[string]int64

	lastRelease    int64
	hasLastRelease bool

	// cursor is advanced externally by the caller based on actual input
	// state, never auto-incremented here. That keeps backspacing and IME
	// composition out of the recorder.
	cursor int
}

// New creates a session bound to the given expected text.
func New(text string) *Session {
	return &Session{
		text:    []rune(text),
		pending: map[string]int64{},
	}
}

// OnKeyDown records the press timestamp for key unless the key is already
// held. Key-repeat delivers repeated key-down events for a held key; only the
// first press timestamp is kept until release.
func (s *Session) OnKeyDown(key, code string, timestampMs int64) {
	if _, held := s.pending[key]; held {
		return
	}
	s.pending[key] = timestampMs
}

// OnKeyUp completes the press/release pair for key at the current cursor
// position, deriving the expected character from the session text. A release
// with no matching open press is ignored.
func (s *Session) OnKeyUp(key, code string, timestampMs int64, correct bool) {
	expected := ""
	if s.cursor >= 0 && s.cursor < len(s.text) {
		expected = string(s.text[s.cursor])
	}
	s.OnKeyUpAt(key, code, timestampMs, correct, expected, s.cursor)
}

// OnKeyUpAt completes the press/release pair for key with a caller-supplied
// expected character and position. The overrides exist for hosts that own
// cursor semantics themselves (edits, backspacing, IME composition).
func (s *Session) OnKeyUpAt(key, code string, timestampMs int64, correct bool, expected string, position int) {
	pressedAt, held := s.pending[key]
	if !held {
		// Defensive against event-ordering races from the capture layer.
		return
	}
	delete(s.pending, key)

	event := model.KeystrokeEvent{
		Key:        key,
		Code:       code,
		PressedAt:  pressedAt,
		ReleasedAt: timestampMs,
		DwellMs:    timestampMs - pressedAt,
		Correct:    correct,
		Expected:   expected,
		Position:   position,
	}
	if s.hasLastRelease {
		flight := pressedAt - s.lastRelease
		event.FlightMs = &flight
	}
	event.Finger, event.Hand = Lookup(code, key)

	s.events = append(s.events, event)
	s.lastRelease = timestampMs
	s.hasLastRelease = true
}

// SetCursor moves the cursor to the given position in the expected text.
func (s *Session) SetCursor(position int) {
	s.cursor = position
}

// Cursor returns the current cursor position.
func (s *Session) Cursor() int {
	return s.cursor
}

// Text returns the expected text the session is bound to.
func (s *Session) Text() string {
	return string(s.text)
}

// Events returns the ordered event log. The analytics pass reads it exactly
// once after the session is closed; callers must not mutate it.
func (s *Session) Events() []model.KeystrokeEvent {
	return s.events
}

// HeldKeys returns the number of keys currently held down.
func (s *Session) HeldKeys() int {
	return len(s.pending)
}

// Reset clears all buffers so the session can be reused for the same text.
// It is idempotent and safe to call from any state.
func (s *Session) Reset() {
	s.events = nil
	s.pending = map[string]int64{}
	s.lastRelease = 0
	s.hasLastRelease = false
	s.cursor = 0
}
