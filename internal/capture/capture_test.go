package capture

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/keybeat/keybeat/internal/analytics"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")

	pos := 0
	log := Log{
		Version: LogVersion,
		Text:    "ab",
		Events: []RawEvent{
			{Type: EventDown, Key: "a", Code: "KeyA", TimestampMs: 1000},
			{Type: EventUp, Key: "a", Code: "KeyA", TimestampMs: 1080, Correct: true, Expected: "a", Position: &pos},
		},
	}
	if err := Save(path, log); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Text != "ab" || len(loaded.Events) != 2 {
		t.Fatalf("unexpected log: %+v", loaded)
	}
	if loaded.Events[1].Position == nil || *loaded.Events[1].Position != 0 {
		t.Fatalf("position lost in round trip: %+v", loaded.Events[1])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		log  Log
		want string
	}{
		{"bad version", Log{Version: 99, Text: "a"}, "unsupported"},
		{"no text", Log{Version: LogVersion}, "no expected text"},
		{"bad type", Log{Version: LogVersion, Text: "a", Events: []RawEvent{{Type: "hold", Key: "a"}}}, "unknown type"},
		{"no key", Log{Version: LogVersion, Text: "a", Events: []RawEvent{{Type: EventDown}}}, "no key"},
	}
	for _, tt := range tests {
		err := tt.log.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestReplayAdvancesCursor(t *testing.T) {
	log := Log{
		Version: LogVersion,
		Text:    "ab",
		Events: []RawEvent{
			{Type: EventDown, Key: "a", Code: "KeyA", TimestampMs: 1000},
			{Type: EventUp, Key: "a", Code: "KeyA", TimestampMs: 1080, Correct: true},
			{Type: EventDown, Key: "b", Code: "KeyB", TimestampMs: 1200},
			{Type: EventUp, Key: "b", Code: "KeyB", TimestampMs: 1270, Correct: true},
		},
	}
	s := Replay(log)
	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Expected != "a" || events[1].Expected != "b" {
		t.Fatalf("expected characters not derived: %q, %q", events[0].Expected, events[1].Expected)
	}
	if s.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", s.Cursor())
	}
}

func TestReplayBackspaceStepsBack(t *testing.T) {
	log := Log{
		Version: LogVersion,
		Text:    "ab",
		Events: []RawEvent{
			{Type: EventDown, Key: "x", TimestampMs: 1000},
			{Type: EventUp, Key: "x", TimestampMs: 1060, Correct: false},
			{Type: EventDown, Key: "Backspace", TimestampMs: 1200},
			{Type: EventUp, Key: "Backspace", TimestampMs: 1250},
			{Type: EventDown, Key: "a", TimestampMs: 1400},
			{Type: EventUp, Key: "a", TimestampMs: 1460, Correct: true},
		},
	}
	s := Replay(log)
	events := s.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// The retyped "a" must land back at position 0.
	if events[2].Position != 0 || events[2].Expected != "a" {
		t.Fatalf("expected retype at position 0, got %d/%q", events[2].Position, events[2].Expected)
	}
	if s.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", s.Cursor())
	}
}

func TestReplayExplicitPositionsWin(t *testing.T) {
	pos := 5
	log := Log{
		Version: LogVersion,
		Text:    "abcdefgh",
		Events: []RawEvent{
			{Type: EventDown, Key: "f", TimestampMs: 1000},
			{Type: EventUp, Key: "f", TimestampMs: 1060, Correct: true, Expected: "f", Position: &pos},
		},
	}
	s := Replay(log)
	events := s.Events()
	if len(events) != 1 || events[0].Position != 5 {
		t.Fatalf("expected explicit position 5, got %+v", events)
	}
	if s.Cursor() != 6 {
		t.Fatalf("expected cursor 6, got %d", s.Cursor())
	}
}

func TestGenerateUnknownProfile(t *testing.T) {
	if _, err := Generate("no-such-profile", "abc", 1); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}

func TestGenerateEventCount(t *testing.T) {
	text := "hello world"
	log, err := Generate("human", text, 42)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(log.Events) != 2*len([]rune(text)) {
		t.Fatalf("expected %d events, got %d", 2*len([]rune(text)), len(log.Events))
	}
	if err := log.Validate(); err != nil {
		t.Fatalf("generated log invalid: %v", err)
	}
	s := Replay(log)
	if len(s.Events()) != len([]rune(text)) {
		t.Fatalf("expected %d keystrokes after replay, got %d", len([]rune(text)), len(s.Events()))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate("fast-typist", "determinism", 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := Generate("fast-typist", "determinism", 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(a.Events) != len(b.Events) {
		t.Fatalf("event counts differ: %d vs %d", len(a.Events), len(b.Events))
	}
	for i := range a.Events {
		if !reflect.DeepEqual(a.Events[i], b.Events[i]) {
			t.Fatalf("event %d differs: %+v vs %+v", i, a.Events[i], b.Events[i])
		}
	}
}

func TestBotUniformDetectedEndToEnd(t *testing.T) {
	text := "the quick brown fox jumps over it"
	log, err := Generate("bot-uniform", text, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	s := Replay(log)
	report := analytics.Assemble(s.Text(), s.Events())
	if !report.AntiCheat.SyntheticInputDetected {
		t.Fatalf("uniform bot stream not detected: %+v", report.AntiCheat)
	}
	if !report.AntiCheat.Suspicious {
		t.Fatalf("expected suspicious verdict, got %+v", report.AntiCheat)
	}
	if report.AntiCheat.ValidationScore >= 100 {
		t.Fatalf("expected degraded score, got %d", report.AntiCheat.ValidationScore)
	}
}
