package session

import (
	"testing"

	"github.com/keybeat/keybeat/internal/model"
)

func TestDwellAndFlight(t *testing.T) {
	s := New("ab")
	s.OnKeyDown("a", "KeyA", 1000)
	s.OnKeyUp("a", "KeyA", 1080, true)
	s.SetCursor(1)
	s.OnKeyDown("b", "KeyB", 1200)
	s.OnKeyUp("b", "KeyB", 1260, true)

	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0]
	if first.DwellMs != 80 {
		t.Fatalf("expected dwell 80, got %d", first.DwellMs)
	}
	if first.FlightMs != nil {
		t.Fatalf("expected nil flight on first event, got %d", *first.FlightMs)
	}
	if first.Expected != "a" || first.Position != 0 {
		t.Fatalf("expected position 0 / %q, got %d / %q", "a", first.Position, first.Expected)
	}
	second := events[1]
	if second.DwellMs != 60 {
		t.Fatalf("expected dwell 60, got %d", second.DwellMs)
	}
	if second.FlightMs == nil || *second.FlightMs != 120 {
		t.Fatalf("expected flight 120, got %v", second.FlightMs)
	}
	if second.Expected != "b" {
		t.Fatalf("expected %q, got %q", "b", second.Expected)
	}
}

func TestKeyRepeatKeepsFirstPress(t *testing.T) {
	s := New("a")
	s.OnKeyDown("a", "KeyA", 1000)
	// OS key-repeat redelivers key-down for a held key.
	s.OnKeyDown("a", "KeyA", 1050)
	s.OnKeyUp("a", "KeyA", 1100, true)

	events := s.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].DwellMs != 100 {
		t.Fatalf("expected dwell 100 from first press, got %d", events[0].DwellMs)
	}
}

func TestReleaseWithoutPressIgnored(t *testing.T) {
	s := New("a")
	s.OnKeyUp("a", "KeyA", 1000, true)
	if len(s.Events()) != 0 {
		t.Fatalf("expected no events, got %d", len(s.Events()))
	}
}

func TestOverlappingKeys(t *testing.T) {
	s := New("ab")
	s.OnKeyDown("a", "KeyA", 1000)
	s.OnKeyDown("b", "KeyB", 1040)
	if s.HeldKeys() != 2 {
		t.Fatalf("expected 2 held keys, got %d", s.HeldKeys())
	}
	s.OnKeyUp("a", "KeyA", 1100, true)
	s.SetCursor(1)
	s.OnKeyUp("b", "KeyB", 1150, true)

	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].DwellMs != 100 || events[1].DwellMs != 110 {
		t.Fatalf("unexpected dwells: %d, %d", events[0].DwellMs, events[1].DwellMs)
	}
	// Second event's flight runs from the first release to its own press,
	// which precedes it.
	if events[1].FlightMs == nil || *events[1].FlightMs != -60 {
		t.Fatalf("expected flight -60, got %v", events[1].FlightMs)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := New("ab")
	s.OnKeyDown("a", "KeyA", 1000)
	s.OnKeyUp("a", "KeyA", 1080, true)
	s.SetCursor(1)

	s.Reset()
	s.Reset()

	if len(s.Events()) != 0 || s.HeldKeys() != 0 || s.Cursor() != 0 {
		t.Fatalf("reset left state behind: events=%d held=%d cursor=%d", len(s.Events()), s.HeldKeys(), s.Cursor())
	}
	if s.Text() != "ab" {
		t.Fatalf("reset must keep text, got %q", s.Text())
	}

	s.OnKeyDown("a", "KeyA", 2000)
	s.OnKeyUp("a", "KeyA", 2050, true)
	events := s.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event after reuse, got %d", len(events))
	}
	if events[0].FlightMs != nil {
		t.Fatalf("first event after reset must have nil flight, got %d", *events[0].FlightMs)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		code   string
		key    string
		finger model.Finger
		hand   model.Hand
	}{
		{"KeyF", "f", model.FingerLeftIndex, model.HandLeft},
		{"KeyJ", "j", model.FingerRightIndex, model.HandRight},
		{"Space", " ", model.FingerThumb, model.HandBoth},
		{"", "a", model.FingerLeftPinky, model.HandLeft},
		{"", "A", model.FingerLeftPinky, model.HandLeft},
		{"", "€", "", ""},
	}
	for _, tt := range tests {
		finger, hand := Lookup(tt.code, tt.key)
		if finger != tt.finger || hand != tt.hand {
			t.Fatalf("Lookup(%q, %q) = %q/%q, expected %q/%q", tt.code, tt.key, finger, hand, tt.finger, tt.hand)
		}
	}
}
