package analytics

import (
	"github.com/keybeat/keybeat/internal/model"
)

// evenEvents builds n correct keystrokes with a fixed press-to-press gap and
// dwell, starting at startMs. Flight times follow from the gaps.
func evenEvents(n int, startMs, gapMs, dwellMs int64) []model.KeystrokeEvent {
	keys := []string{"a", "s", "d", "f", "j", "k", "l"}
	events := make([]model.KeystrokeEvent, 0, n)
	for i := 0; i < n; i++ {
		pressedAt := startMs + int64(i)*gapMs
		e := model.KeystrokeEvent{
			Key:        keys[i%len(keys)],
			PressedAt:  pressedAt,
			ReleasedAt: pressedAt + dwellMs,
			DwellMs:    dwellMs,
			Correct:    true,
			Expected:   keys[i%len(keys)],
			Position:   i,
		}
		if i > 0 {
			flight := gapMs - dwellMs
			e.FlightMs = &flight
		}
		events = append(events, e)
	}
	return events
}

func flight(ms int64) *int64 {
	return &ms
}
