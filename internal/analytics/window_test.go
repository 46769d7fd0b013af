package analytics

import (
	"math"
	"testing"
)

func TestBurstWPMBelowMinimum(t *testing.T) {
	events := evenEvents(4, 1000, 150, 80)
	if got := BurstWPM(events); got != nil {
		t.Fatalf("expected nil below minimum events, got %v", *got)
	}
}

func TestBurstWPM(t *testing.T) {
	// 10 correct keystrokes inside one 5s window.
	events := evenEvents(10, 1000, 150, 80)
	got := BurstWPM(events)
	if got == nil {
		t.Fatalf("expected a burst value")
	}
	want := (10.0 / 5.0) / (5000.0 / 60000.0)
	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, *got)
	}
}

func TestBurstWPMCapped(t *testing.T) {
	// 200 keystrokes at 20ms apart is far beyond the cap.
	events := evenEvents(200, 1000, 20, 10)
	got := BurstWPM(events)
	if got == nil || *got != 300 {
		t.Fatalf("expected capped 300, got %v", got)
	}
}

func TestWPMByPosition(t *testing.T) {
	if got := WPMByPosition(evenEvents(4, 1000, 150, 80)); got != nil {
		t.Fatalf("expected nil below minimum events, got %v", got)
	}
	got := WPMByPosition(evenEvents(40, 1000, 150, 80))
	if len(got) != 10 {
		t.Fatalf("expected 10 buckets, got %d", len(got))
	}
	for i, wpm := range got {
		if wpm < 0 || wpm > 300 {
			t.Fatalf("bucket %d out of range: %v", i, wpm)
		}
	}
}

func TestRollingAccuracy(t *testing.T) {
	if got := RollingAccuracy(evenEvents(9, 1000, 150, 80)); got != nil {
		t.Fatalf("expected nil below minimum events, got %v", got)
	}
	events := evenEvents(20, 1000, 150, 80)
	// Make the final quarter all wrong.
	for i := 15; i < 20; i++ {
		events[i].Correct = false
	}
	got := RollingAccuracy(events)
	if len(got) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(got))
	}
	if got[0] != 100 {
		t.Fatalf("expected first bucket 100, got %v", got[0])
	}
	if got[3] != 75 {
		t.Fatalf("expected fourth bucket 75, got %v", got[3])
	}
	if got[4] != 0 {
		t.Fatalf("expected last bucket 0, got %v", got[4])
	}
}

func TestPeak(t *testing.T) {
	if got := Peak(evenEvents(4, 1000, 150, 80)); got != nil {
		t.Fatalf("expected nil below minimum events, got %+v", got)
	}
	events := evenEvents(20, 1000, 150, 80)
	got := Peak(events)
	if got == nil {
		t.Fatalf("expected a peak window")
	}
	if got.StartPosition < 0 || got.EndPosition <= got.StartPosition {
		t.Fatalf("bad window positions: %d-%d", got.StartPosition, got.EndPosition)
	}
	if got.WPM <= 0 || got.WPM > 300 {
		t.Fatalf("peak wpm out of range: %v", got.WPM)
	}
}

func TestFatigueSlowdown(t *testing.T) {
	first := evenEvents(10, 0, 100, 50)
	second := evenEvents(10, 1100, 200, 50)
	events := append(first, second...)
	got := Fatigue(events)
	if got == nil {
		t.Fatalf("expected a fatigue value")
	}
	if *got != 49 {
		t.Fatalf("expected 49%% slowdown, got %d", *got)
	}
}

func TestFatigueBelowMinimum(t *testing.T) {
	if got := Fatigue(evenEvents(9, 1000, 150, 80)); got != nil {
		t.Fatalf("expected nil below minimum half size, got %d", *got)
	}
}

func TestAdjustedWPM(t *testing.T) {
	events := evenEvents(10, 0, 100, 50)
	got := AdjustedWPM(events, nil)
	if got == nil {
		t.Fatalf("expected a value")
	}
	// 10 correct over 950ms.
	want := (10.0 / 5.0) / (950.0 / 60000.0)
	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, *got)
	}
}

func TestAdjustedWPMFallsBackToNet(t *testing.T) {
	net := 42.0
	got := AdjustedWPM(evenEvents(1, 0, 100, 50), &net)
	if got == nil || *got != 42 {
		t.Fatalf("expected net fallback 42, got %v", got)
	}
}
