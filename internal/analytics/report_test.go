package analytics

import (
	"testing"

	"github.com/keybeat/keybeat/internal/model"
)

// humanLikeEvents alternates 130/170ms gaps to carry ordinary variance while
// staying deterministic.
func humanLikeEvents(n int) []model.KeystrokeEvent {
	keys := []string{"a", "s", "d", "f", "j", "k", "l"}
	events := make([]model.KeystrokeEvent, 0, n)
	pressedAt := int64(1000)
	var lastRelease int64
	for i := 0; i < n; i++ {
		e := model.KeystrokeEvent{
			Key:        keys[i%len(keys)],
			PressedAt:  pressedAt,
			ReleasedAt: pressedAt + 80,
			DwellMs:    80,
			Correct:    true,
			Expected:   keys[i%len(keys)],
			Position:   i,
		}
		if i > 0 {
			flight := pressedAt - lastRelease
			e.FlightMs = &flight
		}
		lastRelease = e.ReleasedAt
		events = append(events, e)
		if i%2 == 0 {
			pressedAt += 130
		} else {
			pressedAt += 170
		}
	}
	return events
}

func TestAssembleEmptySession(t *testing.T) {
	report := Assemble("abc", nil)
	if report.WPM != nil || report.Accuracy != nil || report.AvgDwellMs != nil {
		t.Fatalf("expected nil metrics for empty session")
	}
	if report.AntiCheat.ValidationScore != 100 {
		t.Fatalf("expected neutral validation score, got %d", report.AntiCheat.ValidationScore)
	}
	if report.AntiCheat.Suspicious {
		t.Fatalf("empty session must not be suspicious")
	}
}

func TestAssembleHumanSession(t *testing.T) {
	events := humanLikeEvents(60)
	report := Assemble("asdfjkl asdfjkl", events)

	if report.Accuracy == nil || *report.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %v", report.Accuracy)
	}
	if report.WPM == nil || *report.WPM <= 0 {
		t.Fatalf("expected positive wpm, got %v", report.WPM)
	}
	if report.RawWPM == nil || *report.RawWPM < *report.WPM {
		t.Fatalf("raw wpm must be at least net wpm: %v vs %v", report.RawWPM, report.WPM)
	}
	if report.Consistency == nil || *report.Consistency < 0 || *report.Consistency > 100 {
		t.Fatalf("consistency out of range: %v", report.Consistency)
	}
	if report.AvgDwellMs == nil || *report.AvgDwellMs != 80 {
		t.Fatalf("expected avg dwell 80, got %v", report.AvgDwellMs)
	}
	if report.TotalErrors != 0 {
		t.Fatalf("expected no errors, got %d", report.TotalErrors)
	}
	if report.ErrorBurstCount == nil || *report.ErrorBurstCount != 0 {
		t.Fatalf("expected zero error bursts, got %v", report.ErrorBurstCount)
	}
	if len(report.WPMByPosition) != 10 {
		t.Fatalf("expected 10 position buckets, got %d", len(report.WPMByPosition))
	}
	if report.AntiCheat.Suspicious || report.AntiCheat.SyntheticInputDetected {
		t.Fatalf("human-like session flagged: %+v", report.AntiCheat)
	}
	if report.AntiCheat.ValidationScore != 100 {
		t.Fatalf("expected score 100, got %d (flags %v)", report.AntiCheat.ValidationScore, report.AntiCheat.Flags)
	}
}

func TestAssembleHandBalance(t *testing.T) {
	events := []model.KeystrokeEvent{
		{Key: "f", Hand: model.HandLeft, Finger: model.FingerLeftIndex, Correct: true},
		{Key: "f", Hand: model.HandLeft, Finger: model.FingerLeftIndex, Correct: true},
		{Key: "j", Hand: model.HandRight, Finger: model.FingerRightIndex, Correct: true},
		{Key: " ", Hand: model.HandBoth, Finger: model.FingerThumb, Correct: true},
	}
	report := Assemble("ffj ", events)
	if report.HandBalance == nil {
		t.Fatalf("expected a hand balance")
	}
	// Space is both-handed and excluded from the ratio.
	if *report.HandBalance != 2.0/3.0 {
		t.Fatalf("expected 2/3, got %v", *report.HandBalance)
	}
	if report.FingerUsage[model.FingerLeftIndex] != 2 || report.FingerUsage[model.FingerThumb] != 1 {
		t.Fatalf("unexpected finger usage: %v", report.FingerUsage)
	}
	if report.KeyHeatmap["f"] != 2 {
		t.Fatalf("expected heatmap f=2, got %d", report.KeyHeatmap["f"])
	}
}
