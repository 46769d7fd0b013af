package analytics

import (
	"math"
	"testing"

	"github.com/keybeat/keybeat/internal/model"
)

func TestAvgDwellEmpty(t *testing.T) {
	if got := AvgDwell(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", *got)
	}
}

func TestAvgDwell(t *testing.T) {
	events := []model.KeystrokeEvent{
		{DwellMs: 60},
		{DwellMs: 100},
	}
	got := AvgDwell(events)
	if got == nil || *got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}
}

func TestFlightStatsSkipsUndefinedFlights(t *testing.T) {
	events := []model.KeystrokeEvent{
		{},                      // first keystroke, no flight
		{FlightMs: flight(100)},
		{FlightMs: flight(200)},
	}
	avg, stdDev := FlightStats(events)
	if avg == nil || *avg != 150 {
		t.Fatalf("expected avg 150, got %v", avg)
	}
	if stdDev == nil || *stdDev != 50 {
		t.Fatalf("expected std dev 50, got %v", stdDev)
	}
}

func TestFlightStatsNoFlights(t *testing.T) {
	events := []model.KeystrokeEvent{{}, {}}
	avg, stdDev := FlightStats(events)
	if avg != nil || stdDev != nil {
		t.Fatalf("expected nil stats, got %v / %v", avg, stdDev)
	}
}

func TestConsistencyScorePerfectlyRegular(t *testing.T) {
	events := evenEvents(10, 1000, 150, 80)
	got := ConsistencyScore(events)
	if got == nil || *got != 100 {
		t.Fatalf("expected 100 for zero variance, got %v", got)
	}
}

func TestConsistencyScoreKnownVariation(t *testing.T) {
	// Flights alternate 100/300: mean 200, population std dev 100, cv 0.5.
	events := []model.KeystrokeEvent{{}}
	for i := 0; i < 6; i++ {
		f := int64(100)
		if i%2 == 1 {
			f = 300
		}
		events = append(events, model.KeystrokeEvent{FlightMs: flight(f)})
	}
	got := ConsistencyScore(events)
	if got == nil {
		t.Fatalf("expected a score")
	}
	if math.Abs(*got-75) > 1e-9 {
		t.Fatalf("expected 75, got %v", *got)
	}
}

func TestConsistencyScoreInsufficientSample(t *testing.T) {
	// Two flights are below the minimum sample.
	events := []model.KeystrokeEvent{
		{},
		{FlightMs: flight(100)},
		{FlightMs: flight(120)},
	}
	if got := ConsistencyScore(events); got != nil {
		t.Fatalf("expected nil below minimum sample, got %v", *got)
	}
}

func TestConsistencyScorePauseFallback(t *testing.T) {
	// All flights sit beyond the outlier band; the score falls back to the
	// positive flights rather than returning nothing.
	events := []model.KeystrokeEvent{
		{},
		{FlightMs: flight(1500)},
		{FlightMs: flight(1500)},
		{FlightMs: flight(1500)},
	}
	got := ConsistencyScore(events)
	if got == nil || *got != 100 {
		t.Fatalf("expected fallback score 100, got %v", got)
	}
}

func TestScoresStayInRange(t *testing.T) {
	// Wildly irregular flights must clamp to zero, never go negative.
	events := []model.KeystrokeEvent{
		{},
		{FlightMs: flight(1)},
		{FlightMs: flight(400)},
		{FlightMs: flight(2)},
		{FlightMs: flight(450)},
		{FlightMs: flight(3)},
	}
	for name, score := range map[string]*float64{
		"consistency": ConsistencyScore(events),
		"rhythm":      RhythmScore(events),
	} {
		if score == nil {
			t.Fatalf("%s: expected a score", name)
		}
		if *score < 0 || *score > 100 {
			t.Fatalf("%s: score %v out of range", name, *score)
		}
	}
}
