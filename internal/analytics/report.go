package analytics

import (
	"github.com/keybeat/keybeat/internal/anticheat"
	"github.com/keybeat/keybeat/internal/model"
)

// Assemble builds the full report for a closed session with default
// anti-cheat thresholds.
func Assemble(text string, events []model.KeystrokeEvent) model.AnalyticsReport {
	return AssembleWithThresholds(text, events, anticheat.DefaultThresholds())
}

// AssembleWithThresholds builds the full report for a closed session. The
// pass is pure and side-effect free; it may run on a background goroutine
// without affecting correctness.
func AssembleWithThresholds(text string, events []model.KeystrokeEvent, thresholds anticheat.Thresholds) model.AnalyticsReport {
	report := model.AnalyticsReport{}

	report.WPM, report.RawWPM, report.Accuracy = speedAndAccuracy(events)
	report.AdjustedWPM = AdjustedWPM(events, report.WPM)
	report.BurstWPM = BurstWPM(events)

	report.Consistency = ConsistencyScore(events)
	report.TypingRhythm = RhythmScore(events)
	report.AvgDwellMs = AvgDwell(events)
	report.AvgFlightMs, report.StdDevFlightMs = FlightStats(events)

	report.FastestDigraph, report.SlowestDigraph = DigraphExtremes(events)
	report.TopDigraphs, report.BottomDigraphs = DigraphProfile(events)

	report.FingerUsage, report.HandBalance = fingerUsage(events)
	report.KeyHeatmap = keyHeatmap(events)

	report.TotalErrors, report.ErrorTypes, report.ErrorKeys = ClassifyErrors(events)
	report.ErrorBurstCount = ErrorBurstCount(events)
	report.SlowestWords = SlowestWords(text, events)

	report.WPMByPosition = WPMByPosition(events)
	report.RollingAccuracy = RollingAccuracy(events)
	report.PeakWindow = Peak(events)
	report.FatigueIndicator = Fatigue(events)

	report.AntiCheat = anticheat.ValidateWithThresholds(events, report.WPM, thresholds)
	return report
}

// speedAndAccuracy computes net WPM (correct chars), raw WPM (all chars),
// and accuracy percent over the whole session. All nil when the session
// carries no usable duration.
func speedAndAccuracy(events []model.KeystrokeEvent) (wpm, rawWPM, accuracy *float64) {
	if len(events) == 0 {
		return nil, nil, nil
	}
	correct := 0
	for _, e := range events {
		if e.Correct {
			correct++
		}
	}
	accuracy = fptr(float64(correct) / float64(len(events)) * 100)

	if len(events) < 2 {
		return nil, nil, accuracy
	}
	durationMs := events[len(events)-1].ReleasedAt - events[0].PressedAt
	if durationMs <= 0 {
		return nil, nil, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	wpm = fptr((float64(correct) / 5.0) / minutes)
	rawWPM = fptr((float64(len(events)) / 5.0) / minutes)
	return wpm, rawWPM, accuracy
}

// fingerUsage counts keystrokes per mapped finger and derives the hand
// balance as the left share of handed (left or right) keystrokes. Balance is
// nil when no keystroke resolved to a single hand.
func fingerUsage(events []model.KeystrokeEvent) (map[model.Finger]int, *float64) {
	usage := map[model.Finger]int{}
	left, right := 0, 0
	for _, e := range events {
		if e.Finger != "" {
			usage[e.Finger]++
		}
		switch e.Hand {
		case model.HandLeft:
			left++
		case model.HandRight:
			right++
		}
	}
	if left+right == 0 {
		return usage, nil
	}
	return usage, fptr(float64(left) / float64(left+right))
}

func keyHeatmap(events []model.KeystrokeEvent) map[string]int {
	heatmap := map[string]int{}
	for _, e := range events {
		heatmap[e.Key]++
	}
	return heatmap
}
