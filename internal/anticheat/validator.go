// Package anticheat flags keystroke streams that are statistically
// implausible for human motor control.
//
// The pass is a bounded, explainable heuristic score, not a verdict: each
// signal contributes a named flag, and all raw diagnostics are returned for
// auditability. It never fails; with too little data it returns the neutral
// result.
package anticheat

import (
	"math"

	"github.com/keybeat/keybeat/internal/model"
)

// Heuristic flag names, stable across releases for downstream audit logs.
const (
	FlagInhumanSpeed        = "inhuman_speed"
	FlagImpossibleWPM       = "impossible_wpm"
	FlagProgrammaticPattern = "programmatic_pattern"
	FlagBurstTyping         = "burst_typing"
	FlagPerfectRhythm       = "perfect_rhythm"
	FlagUniformFlightTimes  = "uniform_flight_times"
)

// Thresholds carries every tunable of the heuristic pass. The defaults are
// empirically derived; hosts may override them from configuration.
type Thresholds struct {
	// MinEvents is the minimum-analysis threshold; below it the neutral
	// result is returned.
	MinEvents int

	// MinHumanIntervalMs is the fastest humanly possible inter-press gap.
	MinHumanIntervalMs float64

	// MaxHumanWPM is the hard WPM ceiling for the impossible_wpm flag.
	MaxHumanWPM float64

	// NearZeroVarianceMs2 is the variance floor below which timing is
	// considered machine-uniform.
	NearZeroVarianceMs2 float64

	// ProgrammaticMinIntervals gates the programmatic_pattern flag; uniform
	// timing only counts across more intervals than this.
	ProgrammaticMinIntervals int

	// BurstWindow is the interval-count window for burst detection.
	BurstWindow int

	// BurstFastMs is the "suspect fast" interval threshold inside a window.
	BurstFastMs float64

	// BurstRatio is the in-window fraction of fast intervals that triggers
	// burst_typing.
	BurstRatio float64

	// PerfectRhythmDeltaMs bounds a "near identical" interval-to-interval
	// delta.
	PerfectRhythmDeltaMs float64

	// PerfectRhythmRatio is the fraction of near-identical deltas that
	// triggers perfect_rhythm.
	PerfectRhythmRatio float64

	// FlightBandMaxMs is the plausible flight-time band for the uniformity
	// check.
	FlightBandMaxMs float64

	// FlightUniformMin is the minimum in-band flight sample for the
	// uniformity check.
	FlightUniformMin int

	// FlagPenalty and SyntheticPenalty drive the validation score:
	// 100 - FlagPenalty*flags - SyntheticPenalty if synthetic.
	FlagPenalty      int
	SyntheticPenalty int

	// SuspiciousFlagCount is the flag count at which the stream is marked
	// suspicious.
	SuspiciousFlagCount int
}

// DefaultThresholds returns the empirically-derived defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinEvents:                20,
		MinHumanIntervalMs:       10,
		MaxHumanWPM:              200,
		NearZeroVarianceMs2:      5,
		ProgrammaticMinIntervals: 20,
		BurstWindow:              10,
		BurstFastMs:              25,
		BurstRatio:               0.8,
		PerfectRhythmDeltaMs:     5,
		PerfectRhythmRatio:       0.95,
		FlightBandMaxMs:          500,
		FlightUniformMin:         10,
		FlagPenalty:              20,
		SyntheticPenalty:         30,
		SuspiciousFlagCount:      2,
	}
}

// Validate runs the heuristic pass with default thresholds. wpm is the
// externally computed net WPM, nil when unavailable.
func Validate(events []model.KeystrokeEvent, wpm *float64) model.AntiCheatResult {
	return ValidateWithThresholds(events, wpm, DefaultThresholds())
}

// ValidateWithThresholds runs the heuristic pass. Heuristic order matters
// for score accounting and is fixed.
func ValidateWithThresholds(events []model.KeystrokeEvent, wpm *float64, t Thresholds) model.AntiCheatResult {
	if len(events) < t.MinEvents {
		// Not enough data to judge.
		return model.AntiCheatResult{ValidationScore: 100}
	}

	result := model.AntiCheatResult{}
	intervals := interPressIntervals(events)

	if len(intervals) > 0 {
		minInterval := intervals[0]
		for _, iv := range intervals[1:] {
			if iv < minInterval {
				minInterval = iv
			}
		}
		result.MinIntervalMs = &minInterval

		variance := math.Round(popVariance(intervals)*100) / 100
		result.IntervalVarianceMs2 = &variance

		if minInterval < t.MinHumanIntervalMs {
			result.Flags = append(result.Flags, FlagInhumanSpeed)
			result.SyntheticInputDetected = true
		}
	}

	if wpm != nil && *wpm > t.MaxHumanWPM {
		result.Flags = append(result.Flags, FlagImpossibleWPM)
	}

	programmatic := false
	if result.IntervalVarianceMs2 != nil &&
		*result.IntervalVarianceMs2 < t.NearZeroVarianceMs2 &&
		len(intervals) > t.ProgrammaticMinIntervals {
		// Uniform timing across many keystrokes is inconsistent with human
		// motor variability.
		result.Flags = append(result.Flags, FlagProgrammaticPattern)
		result.SyntheticInputDetected = true
		programmatic = true
	}

	if hasFastBurst(intervals, t) {
		result.Flags = append(result.Flags, FlagBurstTyping)
	}

	if hasPerfectRhythm(intervals, t) {
		result.Flags = append(result.Flags, FlagPerfectRhythm)
		result.SyntheticInputDetected = true
	}

	// Skipped when programmatic_pattern already fired, to avoid penalizing
	// the same uniformity signal twice.
	if !programmatic && hasUniformFlights(events, t) {
		result.Flags = append(result.Flags, FlagUniformFlightTimes)
		result.SyntheticInputDetected = true
	}

	score := 100 - t.FlagPenalty*len(result.Flags)
	if result.SyntheticInputDetected {
		score -= t.SyntheticPenalty
	}
	if score < 0 {
		score = 0
	}
	result.ValidationScore = score
	result.Suspicious = len(result.Flags) >= t.SuspiciousFlagCount
	return result
}

// interPressIntervals returns the strictly positive press-to-press gaps.
func interPressIntervals(events []model.KeystrokeEvent) []float64 {
	var intervals []float64
	for i := 1; i < len(events); i++ {
		iv := float64(events[i].PressedAt - events[i-1].PressedAt)
		if iv > 0 {
			intervals = append(intervals, iv)
		}
	}
	return intervals
}

// hasFastBurst slides a fixed window across the intervals and reports
// whether any window's fraction of suspect-fast intervals reaches the ratio.
func hasFastBurst(intervals []float64, t Thresholds) bool {
	if len(intervals) < t.BurstWindow {
		return false
	}
	for i := 0; i+t.BurstWindow <= len(intervals); i++ {
		fast := 0
		for _, iv := range intervals[i : i+t.BurstWindow] {
			if iv < t.BurstFastMs {
				fast++
			}
		}
		if float64(fast)/float64(t.BurstWindow) >= t.BurstRatio {
			return true
		}
	}
	return false
}

// hasPerfectRhythm reports whether the fraction of consecutive
// interval-to-interval deltas below the near-zero bound exceeds the ratio.
func hasPerfectRhythm(intervals []float64, t Thresholds) bool {
	if len(intervals) < 2 {
		return false
	}
	near := 0
	for i := 1; i < len(intervals); i++ {
		if math.Abs(intervals[i]-intervals[i-1]) < t.PerfectRhythmDeltaMs {
			near++
		}
	}
	return float64(near)/float64(len(intervals)-1) > t.PerfectRhythmRatio
}

// hasUniformFlights filters flight times to the plausible band and reports
// machine-uniform variance over a sufficient sample.
func hasUniformFlights(events []model.KeystrokeEvent, t Thresholds) bool {
	var flights []float64
	for _, e := range events {
		if e.FlightMs == nil {
			continue
		}
		f := float64(*e.FlightMs)
		if f >= 0 && f <= t.FlightBandMaxMs {
			flights = append(flights, f)
		}
	}
	if len(flights) <= t.FlightUniformMin {
		return false
	}
	return popVariance(flights) < t.NearZeroVarianceMs2
}

// popVariance is the population variance (divide by n).
func popVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return sq / float64(len(values))
}
