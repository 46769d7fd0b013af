package analytics

import (
	"math"

	"github.com/keybeat/keybeat/internal/model"
)

const (
	// burstWindowMs is the sliding window for burst WPM.
	burstWindowMs = 5000

	// wpmCap guards windowed WPM against degenerate tiny-denominator windows.
	wpmCap = 300

	// minWindowEvents is the fixed minimum-sample threshold for windowed
	// metrics (burst, position buckets, peak, fatigue halves).
	minWindowEvents = 5

	// minRollingEvents is the threshold for the rolling accuracy buckets.
	minRollingEvents = 10

	positionBuckets = 10
	accuracyBuckets = 5

	// peakWindowFraction sizes the peak-performance window as a share of the
	// event count, rounded up.
	peakWindowFraction = 0.2
)

// BurstWPM is the highest WPM observed in any burstWindowMs sliding window,
// capped at wpmCap. Nil with fewer than minWindowEvents events.
func BurstWPM(events []model.KeystrokeEvent) *float64 {
	if len(events) < minWindowEvents {
		return nil
	}
	windowMinutes := float64(burstWindowMs) / 60000.0
	best := 0.0
	for i := range events {
		start := events[i].PressedAt
		correct := 0
		for j := i; j < len(events); j++ {
			if events[j].PressedAt-start >= burstWindowMs {
				break
			}
			if events[j].Correct {
				correct++
			}
		}
		wpm := (float64(correct) / 5.0) / windowMinutes
		if wpm > best {
			best = wpm
		}
	}
	if best > wpmCap {
		best = wpmCap
	}
	return fptr(best)
}

// WPMByPosition splits the log into positionBuckets contiguous chunks and
// computes per-chunk WPM from first press to last release. Chunks with fewer
// than 2 events or non-positive duration score 0; each bucket is capped at
// wpmCap. Nil with fewer than minWindowEvents events.
func WPMByPosition(events []model.KeystrokeEvent) []float64 {
	if len(events) < minWindowEvents {
		return nil
	}
	buckets := make([]float64, positionBuckets)
	for b := 0; b < positionBuckets; b++ {
		lo := b * len(events) / positionBuckets
		hi := (b + 1) * len(events) / positionBuckets
		buckets[b] = chunkWPM(events[lo:hi])
	}
	return buckets
}

// RollingAccuracy splits the log into accuracyBuckets contiguous chunks and
// returns per-chunk accuracy percent, 0 for empty chunks. Nil with fewer
// than minRollingEvents events.
func RollingAccuracy(events []model.KeystrokeEvent) []float64 {
	if len(events) < minRollingEvents {
		return nil
	}
	buckets := make([]float64, accuracyBuckets)
	for b := 0; b < accuracyBuckets; b++ {
		lo := b * len(events) / accuracyBuckets
		hi := (b + 1) * len(events) / accuracyBuckets
		chunk := events[lo:hi]
		if len(chunk) == 0 {
			continue
		}
		correct := 0
		for _, e := range chunk {
			if e.Correct {
				correct++
			}
		}
		buckets[b] = float64(correct) / float64(len(chunk)) * 100
	}
	return buckets
}

// Peak slides a window sized at peakWindowFraction of the event count
// (rounded up) across the log and returns the best windowed WPM with its
// start and end positions. Nil with fewer than minWindowEvents events.
func Peak(events []model.KeystrokeEvent) *model.PeakWindow {
	if len(events) < minWindowEvents {
		return nil
	}
	size := int(math.Ceil(float64(len(events)) * peakWindowFraction))
	if size < 2 {
		size = 2
	}
	var best *model.PeakWindow
	for i := 0; i+size <= len(events); i++ {
		window := events[i : i+size]
		wpm := chunkWPM(window)
		if best == nil || wpm > best.WPM {
			best = &model.PeakWindow{
				StartPosition: window[0].Position,
				EndPosition:   window[len(window)-1].Position,
				WPM:           wpm,
			}
		}
	}
	return best
}

// Fatigue splits the log at the midpoint and returns the rounded percent
// speed change from the first half to the second. Positive means slowing
// down. Nil when either half is below minWindowEvents events or the first
// half WPM is zero.
func Fatigue(events []model.KeystrokeEvent) *int {
	half := len(events) / 2
	if half < minWindowEvents || len(events)-half < minWindowEvents {
		return nil
	}
	first := chunkWPM(events[:half])
	second := chunkWPM(events[half:])
	if first == 0 {
		return nil
	}
	return iptr(int(math.Round((first - second) / first * 100)))
}

// AdjustedWPM is the canonical time-normalized rate: total correct
// keystrokes over 5, divided by elapsed minutes from first press to last
// release. When timing data is insufficient it falls back to the supplied
// net WPM.
func AdjustedWPM(events []model.KeystrokeEvent, netWPM *float64) *float64 {
	if len(events) >= 2 {
		durationMs := events[len(events)-1].ReleasedAt - events[0].PressedAt
		if durationMs > 0 {
			correct := 0
			for _, e := range events {
				if e.Correct {
					correct++
				}
			}
			minutes := float64(durationMs) / 60000.0
			return fptr((float64(correct) / 5.0) / minutes)
		}
	}
	return netWPM
}

// chunkWPM computes WPM for a contiguous slice of events using the chunk's
// own first-press-to-last-release duration, capped at wpmCap. Chunks with
// fewer than 2 events or non-positive duration score 0.
func chunkWPM(chunk []model.KeystrokeEvent) float64 {
	if len(chunk) < 2 {
		return 0
	}
	durationMs := chunk[len(chunk)-1].ReleasedAt - chunk[0].PressedAt
	if durationMs <= 0 {
		return 0
	}
	correct := 0
	for _, e := range chunk {
		if e.Correct {
			correct++
		}
	}
	minutes := float64(durationMs) / 60000.0
	wpm := (float64(correct) / 5.0) / minutes
	if wpm > wpmCap {
		wpm = wpmCap
	}
	return wpm
}
