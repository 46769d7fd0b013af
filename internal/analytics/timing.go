package analytics

import (
	"github.com/keybeat/keybeat/internal/model"
)

const (
	// cvScale maps the coefficient of variation of flight times onto the
	// 0-100 score range. Empirically chosen so ordinary human variance lands
	// in a usable band; fixed so scores stay comparable across sessions.
	cvScale = 50

	// consistencyBandMs excludes pause outliers from the consistency score.
	consistencyBandMs = 1000

	// rhythmBandMs is the tighter band used for the rhythm score.
	rhythmBandMs = 500

	// minFlightSamples is the smallest flight sample a cv score accepts.
	minFlightSamples = 3
)

// AvgDwell returns the population mean dwell time, or nil without events.
func AvgDwell(events []model.KeystrokeEvent) *float64 {
	if len(events) == 0 {
		return nil
	}
	dwells := make([]float64, len(events))
	for i, e := range events {
		dwells[i] = float64(e.DwellMs)
	}
	return fptr(mean(dwells))
}

// FlightStats returns the population mean and standard deviation over
// exactly the events with a defined flight time. Both are nil when no event
// carries one.
func FlightStats(events []model.KeystrokeEvent) (avg, stdDev *float64) {
	flights := flightTimes(events)
	if len(flights) == 0 {
		return nil, nil
	}
	return fptr(mean(flights)), fptr(popStdDev(flights))
}

// ConsistencyScore is the 0-100 flight-time regularity score using the wide
// outlier band.
func ConsistencyScore(events []model.KeystrokeEvent) *float64 {
	return cvScore(events, consistencyBandMs)
}

// RhythmScore is the 0-100 flight-time regularity score using the tight
// band. Kept as a separate named output for forward compatibility even
// though it shares the consistency algorithm.
func RhythmScore(events []model.KeystrokeEvent) *float64 {
	return cvScore(events, rhythmBandMs)
}

// cvScore filters flight times to (0, bandMs), falls back to all strictly
// positive flights when fewer than minFlightSamples survive, and maps the
// coefficient of variation to 100 - cv*cvScale clamped to [0, 100].
func cvScore(events []model.KeystrokeEvent, bandMs float64) *float64 {
	all := flightTimes(events)
	var positive, banded []float64
	for _, f := range all {
		if f <= 0 {
			continue
		}
		positive = append(positive, f)
		if f < bandMs {
			banded = append(banded, f)
		}
	}
	sample := banded
	if len(sample) < minFlightSamples {
		sample = positive
	}
	if len(sample) < minFlightSamples {
		return nil
	}
	m := mean(sample)
	if m <= 0 {
		return nil
	}
	cv := popStdDev(sample) / m
	return fptr(clamp(100-cv*cvScale, 0, 100))
}

func flightTimes(events []model.KeystrokeEvent) []float64 {
	var flights []float64
	for _, e := range events {
		if e.FlightMs != nil {
			flights = append(flights, float64(*e.FlightMs))
		}
	}
	return flights
}
