// Package analytics computes derived metrics over a closed keystroke log.
//
// Every function is a pure pass over an immutable event slice: no I/O, no
// shared state, bounded by the event count. Metrics that cannot be computed
// from the available sample are returned as nil, never as zero or NaN.
package analytics

import "math"

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// popVariance is the population variance (divide by n, not n-1).
func popVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func popStdDev(values []float64) float64 {
	return math.Sqrt(popVariance(values))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func fptr(v float64) *float64 {
	return &v
}

func iptr(v int) *int {
	return &v
}
