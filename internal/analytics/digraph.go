package analytics

import (
	"sort"
	"unicode/utf8"

	"github.com/keybeat/keybeat/internal/model"
)

const (
	// minDigraphCount is the occurrence threshold for ranking; single
	// occurrences are noise.
	minDigraphCount = 2

	digraphRankSize = 5
)

type digraphAgg struct {
	totalMs float64
	count   int
}

// DigraphProfile ranks digraphs with at least minDigraphCount occurrences by
// mean transition time. The fastest digraphRankSize come first ascending;
// the slowest come in descending order. Both are nil when fewer than
// digraphRankSize digraphs are eligible.
func DigraphProfile(events []model.KeystrokeEvent) (fastest, slowest []model.DigraphTiming) {
	timings := digraphTimings(aggregateDigraphs(events), minDigraphCount)
	if len(timings) < digraphRankSize {
		return nil, nil
	}
	fastest = append(fastest, timings[:digraphRankSize]...)
	for i := 0; i < digraphRankSize; i++ {
		slowest = append(slowest, timings[len(timings)-1-i])
	}
	return fastest, slowest
}

// DigraphExtremes returns the single globally fastest and slowest digraphs
// by mean transition time, with no occurrence-count threshold. Both are nil
// when no digraph exists.
func DigraphExtremes(events []model.KeystrokeEvent) (fastest, slowest *model.DigraphTiming) {
	timings := digraphTimings(aggregateDigraphs(events), 1)
	if len(timings) == 0 {
		return nil, nil
	}
	first := timings[0]
	last := timings[len(timings)-1]
	return &first, &last
}

// aggregateDigraphs sums transition times for every consecutive event pair
// with a valid prior release: transition = curr.press - prev.release, keyed
// by the two-character digraph. Named keys like "Backspace" are not glyphs
// and form no digraph, so pairs involving them are skipped.
func aggregateDigraphs(events []model.KeystrokeEvent) map[string]*digraphAgg {
	aggs := map[string]*digraphAgg{}
	for i := 1; i < len(events); i++ {
		prev := events[i-1]
		curr := events[i]
		if utf8.RuneCountInString(prev.Key) != 1 || utf8.RuneCountInString(curr.Key) != 1 {
			continue
		}
		digraph := prev.Key + curr.Key
		agg, ok := aggs[digraph]
		if !ok {
			agg = &digraphAgg{}
			aggs[digraph] = agg
		}
		agg.totalMs += float64(curr.PressedAt - prev.ReleasedAt)
		agg.count++
	}
	return aggs
}

// digraphTimings converts aggregates at or above minCount into timings
// sorted by mean ascending, ties broken by digraph for determinism.
func digraphTimings(aggs map[string]*digraphAgg, minCount int) []model.DigraphTiming {
	timings := make([]model.DigraphTiming, 0, len(aggs))
	for digraph, agg := range aggs {
		if agg.count < minCount {
			continue
		}
		timings = append(timings, model.DigraphTiming{
			Digraph: digraph,
			MeanMs:  agg.totalMs / float64(agg.count),
			Count:   agg.count,
		})
	}
	sort.Slice(timings, func(i, j int) bool {
		if timings[i].MeanMs == timings[j].MeanMs {
			return timings[i].Digraph < timings[j].Digraph
		}
		return timings[i].MeanMs < timings[j].MeanMs
	})
	return timings
}
