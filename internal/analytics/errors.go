package analytics

import (
	"sort"
	"unicode"

	"github.com/keybeat/keybeat/internal/model"
)

const (
	// slowWordFactor marks a word as slow when its duration exceeds this
	// multiple of the mean word duration.
	slowWordFactor = 1.3

	maxSlowWords = 10

	// minResolvableWords is the smallest word sample the slow-word metric
	// accepts.
	minResolvableWords = 3

	// minBurstEvents is the event-count threshold for the error-burst count.
	minBurstEvents = 10
)

// ClassifyErrors partitions incorrect events by kind and collects the
// distinct expected keys that were ever mistyped, sorted for determinism.
func ClassifyErrors(events []model.KeystrokeEvent) (total int, kinds map[model.ErrorKind]int, keys []string) {
	kinds = map[model.ErrorKind]int{}
	keySet := map[string]struct{}{}
	for _, e := range events {
		if e.Correct {
			continue
		}
		total++
		switch {
		case e.Expected == "":
			kinds[model.ErrorOther]++
		case e.Key == e.Expected:
			// Same-key double-press artifact.
			kinds[model.ErrorDoublet]++
		default:
			kinds[model.ErrorSubstitution]++
		}
		if e.Expected != "" {
			keySet[e.Expected] = struct{}{}
		}
	}
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return total, kinds, keys
}

// ErrorBurstCount counts maximal runs of consecutive incorrect events: a run
// of k wrong keystrokes counts once. Nil below minBurstEvents events.
func ErrorBurstCount(events []model.KeystrokeEvent) *int {
	if len(events) < minBurstEvents {
		return nil
	}
	bursts := 0
	inBurst := false
	for _, e := range events {
		if e.Correct {
			inBurst = false
			continue
		}
		if !inBurst {
			bursts++
			inBurst = true
		}
	}
	return iptr(bursts)
}

type wordSpan struct {
	word  string
	start int // rune offset into the expected text, inclusive
	end   int // exclusive
}

// SlowestWords maps the expected text into whitespace-delimited word spans,
// times each span from its first press to its last release, and returns up
// to maxSlowWords words slower than slowWordFactor times the mean, sorted
// descending. Nil when fewer than minResolvableWords words resolve.
func SlowestWords(text string, events []model.KeystrokeEvent) []model.WordTiming {
	spans := wordSpans(text)
	var timings []model.WordTiming
	for _, span := range spans {
		firstPress := int64(0)
		lastRelease := int64(0)
		found := false
		for _, e := range events {
			if e.Position < span.start || e.Position >= span.end {
				continue
			}
			if !found || e.PressedAt < firstPress {
				firstPress = e.PressedAt
			}
			if !found || e.ReleasedAt > lastRelease {
				lastRelease = e.ReleasedAt
			}
			found = true
		}
		if !found || lastRelease <= firstPress {
			continue
		}
		timings = append(timings, model.WordTiming{
			Word:       span.word,
			DurationMs: lastRelease - firstPress,
		})
	}
	if len(timings) < minResolvableWords {
		return nil
	}

	var totalMs int64
	for _, t := range timings {
		totalMs += t.DurationMs
	}
	meanMs := float64(totalMs) / float64(len(timings))
	threshold := int64(meanMs * slowWordFactor)

	var slow []model.WordTiming
	for _, t := range timings {
		if t.DurationMs > threshold {
			slow = append(slow, t)
		}
	}
	sort.Slice(slow, func(i, j int) bool {
		if slow[i].DurationMs == slow[j].DurationMs {
			return slow[i].Word < slow[j].Word
		}
		return slow[i].DurationMs > slow[j].DurationMs
	})
	if len(slow) > maxSlowWords {
		slow = slow[:maxSlowWords]
	}
	return slow
}

func wordSpans(text string) []wordSpan {
	runes := []rune(text)
	var spans []wordSpan
	start := -1
	for i, r := range runes {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, wordSpan{word: string(runes[start:i]), start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, wordSpan{word: string(runes[start:]), start: start, end: len(runes)})
	}
	return spans
}

type keyAcc struct {
	key       string
	correct   int
	incorrect int
}

func (a *keyAcc) accuracy() float64 {
	total := a.correct + a.incorrect
	if total == 0 {
		return 1.0
	}
	return float64(a.correct) / float64(total)
}

// WeakestKeys ranks the expected keys with the lowest accuracy over the
// session, up to top entries. Keys that were never mistyped are skipped.
func WeakestKeys(events []model.KeystrokeEvent, top int) []string {
	byKey := map[string]*keyAcc{}
	for _, e := range events {
		if e.Expected == "" {
			continue
		}
		acc, ok := byKey[e.Expected]
		if !ok {
			acc = &keyAcc{key: e.Expected}
			byKey[e.Expected] = acc
		}
		if e.Correct {
			acc.correct++
		} else {
			acc.incorrect++
		}
	}
	var candidates []*keyAcc
	for _, acc := range byKey {
		if acc.incorrect > 0 {
			candidates = append(candidates, acc)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := candidates[i].accuracy()
		aj := candidates[j].accuracy()
		if ai == aj {
			return candidates[i].key < candidates[j].key
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for i := 0; i < top; i++ {
		out = append(out, candidates[i].key)
	}
	return out
}
