// Package generator builds practice text for simulated typing runs.
package generator

import (
	"math/rand"
	"strings"
	"unicode"
)

// Generator produces randomized practice text from a word list.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded deterministically.
func New(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Text selects count words uniformly and joins them with single spaces.
func (g *Generator) Text(words []string, count int) string {
	if len(words) == 0 || count <= 0 {
		return ""
	}
	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, words[g.rnd.Intn(len(words))])
	}
	return strings.Join(picked, " ")
}

// WeightedText biases word selection toward words containing weak
// characters. factor scales the bias per weak character; 0 degrades to
// uniform selection.
func (g *Generator) WeightedText(words []string, count int, weakSet map[rune]struct{}, factor float64) string {
	if len(words) == 0 || count <= 0 {
		return ""
	}
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weakSet[unicode.ToLower(r)]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(words) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		picked = append(picked, words[idx])
	}
	return strings.Join(picked, " ")
}

// WeakSet converts key labels into a rune set usable for weighting.
// Multi-rune labels and whitespace are skipped.
func WeakSet(keys []string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(keys))
	for _, key := range keys {
		runes := []rune(key)
		if len(runes) != 1 || unicode.IsSpace(runes[0]) {
			continue
		}
		set[unicode.ToLower(runes[0])] = struct{}{}
	}
	return set
}
