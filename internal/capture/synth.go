package capture

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"unicode"
)

// Profile parameterizes the synthetic stream generator. Profiles exist to
// exercise the analytics and anti-cheat passes without live capture.
type Profile struct {
	Name string

	// MeanIntervalMs and StdDevMs shape press-to-press gaps with gaussian
	// jitter. A zero StdDevMs produces machine-uniform timing.
	MeanIntervalMs float64
	StdDevMs       float64

	DwellMeanMs   float64
	DwellStdDevMs float64

	// ErrorRate is the per-keystroke probability of a substitution typo.
	ErrorRate float64

	// BurstLen > 0 interleaves bursts of BurstLen keystrokes at
	// BurstIntervalMs with pauses of PauseMs.
	BurstLen        int
	BurstIntervalMs float64
	PauseMs         float64
}

// Profiles are the named generator presets.
var Profiles = map[string]Profile{
	"human": {
		Name:           "human",
		MeanIntervalMs: 150,
		StdDevMs:       40,
		DwellMeanMs:    85,
		DwellStdDevMs:  20,
		ErrorRate:      0.03,
	},
	"fast-typist": {
		Name:           "fast-typist",
		MeanIntervalMs: 90,
		StdDevMs:       25,
		DwellMeanMs:    65,
		DwellStdDevMs:  15,
		ErrorRate:      0.02,
	},
	"bot-uniform": {
		Name:           "bot-uniform",
		MeanIntervalMs: 50,
		StdDevMs:       0,
		DwellMeanMs:    35,
		DwellStdDevMs:  0,
		ErrorRate:      0,
	},
	"bot-burst": {
		Name:            "bot-burst",
		MeanIntervalMs:  120,
		StdDevMs:        5,
		DwellMeanMs:     12,
		DwellStdDevMs:   1,
		ErrorRate:       0,
		BurstLen:        12,
		BurstIntervalMs: 15,
		PauseMs:         400,
	},
}

// ProfileNames lists the available presets, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate produces a deterministic synthetic event log for the given
// profile name, text, and seed.
func Generate(profileName, text string, seed int64) (Log, error) {
	profile, ok := Profiles[profileName]
	if !ok {
		return Log{}, fmt.Errorf("unknown profile %q (available: %s)", profileName, strings.Join(ProfileNames(), ", "))
	}
	return GenerateWithProfile(profile, text, seed), nil
}

// GenerateWithProfile produces a deterministic synthetic event log.
func GenerateWithProfile(profile Profile, text string, seed int64) Log {
	rng := rand.New(rand.NewSource(seed))
	log := Log{Version: LogVersion, Text: text}

	pressAt := int64(1000)
	for i, expected := range []rune(text) {
		typed := expected
		correct := true
		if profile.ErrorRate > 0 && rng.Float64() < profile.ErrorRate {
			typed = typoFor(expected, rng)
			correct = typed == expected
		}

		dwell := jitter(rng, profile.DwellMeanMs, profile.DwellStdDevMs, 5)
		key := string(typed)
		code := codeForRune(typed)
		position := i

		log.Events = append(log.Events, RawEvent{
			Type:        EventDown,
			Key:         key,
			Code:        code,
			TimestampMs: pressAt,
		})
		log.Events = append(log.Events, RawEvent{
			Type:        EventUp,
			Key:         key,
			Code:        code,
			TimestampMs: pressAt + dwell,
			Correct:     correct,
			Expected:    string(expected),
			Position:    &position,
		})

		pressAt += nextInterval(profile, rng, i)
	}
	return log
}

func nextInterval(profile Profile, rng *rand.Rand, index int) int64 {
	if profile.BurstLen > 0 {
		if (index+1)%profile.BurstLen == 0 {
			return jitter(rng, profile.PauseMs, profile.StdDevMs, 1)
		}
		return jitter(rng, profile.BurstIntervalMs, profile.StdDevMs, 1)
	}
	return jitter(rng, profile.MeanIntervalMs, profile.StdDevMs, 1)
}

// jitter samples a gaussian around mean, floored at min. A zero stdDev
// returns the mean unchanged.
func jitter(rng *rand.Rand, mean, stdDev, min float64) int64 {
	v := mean
	if stdDev > 0 {
		v = rng.NormFloat64()*stdDev + mean
	}
	if v < min {
		v = min
	}
	return int64(v)
}

// typoFor picks a plausible wrong key for the expected rune.
func typoFor(expected rune, rng *rand.Rand) rune {
	if !unicode.IsLetter(expected) {
		return expected
	}
	lower := unicode.ToLower(expected)
	neighbors, ok := keyNeighbors[lower]
	if !ok || len(neighbors) == 0 {
		return expected
	}
	return rune(neighbors[rng.Intn(len(neighbors))])
}

// keyNeighbors maps letters to their adjacent QWERTY keys for realistic
// substitution typos.
var keyNeighbors = map[rune]string{
	'q': "wa", 'w': "qes", 'e': "wrd", 'r': "etf", 't': "ryg",
	'y': "tuh", 'u': "yij", 'i': "uok", 'o': "ipl", 'p': "o",
	'a': "qsz", 's': "awdx", 'd': "sefc", 'f': "drgv", 'g': "fthb",
	'h': "gyjn", 'j': "hukm", 'k': "jil", 'l': "ko",
	'z': "asx", 'x': "zsc", 'c': "xdv", 'v': "cfb", 'b': "vgn",
	'n': "bhm", 'm': "njk",
}

// codeForRune derives the browser-style physical code for a rune, "" when
// no single code applies.
func codeForRune(r rune) string {
	switch {
	case r == ' ':
		return "Space"
	case r >= 'a' && r <= 'z':
		return "Key" + strings.ToUpper(string(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	}
	return ""
}
