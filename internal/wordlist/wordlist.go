// Package wordlist supplies the word pools the simulator draws practice
// text from.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads one word per line from path and keeps only the words typable
// for the given language. Blank lines and surrounding whitespace are
// ignored. An empty result is an error so the simulator never runs on an
// unusable pool.
func Load(path, lang string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() {
		// The file was only read; nothing to report on close.
		_ = file.Close()
	}()

	keep := keepFunc(lang)
	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || !keep(word) {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s has no usable words for lang %q", path, lang)
	}
	return words, nil
}

// keepFunc returns the per-word predicate for a language. Unknown
// languages keep everything; practice text for them is the caller's
// responsibility.
func keepFunc(lang string) func(string) bool {
	switch strings.ToLower(lang) {
	case "en":
		return isLowerASCII
	default:
		return func(string) bool { return true }
	}
}

// isLowerASCII rejects words the default QWERTY finger map cannot cover:
// anything outside a-z, including accents, apostrophes, and hyphens.
func isLowerASCII(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
