// Package textutil holds small prompt-text helpers.
package textutil

import (
	"math/rand"
	"regexp"
	"strings"
)

// wordSplitter matches comma separators (with surrounding whitespace)
// or runs of whitespace.
var wordSplitter = regexp.MustCompile(`\s*,\s*|\s+`)

// ShuffleWords splits text on commas or whitespace, shuffles the words
// and joins them with ", ". Empty input is returned unchanged. A
// non-zero seed makes the shuffle reproducible.
func ShuffleWords(text string, seed int64) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}

	var words []string
	for _, w := range wordSplitter.Split(trimmed, -1) {
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return text
	}

	rng := newRNG(seed)
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return strings.Join(words, ", ")
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	return rand.New(rand.NewSource(seed))
}
