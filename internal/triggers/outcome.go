package triggers

import (
	"path"
	"strings"
	"time"
)

// State classifies a cached resolution outcome.
type State string

const (
	// StateKeywords means the asset was matched and has trigger words.
	StateKeywords State = "keywords"
	// StateEmpty means the asset was matched but carries no trigger words.
	StateEmpty State = "empty"
	// StateError means no match was found or the search failed.
	StateError State = "error"
)

// Outcome is the cached result of one resolution attempt. Outcomes are
// immutable once constructed; a re-resolution replaces the cache entry
// wholesale.
type Outcome struct {
	State      State     `json:"state"`
	Words      []string  `json:"words,omitempty"`
	Message    string    `json:"message,omitempty"`
	Retry      bool      `json:"retry,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Keywords builds a successful outcome with a non-empty word list.
func Keywords(words []string) Outcome {
	return Outcome{State: StateKeywords, Words: words, ResolvedAt: time.Now().UTC()}
}

// Empty builds an outcome for an asset that matched with zero words.
func Empty() Outcome {
	return Outcome{State: StateEmpty, ResolvedAt: time.Now().UTC()}
}

// RetryableError builds a failure outcome that is re-attempted on the
// next lookup.
func RetryableError(message string) Outcome {
	return Outcome{State: StateError, Message: message, Retry: true, ResolvedAt: time.Now().UTC()}
}

// Stem returns the base name of an asset without its extension, e.g.
// "styles/foo_v2.safetensors" -> "foo_v2". Backslashes are accepted so
// identifiers recorded on Windows hosts resolve the same way.
func Stem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
