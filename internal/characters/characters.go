// Package characters serves the categorized character-name data used
// by prompt-building frontends.
package characters

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
)

// RandomCategory aggregates every character across all categories.
const RandomCategory = "RANDOM"

var (
	// ErrNotLoaded is returned when no character data is available.
	ErrNotLoaded = errors.New("character data not loaded")
	// ErrUnknownCategory is returned for a category not in the data.
	ErrUnknownCategory = errors.New("unknown character category")
	// ErrNoCharacters is returned when a random pick has nothing to choose from.
	ErrNoCharacters = errors.New("no characters available")
)

// Catalog holds categorized character names loaded once at startup.
// Random picks avoid repeating the previous selection where possible.
type Catalog struct {
	categories map[string][]string

	mu   sync.Mutex
	prev string
}

// Load reads the character document: a JSON object mapping category
// names to character lists. A synthetic RANDOM category aggregating all
// names is added, matching the original dataset layout.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character data: %w", err)
	}

	var categories map[string][]string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse character data: %w", err)
	}

	seen := make(map[string]bool)
	var all []string
	for _, names := range categories {
		for _, name := range names {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			all = append(all, name)
		}
	}
	sort.Strings(all)
	categories[RandomCategory] = all

	return &Catalog{categories: categories}, nil
}

// Categories returns the category names, sorted.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the full category -> characters mapping.
func (c *Catalog) All() map[string][]string {
	return c.categories
}

// List returns the characters of one category.
func (c *Catalog) List(category string) ([]string, error) {
	names, ok := c.categories[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	return names, nil
}

// Random picks a character from a category, avoiding the previous pick
// when more than one choice exists. An empty category falls back to the
// RANDOM aggregate.
func (c *Catalog) Random(category string) (string, error) {
	choices := c.categories[category]
	if len(choices) == 0 {
		choices = c.categories[RandomCategory]
	}
	if len(choices) == 0 {
		return "", ErrNoCharacters
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pool := choices
	if len(choices) > 1 && c.prev != "" {
		filtered := make([]string, 0, len(choices))
		for _, name := range choices {
			if name != c.prev {
				filtered = append(filtered, name)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	pick := pool[rand.Intn(len(pool))]
	c.prev = pick
	return pick, nil
}
