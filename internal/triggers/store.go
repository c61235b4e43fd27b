package triggers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store is the durable asset -> Outcome cache. The whole document is
// rewritten on every mutation; there is no incremental append. The file
// may be hand-edited or deleted between runs.
type Store struct {
	path string

	mu      sync.RWMutex
	entries map[string]Outcome
}

// Open loads the cache document at path. A missing document is created
// empty; a corrupt one is discarded with a warning. Open never fails:
// losing the cache only costs re-resolution.
func Open(path string) *Store {
	s := &Store{path: path, entries: make(map[string]Outcome)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.save(); err != nil {
				slog.Warn("failed to create cache document", "path", path, "error", err)
			}
			return s
		}
		slog.Warn("failed to read cache document, starting empty", "path", path, "error", err)
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		slog.Warn("cache document is corrupt, starting empty", "path", path, "error", err)
		s.entries = make(map[string]Outcome)
	}
	return s
}

// Get returns the cached outcome for name.
func (s *Store) Get(name string) (Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, ok := s.entries[name]
	return out, ok
}

// Put replaces the entry for name and persists the full document.
func (s *Store) Put(name string, out Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = out
	return s.save()
}

// Delete removes the entry for name and persists. Deleting an absent
// name is a no-op.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[name]; !ok {
		return nil
	}
	delete(s.entries, name)
	return s.save()
}

// All returns a snapshot of every cached entry.
func (s *Store) All() map[string]Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(map[string]Outcome, len(s.entries))
	for k, v := range s.entries {
		snapshot[k] = v
	}
	return snapshot
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CountByState returns entry counts keyed by outcome state, for the
// metrics collector.
func (s *Store) CountByState() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, out := range s.entries {
		counts[string(out.State)]++
	}
	return counts
}

// Retryable returns the names of entries flagged for retry, sorted.
func (s *Store) Retryable() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for name, out := range s.entries {
		if out.State == StateError && out.Retry {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Ping reports whether the cache document's directory is reachable,
// for readiness probes.
func (s *Store) Ping() error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cache directory unavailable: %w", err)
	}
	return nil
}

// save writes the full document. Callers hold s.mu.
func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode cache document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache document: %w", err)
	}
	return nil
}
