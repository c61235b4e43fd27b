package triggers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"lorakeys/internal/metrics"
)

// Service is the public entry point for trigger-word resolution. It
// consults the store first, resolves on a miss or a retryable error,
// classifies the result and persists it. It never propagates a search
// failure to the caller: a failed search degrades to an empty word list
// plus a cache entry flagged for retry.
type Service struct {
	store    *Store
	resolver *Resolver
	group    singleflight.Group
}

// NewService wires the orchestrator over a store and a resolver.
func NewService(store *Store, resolver *Resolver) *Service {
	return &Service{store: store, resolver: resolver}
}

// Keywords returns the trigger words for an asset, resolving and
// caching them if needed. The returned slice is never nil.
func (s *Service) Keywords(ctx context.Context, name string) []string {
	words, _ := s.Lookup(ctx, name)
	return words
}

// Lookup is Keywords plus provenance: cached reports whether the answer
// came straight from the store without touching the catalog.
func (s *Service) Lookup(ctx context.Context, name string) (words []string, cached bool) {
	if out, ok := s.store.Get(name); ok {
		switch out.State {
		case StateKeywords:
			metrics.RecordLookup(metrics.LookupHit)
			return out.Words, true
		case StateEmpty:
			metrics.RecordLookup(metrics.LookupHit)
			return []string{}, true
		case StateError:
			if !out.Retry {
				metrics.RecordLookup(metrics.LookupHit)
				return []string{}, true
			}
			slog.Info("retrying keyword search after previous error", "asset", name)
			metrics.RecordLookup(metrics.LookupRetry)
		default:
			// Hand-edited document with a state we don't know; treat as
			// a miss and rewrite the entry.
			slog.Warn("unknown cache state, re-resolving", "asset", name, "state", string(out.State))
			metrics.RecordLookup(metrics.LookupMiss)
		}
	} else {
		metrics.RecordLookup(metrics.LookupMiss)
	}

	// Concurrent lookups for the same asset (HTTP and the retry job
	// share this process) collapse into one catalog search.
	v, _, _ := s.group.Do(name, func() (any, error) {
		return s.resolve(ctx, name), nil
	})
	out := v.(Outcome)

	if out.State == StateKeywords {
		return out.Words, false
	}
	return []string{}, false
}

// Entries returns a snapshot of the cache for listing endpoints.
func (s *Service) Entries() map[string]Outcome {
	return s.store.All()
}

// Forget evicts an asset from the cache, forcing a fresh search on the
// next lookup.
func (s *Service) Forget(name string) error {
	return s.store.Delete(name)
}

// Retryable returns the assets whose cached outcome is flagged for
// retry.
func (s *Service) Retryable() []string {
	return s.store.Retryable()
}

func (s *Service) resolve(ctx context.Context, name string) Outcome {
	stem := Stem(name)
	query := searchQuery(stem)
	attempt := uuid.NewString()

	slog.Info("searching trigger words on catalog",
		"asset", name, "query", query, "attempt", attempt)

	out := s.resolver.Resolve(ctx, stem, query)
	metrics.RecordResolution(string(out.State))

	switch out.State {
	case StateKeywords:
		slog.Info("trigger words found", "asset", name, "words", out.Words, "attempt", attempt)
	case StateEmpty:
		slog.Info("asset matched but has no trigger words", "asset", name, "attempt", attempt)
	default:
		slog.Warn("catalog search failed or found nothing, caching for retry",
			"asset", name, "attempt", attempt)
	}

	if err := s.store.Put(name, out); err != nil {
		slog.Error("failed to persist keyword cache", "asset", name, "error", err)
	}
	return out
}

var queryNormalizer = strings.NewReplacer("_", " ", "-", " ")

// searchQuery derives a catalog query from an asset stem: two short
// fragments of the normalized stem joined by a space, selective enough
// to page through without over-constraining the search.
func searchQuery(stem string) string {
	norm := []rune(strings.ToLower(queryNormalizer.Replace(stem)))

	first := strings.TrimSpace(string(sliceRunes(norm, 0, 3)))
	second := strings.TrimSpace(string(sliceRunes(norm, 3, 6)))

	query := strings.TrimSpace(first + " " + second)
	if query == "" {
		return stem
	}
	return query
}

func sliceRunes(r []rune, from, to int) []rune {
	if from > len(r) {
		return nil
	}
	if to > len(r) {
		to = len(r)
	}
	return r[from:to]
}
