package triggers

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Searcher walks one category partition of the remote catalog. It
// returns the matched version's trigger words (possibly an empty,
// non-nil slice) and whether a structural match was found at all.
// Transport failures surface as a plain "not found".
type Searcher interface {
	FindTrainedWords(ctx context.Context, stem, query, category string) ([]string, bool)
}

// Resolver fans one search out across every category partition in
// parallel and reduces the per-category results to a single Outcome.
type Resolver struct {
	searcher   Searcher
	categories []string
	workers    int64
}

// NewResolver creates a resolver over the given category partitions.
// workers bounds the number of concurrent searches and should carry
// headroom beyond the partition count.
func NewResolver(searcher Searcher, categories []string, workers int) *Resolver {
	if workers < 1 {
		workers = len(categories)
	}
	return &Resolver{
		searcher:   searcher,
		categories: categories,
		workers:    int64(workers),
	}
}

type categoryResult struct {
	words []string
	found bool
}

// Resolve searches every partition and classifies the combined result:
//
//   - the first non-empty word list wins and is returned immediately;
//   - a match with zero words yields StateEmpty unless any partition
//     produces a non-empty list, which always takes priority regardless
//     of completion order;
//   - no match anywhere yields a retryable StateError.
//
// Cancellation after a win is cooperative: partitions still queued on
// the worker semaphore are skipped, but in-flight page fetches run to
// completion in the background and their results are discarded. Callers
// must not assume zero residual catalog traffic after a win.
func (r *Resolver) Resolve(ctx context.Context, stem, query string) Outcome {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan categoryResult, len(r.categories))
	sem := semaphore.NewWeighted(r.workers)

	for _, category := range r.categories {
		go func(category string) {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Canceled before this partition started.
				results <- categoryResult{}
				return
			}
			defer sem.Release(1)
			words, found := r.searcher.FindTrainedWords(ctx, stem, query, category)
			results <- categoryResult{words: words, found: found}
		}(category)
	}

	matchedEmpty := false
	for range r.categories {
		res := <-results
		switch {
		case res.found && len(res.words) > 0:
			cancel()
			return Keywords(res.words)
		case res.found:
			matchedEmpty = true
		}
	}

	if matchedEmpty {
		return Empty()
	}
	return RetryableError(fmt.Sprintf("no match for %q in any category after full search", stem))
}
