package jobs

import (
	"context"
	"log"
	"time"

	"lorakeys/internal/triggers"
)

// Refresher periodically re-resolves cache entries that failed with a
// retryable error, so transient catalog outages heal without waiting
// for the next frontend lookup.
type Refresher struct {
	svc      *triggers.Service
	interval time.Duration
	delay    time.Duration
}

// NewRefresher creates a new retry refresher.
func NewRefresher(svc *triggers.Service, interval, delay time.Duration) *Refresher {
	return &Refresher{svc: svc, interval: interval, delay: delay}
}

// Start begins the background refresh loop.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Retry refresher started (interval: %v, delay: %v)", r.interval, r.delay)

	// Run immediately on start
	r.refreshAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Retry refresher stopped")
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

// refreshAll re-resolves every entry flagged for retry.
func (r *Refresher) refreshAll(ctx context.Context) {
	names := r.svc.Retryable()
	if len(names) == 0 {
		return
	}

	log.Printf("Retry refresher: re-resolving %d assets", len(names))

	for _, name := range names {
		// Check context before each asset
		select {
		case <-ctx.Done():
			return
		default:
		}

		r.svc.Keywords(ctx, name)

		// Delay between searches to avoid overwhelming the catalog
		time.Sleep(r.delay)
	}
}
