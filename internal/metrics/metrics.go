package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup result labels.
const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupRetry = "retry"
)

var (
	cacheEntriesDesc = prometheus.NewDesc(
		"lorakeys_cache_entries",
		"Cached trigger-word entries by outcome state",
		[]string{"state"},
		nil,
	)

	lookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lorakeys_lookups_total",
		Help: "Total keyword lookups by cache result",
	}, []string{"result"})

	resolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lorakeys_resolutions_total",
		Help: "Total catalog resolutions by final outcome state",
	}, []string{"state"})

	catalogPagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lorakeys_catalog_pages_total",
		Help: "Total catalog result pages fetched",
	})

	catalogErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lorakeys_catalog_errors_total",
		Help: "Total catalog page fetches that failed",
	})
)

// StateCounter reports cache entry counts keyed by outcome state. The
// trigger store implements it.
type StateCounter interface {
	CountByState() map[string]int
}

// CacheCollector is a custom Prometheus collector that reads entry
// counts from the cache store on each scrape.
type CacheCollector struct {
	store StateCounter
}

// Describe sends the metric descriptor to the channel.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheEntriesDesc
}

// Collect emits one gauge per outcome state present in the cache.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	for state, count := range c.store.CountByState() {
		ch <- prometheus.MustNewConstMetric(
			cacheEntriesDesc,
			prometheus.GaugeValue,
			float64(count),
			state,
		)
	}
}

var initOnce sync.Once

// Init registers the cache collector and the counters.
// Must be called once at startup.
func Init(store StateCounter) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			&CacheCollector{store: store},
			lookupsTotal,
			resolutionsTotal,
			catalogPagesTotal,
			catalogErrorsTotal,
		)
	})
}

// RecordLookup counts a keyword lookup by cache result.
func RecordLookup(result string) {
	lookupsTotal.WithLabelValues(result).Inc()
}

// RecordResolution counts a completed catalog resolution by outcome.
func RecordResolution(state string) {
	resolutionsTotal.WithLabelValues(state).Inc()
}

// RecordCatalogPage counts one fetched catalog page.
func RecordCatalogPage() {
	catalogPagesTotal.Inc()
}

// RecordCatalogError counts one failed catalog page fetch.
func RecordCatalogError() {
	catalogErrorsTotal.Inc()
}
