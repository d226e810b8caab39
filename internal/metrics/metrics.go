package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Core request/hit/miss counters
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_requests_total",
			Help: "Total number of cache requests",
		},
		[]string{"category"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_hits_total",
			Help: "Total number of cache hits by tier",
		},
		[]string{"category", "tier"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_misses_total",
			Help: "Total number of cache misses across all tiers",
		},
		[]string{"category"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_errors_total",
			Help: "Total number of tier-level cache errors",
		},
		[]string{"tier", "kind"},
	)

	// Get operation latency by satisfying tier
	CacheGetDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fpl_cache_get_duration_seconds",
			Help:    "Duration of cache get operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tier"},
	)

	// Local tier bookkeeping
	LocalEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fpl_cache_local_entries",
			Help: "Number of entries held by a local store",
		},
		[]string{"category"},
	)

	LocalBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fpl_cache_local_bytes",
			Help: "Approximate bytes held by a local store",
		},
		[]string{"category"},
	)

	LocalEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_local_evictions_total",
			Help: "Total number of LRU evictions from local stores",
		},
		[]string{"category"},
	)

	LocalExpirations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_local_expirations_total",
			Help: "Total number of entries dropped for TTL expiry",
		},
		[]string{"category"},
	)

	Invalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_invalidations_total",
			Help: "Total number of remote keys removed by invalidation",
		},
		[]string{"category"},
	)

	WarmedKeys = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_warmed_keys_total",
			Help: "Total number of keys populated by cache warming",
		},
		[]string{"category"},
	)
)

// RecordCacheRequest records one coordinator get request.
func RecordCacheRequest(category string) {
	CacheRequests.WithLabelValues(category).Inc()
}

// RecordCacheHit records a hit satisfied by the given tier.
func RecordCacheHit(category, tier string) {
	CacheHits.WithLabelValues(category, tier).Inc()
}

// RecordCacheMiss records a request no tier could satisfy.
func RecordCacheMiss(category string) {
	CacheMisses.WithLabelValues(category).Inc()
}

// RecordCacheError records a tier-level error of the given kind
// (encode, decode, compress, upstream).
func RecordCacheError(tier, kind string) {
	CacheErrors.WithLabelValues(tier, kind).Inc()
}

// ObserveGetDuration records the latency of one get, tagged by tier.
func ObserveGetDuration(tier string, d time.Duration) {
	CacheGetDuration.WithLabelValues(tier).Observe(d.Seconds())
}

// UpdateLocalStoreStats updates the gauges for one local store.
func UpdateLocalStoreStats(category string, entries int, bytes int64) {
	LocalEntries.WithLabelValues(category).Set(float64(entries))
	LocalBytes.WithLabelValues(category).Set(float64(bytes))
}

// RecordLocalEviction records one LRU eviction.
func RecordLocalEviction(category string) {
	LocalEvictions.WithLabelValues(category).Inc()
}

// RecordLocalExpiry records one entry dropped on access for TTL expiry.
func RecordLocalExpiry(category string) {
	LocalExpirations.WithLabelValues(category).Inc()
}

// RecordLocalSweep records entries dropped by a bulk expiry sweep.
func RecordLocalSweep(category string, removed int) {
	LocalExpirations.WithLabelValues(category).Add(float64(removed))
}

// RecordInvalidation records remote keys removed for a category.
func RecordInvalidation(category string, count int) {
	Invalidations.WithLabelValues(category).Add(float64(count))
}

// RecordWarmedKey records one key populated by warming.
func RecordWarmedKey(category string) {
	WarmedKeys.WithLabelValues(category).Inc()
}
