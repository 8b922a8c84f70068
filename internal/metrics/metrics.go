// Package metrics exposes Prometheus collectors for the reaction engine.
//
// Usage:
//
//	metrics.RecordTransition(reaction.KindFavorite, reaction.ActionAdded)
//	metrics.RecordConflictRetry()
//	metrics.ObserveBatchSize(len(ids))
//	metrics.RecordStatsCache(metrics.CacheHit)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/oggyb/movie-social/internal/reaction"
)

// Stats cache outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Circuit breaker gauge values.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

var (
	// TransitionsTotal counts committed toggle/remove outcomes by entry kind and action.
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_transitions_total",
			Help: "Total number of reaction state transitions",
		},
		[]string{"kind", "action"},
	)

	// ConflictRetriesTotal counts read-check-write attempts retried after a uniqueness race.
	ConflictRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reaction_conflict_retries_total",
			Help: "Total number of reaction writes retried after a concurrent conflict",
		},
	)

	// BatchSize tracks how many distinct ids each batch summary covers.
	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reaction_batch_size",
			Help:    "Number of distinct entry ids per batch summary",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// StatsCacheTotal counts owner stats cache lookups by result.
	StatsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_stats_cache_total",
			Help: "Owner stats cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	// BreakerState tracks circuit breaker state: 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reaction_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

func RecordTransition(kind reaction.Kind, action reaction.Action) {
	TransitionsTotal.WithLabelValues(kind.String(), string(action)).Inc()
}

func RecordConflictRetry() {
	ConflictRetriesTotal.Inc()
}

func ObserveBatchSize(n int) {
	BatchSize.Observe(float64(n))
}

func RecordStatsCache(result string) {
	StatsCacheTotal.WithLabelValues(result).Inc()
}

func SetBreakerState(name string, state float64) {
	BreakerState.WithLabelValues(name).Set(state)
}
