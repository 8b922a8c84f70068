package cache

import (
	"context"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/oggyb/movie-social/internal/metrics"
	"github.com/oggyb/movie-social/internal/reaction"
)

// StatsStore is the owner-stats surface of RedisCache.
type StatsStore interface {
	GetOwnerStats(ctx context.Context, ownerID string) (reaction.OwnerStats, bool, error)
	OwnerStatsVersion(ctx context.Context, ownerID string) (int64, error)
	SetOwnerStats(ctx context.Context, stats reaction.OwnerStats, version int64, ttl time.Duration) error
	InvalidateOwnerStats(ctx context.Context, ownerIDs ...string) error
}

// BreakerSettings configures GuardedStats.
type BreakerSettings struct {
	// Failures is the number of consecutive errors that opens the circuit.
	Failures uint32
	// Cooldown is how long the circuit stays open before a trial request.
	Cooldown time.Duration
}

// GuardedStats puts a circuit breaker in front of reads, version reads and fills of a
// StatsStore so a dead Redis costs one fast error instead of a dial timeout.
// Invalidation always reaches the store: skipping it could leave stale
// totals behind once Redis answers again.
type GuardedStats struct {
	inner StatsStore
	cb    *gobreaker.CircuitBreaker[any]
}

type cachedStats struct {
	stats reaction.OwnerStats
	found bool
}

const breakerName = "owner-stats-cache"

// NewGuardedStats wraps inner. Zero settings fall back to 5 failures and a
// 30s cooldown.
func NewGuardedStats(inner StatsStore, s BreakerSettings, log *slog.Logger) *GuardedStats {
	if s.Failures == 0 {
		s.Failures = 5
	}
	if s.Cooldown <= 0 {
		s.Cooldown = 30 * time.Second
	}

	metrics.SetBreakerState(breakerName, metrics.BreakerClosed)
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("stats cache circuit changed state", "breaker", name, "from", from.String(), "to", to.String())
			metrics.SetBreakerState(name, breakerState(to))
		},
	})
	return &GuardedStats{inner: inner, cb: cb}
}

func (g *GuardedStats) GetOwnerStats(ctx context.Context, ownerID string) (reaction.OwnerStats, bool, error) {
	res, err := g.cb.Execute(func() (any, error) {
		stats, found, err := g.inner.GetOwnerStats(ctx, ownerID)
		return cachedStats{stats: stats, found: found}, err
	})
	if err != nil {
		return reaction.OwnerStats{}, false, err
	}
	c := res.(cachedStats)
	return c.stats, c.found, nil
}

func (g *GuardedStats) OwnerStatsVersion(ctx context.Context, ownerID string) (int64, error) {
	res, err := g.cb.Execute(func() (any, error) {
		return g.inner.OwnerStatsVersion(ctx, ownerID)
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}

func (g *GuardedStats) SetOwnerStats(ctx context.Context, stats reaction.OwnerStats, version int64, ttl time.Duration) error {
	_, err := g.cb.Execute(func() (any, error) {
		return nil, g.inner.SetOwnerStats(ctx, stats, version, ttl)
	})
	return err
}

func (g *GuardedStats) InvalidateOwnerStats(ctx context.Context, ownerIDs ...string) error {
	return g.inner.InvalidateOwnerStats(ctx, ownerIDs...)
}

// State reports the breaker state.
func (g *GuardedStats) State() gobreaker.State {
	return g.cb.State()
}

func breakerState(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return metrics.BreakerOpen
	case gobreaker.StateHalfOpen:
		return metrics.BreakerHalfOpen
	}
	return metrics.BreakerClosed
}
