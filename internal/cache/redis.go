package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/oggyb/movie-social/internal/config"
	"github.com/oggyb/movie-social/internal/reaction"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForOwnerStats generates the Redis key for an owner's received-reaction totals
func (c *RedisCache) KeyForOwnerStats(ownerID string) string {
	return fmt.Sprintf("reactions:owner_stats:%s", ownerID)
}

// GetOwnerStats reads cached owner totals. The bool is false on a cache miss.
func (c *RedisCache) GetOwnerStats(ctx context.Context, ownerID string) (reaction.OwnerStats, bool, error) {
	key := c.KeyForOwnerStats(ownerID)
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return reaction.OwnerStats{}, false, nil // cache miss
	} else if err != nil {
		return reaction.OwnerStats{}, false, err
	}

	var stats reaction.OwnerStats
	if err := json.Unmarshal(val, &stats); err != nil {
		// corrupt entry, drop it and treat as a miss
		_ = c.Client.Del(ctx, key).Err()
		return reaction.OwnerStats{}, false, nil
	}
	return stats, true, nil
}

// Owner stats versions outlive any fill in flight by a wide margin.
const ownerStatsVersionTTL = 24 * time.Hour

// KeyForOwnerStatsVersion generates the Redis key for an owner's stats version.
// InvalidateOwnerStats bumps it.
func (c *RedisCache) KeyForOwnerStatsVersion(ownerID string) string {
	return fmt.Sprintf("reactions:owner_stats_version:%s", ownerID)
}

// OwnerStatsVersion reads the owner's stats version, 0 when none was set.
// Read it before aggregating and pass it to SetOwnerStats.
func (c *RedisCache) OwnerStatsVersion(ctx context.Context, ownerID string) (int64, error) {
	v, err := c.Client.Get(ctx, c.KeyForOwnerStatsVersion(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetOwnerStats caches owner totals with the given TTL, unless the owner was
// invalidated after version was read. A skipped fill is not an error.
func (c *RedisCache) SetOwnerStats(ctx context.Context, stats reaction.OwnerStats, version int64, ttl time.Duration) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal owner stats: %w", err)
	}

	versionKey := c.KeyForOwnerStatsVersion(stats.OwnerID)
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil // stale fill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.KeyForOwnerStats(stats.OwnerID), b, ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil // version moved between check and write
	}
	return err
}

// InvalidateOwnerStats drops cached totals for the given owners and bumps
// their versions so fills computed before the call are discarded.
func (c *RedisCache) InvalidateOwnerStats(ctx context.Context, ownerIDs ...string) error {
	if len(ownerIDs) == 0 {
		return nil
	}
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ownerIDs {
			versionKey := c.KeyForOwnerStatsVersion(id)
			pipe.Incr(ctx, versionKey)
			pipe.Expire(ctx, versionKey, ownerStatsVersionTTL)
			pipe.Del(ctx, c.KeyForOwnerStats(id))
		}
		return nil
	})
	return err
}
