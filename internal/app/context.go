package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/movie-social/internal/cache"
	"github.com/oggyb/movie-social/internal/config"
	"github.com/oggyb/movie-social/internal/engine"
	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/ownership"
	"github.com/oggyb/movie-social/internal/repository"
)

// AppContext holds shared dependencies (DB, Redis, Logger, engine, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger

	Owners    *ownership.Registry
	Lists     repository.ListSet
	Engine    *engine.Engine
	Blacklist *cache.TokenBlacklist
}

// New creates a new AppContext and wires the reaction engine.
// rdb may be nil: owner stats are then computed on every read and the token
// blacklist is disabled. A nil log uses the process logger.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, log *slog.Logger) (*AppContext, error) {
	if log == nil {
		log = logger.L()
	}
	owners := ownership.NewRegistry(log)
	lists, err := repository.RegisterListLookups(owners, db)
	if err != nil {
		return nil, fmt.Errorf("failed to register owner lookups: %w", err)
	}

	appCtx := &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     log,
		Owners:     owners,
		Lists:      lists,
	}

	// keep the interface nil when there is no Redis
	var stats engine.StatsCache
	if rdb != nil {
		stats = cache.NewGuardedStats(rdb, cache.BreakerSettings{
			Failures: uint32(cfg.Redis.BreakerFailures),
			Cooldown: cfg.Redis.BreakerCooldown,
		}, log)
		appCtx.Blacklist = cache.NewTokenBlacklist(rdb)
	}

	appCtx.Engine = engine.New(
		repository.NewReactionRepository(db),
		owners,
		stats,
		log.With("component", "engine"),
		engine.OptionsFromConfig(cfg),
	).WithEntryDetails(lists)
	return appCtx, nil
}
