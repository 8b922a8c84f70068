// Package testutil builds isolated SQLite and Redis fixtures for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/movie-social/internal/cache"
	"github.com/oggyb/movie-social/internal/config"
	"github.com/oggyb/movie-social/internal/db"
)

// NewDB opens a migrated in-memory SQLite database private to t.
// A single connection serialises access so concurrent tests never see
// SQLITE_LOCKED from the shared cache.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// NewFileDB opens a migrated SQLite file under t.TempDir through db.NewDB, so
// it runs with the production connection options and a multi-connection pool.
func NewFileDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.New()
	cfg.App.ENV = "test"
	cfg.DB.Driver = "sqlite"
	cfg.DB.DSN = filepath.Join(t.TempDir(), "reactions.db")

	gdb, err := db.NewDB(cfg)
	require.NoError(t, err)
	closeOnCleanup(t, gdb)
	return gdb
}

// OpenSQLite opens and migrates dsn as given, without NewDB's options.
func OpenSQLite(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	closeOnCleanup(t, gdb)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func closeOnCleanup(t *testing.T, gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
}

// NewRedis starts a miniredis and returns a cache bound to it.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = rc.Client.Close() })
	return mr, rc
}

// QueryCounter counts SQL statements issued through the query and row callbacks.
type QueryCounter struct {
	n atomic.Int64
}

// CountQueries installs a counter on gdb.
func CountQueries(t *testing.T, gdb *gorm.DB) *QueryCounter {
	t.Helper()

	c := &QueryCounter{}
	inc := func(*gorm.DB) { c.n.Add(1) }
	require.NoError(t, gdb.Callback().Query().After("gorm:query").Register("testutil:count_query", inc))
	require.NoError(t, gdb.Callback().Row().After("gorm:row").Register("testutil:count_row", inc))
	return c
}

func (c *QueryCounter) Reset()       { c.n.Store(0) }
func (c *QueryCounter) Count() int64 { return c.n.Load() }
