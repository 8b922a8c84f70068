package engine_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/movie-social/internal/cache"
	"github.com/oggyb/movie-social/internal/db"
	"github.com/oggyb/movie-social/internal/engine"
	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/metrics"
	"github.com/oggyb/movie-social/internal/ownership"
	"github.com/oggyb/movie-social/internal/reaction"
	"github.com/oggyb/movie-social/internal/repository"
	"github.com/oggyb/movie-social/internal/testutil"
)

//
// Test helpers
//

type fixture struct {
	gdb    *gorm.DB
	mr     *miniredis.Miniredis
	rc     *cache.RedisCache
	owners *ownership.Registry
	eng    *engine.Engine
}

// setup seeds the minimal dataset (b owns favorite #42 and top10 #7, a owns
// watched #5) and wires an engine over SQLite and miniredis.
func setup(t *testing.T) *fixture {
	t.Helper()

	gdb := testutil.NewDB(t)
	require.NoError(t, db.SeedMinimalTestData(gdb))

	owners := ownership.NewRegistry(logger.Discard())
	lists, err := repository.RegisterListLookups(owners, gdb)
	require.NoError(t, err)

	mr, rc := testutil.NewRedis(t)
	eng := engine.New(repository.NewReactionRepository(gdb), owners, rc, logger.Discard(), engine.Options{}).
		WithEntryDetails(lists)
	return &fixture{gdb: gdb, mr: mr, rc: rc, owners: owners, eng: eng}
}

func (f *fixture) rowCount(t *testing.T, user string, entryID uint64, kind reaction.Kind) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.gdb.Model(&db.Reaction{}).
		Where("user_id = ? AND entry_id = ? AND entry_kind = ?", user, entryID, kind).
		Count(&n).Error)
	return n
}

func like(ctx context.Context, f *fixture, user string, entryID uint64, kind reaction.Kind) (reaction.Result, error) {
	return f.eng.Toggle(ctx, entryID, kind, user, true)
}

func dislike(ctx context.Context, f *fixture, user string, entryID uint64, kind reaction.Kind) (reaction.Result, error) {
	return f.eng.Toggle(ctx, entryID, kind, user, false)
}

//
// Toggle
//

func TestToggle_LikeSwitchRemove(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	res, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, reaction.Result{Action: reaction.ActionAdded, EntryID: 42, Kind: reaction.KindFavorite, Likes: 1}, res)

	res, err = dislike(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, reaction.ActionSwitched, res.Action)
	assert.Equal(t, int64(0), res.Likes)
	assert.Equal(t, int64(1), res.Dislikes)

	res, err = dislike(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, reaction.ActionRemoved, res.Action)
	assert.Equal(t, int64(0), res.Likes)
	assert.Equal(t, int64(0), res.Dislikes)

	assert.Equal(t, int64(0), f.rowCount(t, "a", 42, reaction.KindFavorite))
}

func TestToggle_LikeTwiceIsToggleOff(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	res, err := like(ctx, f, "c", 7, reaction.KindTop10)
	require.NoError(t, err)
	assert.Equal(t, reaction.ActionAdded, res.Action)

	res, err = like(ctx, f, "c", 7, reaction.KindTop10)
	require.NoError(t, err)
	assert.Equal(t, reaction.ActionRemoved, res.Action)
	assert.Equal(t, int64(0), res.Likes)
}

func TestToggle_DislikeThenLikeSwitches(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := dislike(ctx, f, "b", 5, reaction.KindWatched)
	require.NoError(t, err)

	res, err := like(ctx, f, "b", 5, reaction.KindWatched)
	require.NoError(t, err)
	assert.Equal(t, reaction.ActionSwitched, res.Action)
	assert.Equal(t, int64(1), res.Likes)
	assert.Equal(t, int64(0), res.Dislikes)
}

func TestToggle_SelfReactionRejected(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)

	_, err = like(ctx, f, "b", 42, reaction.KindFavorite)
	assert.ErrorIs(t, err, reaction.ErrSelfReaction)

	s, err := f.eng.Summary(ctx, 42, reaction.KindFavorite, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Likes)
	assert.Equal(t, int64(0), f.rowCount(t, "b", 42, reaction.KindFavorite))
}

func TestToggle_EntryNotFound(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 999, reaction.KindFavorite)
	assert.ErrorIs(t, err, reaction.ErrEntryNotFound)

	// #42 exists only as a favorite
	_, err = like(ctx, f, "a", 42, reaction.KindWatchLater)
	assert.ErrorIs(t, err, reaction.ErrEntryNotFound)

	// a kind without a lookup behaves like a missing entry
	f.owners.Register(reaction.KindFavorite, nil)
	_, err = like(ctx, f, "a", 42, reaction.KindFavorite)
	assert.ErrorIs(t, err, reaction.ErrEntryNotFound)
}

func TestToggle_InvalidKind(t *testing.T) {
	f := setup(t)

	_, err := f.eng.Toggle(context.Background(), 42, reaction.Kind("BOOKMARK"), "a", true)
	assert.ErrorIs(t, err, reaction.ErrInvalidEntryKind)
}

func TestToggle_ConcurrentSameUserKeepsAtMostOneRow(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	const calls = 20
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.eng.Toggle(ctx, 42, reaction.KindFavorite, "a", i%2 == 0)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	n := f.rowCount(t, "a", 42, reaction.KindFavorite)
	assert.LessOrEqual(t, n, int64(1))

	s, err := f.eng.Summary(ctx, 42, reaction.KindFavorite, "a")
	require.NoError(t, err)
	assert.Equal(t, n, s.Likes+s.Dislikes)
}

func TestToggle_ConcurrentOnFileDatabase(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewFileDB(t)
	require.NoError(t, db.SeedMinimalTestData(gdb))

	owners := ownership.NewRegistry(logger.Discard())
	_, err := repository.RegisterListLookups(owners, gdb)
	require.NoError(t, err)
	eng := engine.New(repository.NewReactionRepository(gdb), owners, nil, logger.Discard(), engine.Options{})

	const calls = 20
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make(chan error, calls)
	)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := eng.Toggle(ctx, 42, reaction.KindFavorite, "a", i%2 == 0)
			errs <- err
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	var n int64
	require.NoError(t, gdb.Model(&db.Reaction{}).
		Where("user_id = ? AND entry_id = ? AND entry_kind = ?", "a", 42, reaction.KindFavorite).
		Count(&n).Error)
	assert.LessOrEqual(t, n, int64(1))

	s, err := eng.Summary(ctx, 42, reaction.KindFavorite, "a")
	require.NoError(t, err)
	assert.Equal(t, n, s.Likes+s.Dislikes)
}

func TestToggle_RetriesWhenTwinCommittedBetweenReadAndWrite(t *testing.T) {
	ctx := context.Background()

	// Deferred transactions in WAL mode let a second connection commit after
	// the toggle has read but before it writes.
	path := filepath.Join(t.TempDir(), "race.db")
	gdb := testutil.OpenSQLite(t, path+"?_journal_mode=WAL&_txlock=deferred&_busy_timeout=5000")
	require.NoError(t, db.SeedMinimalTestData(gdb))
	other := testutil.OpenSQLite(t, path+"?_busy_timeout=5000")

	owners := ownership.NewRegistry(logger.Discard())
	_, err := repository.RegisterListLookups(owners, gdb)
	require.NoError(t, err)
	eng := engine.New(repository.NewReactionRepository(gdb), owners, nil, logger.Discard(), engine.Options{})

	var (
		fired   atomic.Bool
		twinErr error
	)
	require.NoError(t, gdb.Callback().Query().After("gorm:query").Register("test:committed_twin", func(d *gorm.DB) {
		if d.Statement.Table != "reactions" || !fired.CompareAndSwap(false, true) {
			return
		}
		twinErr = other.Exec(
			"INSERT INTO reactions (id, user_id, entry_id, entry_kind, entry_owner_id, is_like, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			"twin", "a", 42, reaction.KindFavorite, "b", true, time.Now().UTC(),
		).Error
	}))

	before := promtest.ToFloat64(metrics.ConflictRetriesTotal)

	// the retry sees the committed like and toggles it off
	res, err := eng.Toggle(ctx, 42, reaction.KindFavorite, "a", true)
	require.NoError(t, err)
	require.NoError(t, twinErr)
	assert.Equal(t, reaction.ActionRemoved, res.Action)
	assert.Equal(t, int64(0), res.Likes)
	assert.GreaterOrEqual(t, promtest.ToFloat64(metrics.ConflictRetriesTotal), before+1)

	var n int64
	require.NoError(t, gdb.Model(&db.Reaction{}).Where("user_id = ?", "a").Count(&n).Error)
	assert.Zero(t, n)
}

func TestToggle_RetriesAfterUniquenessRace(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// The first insert attempt finds a twin created under its feet.
	var fired atomic.Bool
	require.NoError(t, f.gdb.Callback().Create().Before("gorm:create").Register("test:race", func(d *gorm.DB) {
		if d.Statement.Table != "reactions" || !fired.CompareAndSwap(false, true) {
			return
		}
		d.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO reactions (id, user_id, entry_id, entry_kind, entry_owner_id, is_like, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			"twin", "a", 42, reaction.KindFavorite, "b", true, time.Now().UTC(),
		)
	}))

	before := promtest.ToFloat64(metrics.ConflictRetriesTotal)

	res, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, reaction.ActionAdded, res.Action)
	assert.Equal(t, int64(1), res.Likes)
	assert.Equal(t, int64(1), f.rowCount(t, "a", 42, reaction.KindFavorite))
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.ConflictRetriesTotal))
}

//
// Remove
//

func TestRemove(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	res, err := f.eng.Remove(ctx, 42, reaction.KindFavorite, "a")
	require.NoError(t, err)
	assert.Equal(t, reaction.ActionNone, res.Action)

	_, err = dislike(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	_, err = like(ctx, f, "c", 42, reaction.KindFavorite)
	require.NoError(t, err)

	res, err = f.eng.Remove(ctx, 42, reaction.KindFavorite, "a")
	require.NoError(t, err)
	assert.Equal(t, reaction.Result{Action: reaction.ActionRemoved, EntryID: 42, Kind: reaction.KindFavorite, Likes: 1}, res)
}

func TestRemoveAllForEntry(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	_, err = dislike(ctx, f, "c", 42, reaction.KindFavorite)
	require.NoError(t, err)

	_, err = f.eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	require.True(t, f.mr.Exists(f.rc.KeyForOwnerStats("b")))

	removed, err := f.eng.RemoveAllForEntry(ctx, 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.False(t, f.mr.Exists(f.rc.KeyForOwnerStats("b")))

	stats, err := f.eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, reaction.NewOwnerStats("b", 0, 0), stats)
}

//
// Summaries
//

func TestSummary_ViewerStatus(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := dislike(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)

	s, err := f.eng.Summary(ctx, 42, reaction.KindFavorite, "a")
	require.NoError(t, err)
	assert.Equal(t, reaction.StatusDisliked, s.ViewerStatus)

	s, err = f.eng.Summary(ctx, 42, reaction.KindFavorite, "c")
	require.NoError(t, err)
	assert.Equal(t, reaction.StatusNone, s.ViewerStatus)

	s, err = f.eng.Summary(ctx, 42, reaction.KindFavorite, "")
	require.NoError(t, err)
	assert.Equal(t, reaction.Summary{EntryID: 42, Kind: reaction.KindFavorite, Dislikes: 1}, s)
}

func TestBatchSummary_EveryIDPresent(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for _, user := range []string{"a", "c"} {
		_, err := like(ctx, f, user, 7, reaction.KindTop10)
		require.NoError(t, err)
	}
	_, err := dislike(ctx, f, "d", 7, reaction.KindTop10)
	require.NoError(t, err)

	got, err := f.eng.BatchSummary(ctx, []uint64{7, 8, 9, 10, 11}, reaction.KindTop10, "")
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, int64(2), got[7].Likes)
	assert.Equal(t, int64(1), got[7].Dislikes)
	for _, id := range []uint64{8, 9, 10, 11} {
		assert.Equal(t, reaction.Summary{EntryID: id, Kind: reaction.KindTop10}, got[id], "id %d", id)
	}
}

func TestBatchSummary_MatchesSingle(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 7, reaction.KindTop10)
	require.NoError(t, err)
	_, err = dislike(ctx, f, "c", 7, reaction.KindTop10)
	require.NoError(t, err)

	ids := []uint64{7, 7, 3, 100}
	for _, viewer := range []string{"", "a", "c", "b"} {
		batch, err := f.eng.BatchSummary(ctx, ids, reaction.KindTop10, viewer)
		require.NoError(t, err)
		assert.Len(t, batch, 3)
		for _, id := range ids {
			single, err := f.eng.Summary(ctx, id, reaction.KindTop10, viewer)
			require.NoError(t, err)
			assert.Equal(t, single, batch[id], "viewer %q id %d", viewer, id)
		}
	}
}

func TestBatchSummary_ConstantQueryCount(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 7, reaction.KindTop10)
	require.NoError(t, err)

	ids := make([]uint64, 0, 200)
	for i := uint64(1); i <= 200; i++ {
		ids = append(ids, i)
	}

	counter := testutil.CountQueries(t, f.gdb)

	got, err := f.eng.BatchSummary(ctx, ids, reaction.KindTop10, "a")
	require.NoError(t, err)
	assert.Len(t, got, 200)
	assert.LessOrEqual(t, counter.Count(), int64(2))

	counter.Reset()
	_, err = f.eng.BatchSummary(ctx, ids[:3], reaction.KindTop10, "")
	require.NoError(t, err)
	assert.LessOrEqual(t, counter.Count(), int64(1))

	counter.Reset()
	_, err = f.eng.BatchSummary(ctx, nil, reaction.KindTop10, "a")
	require.NoError(t, err)
	assert.Zero(t, counter.Count())
}

func TestBatchSummary_InvalidKind(t *testing.T) {
	f := setup(t)
	_, err := f.eng.BatchSummary(context.Background(), []uint64{1}, reaction.Kind("nope"), "")
	assert.ErrorIs(t, err, reaction.ErrInvalidEntryKind)
}

//
// Owner stats
//

func TestOwnerStats_RatioAndCache(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	stats, err := f.eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, float64(0), stats.LikeRatio)

	_, err = like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	_, err = like(ctx, f, "c", 7, reaction.KindTop10)
	require.NoError(t, err)

	stats, err = f.eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalLikesReceived)
	assert.Equal(t, float64(100), stats.LikeRatio)
	assert.True(t, f.mr.Exists(f.rc.KeyForOwnerStats("b")))

	hits := metrics.StatsCacheTotal.WithLabelValues(metrics.CacheHit)
	before := promtest.ToFloat64(hits)
	_, err = f.eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, before+1, promtest.ToFloat64(hits))

	// a write on b's content is visible on the next read
	_, err = dislike(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.False(t, f.mr.Exists(f.rc.KeyForOwnerStats("b")))

	stats, err = f.eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalLikesReceived)
	assert.Equal(t, int64(1), stats.TotalDislikesReceived)
	assert.InDelta(t, 50.0, stats.LikeRatio, 0.0001)
}

// racingStats runs beforeFill once, just before the first fill reaches Redis.
type racingStats struct {
	*cache.RedisCache
	beforeFill func()
}

func (r *racingStats) SetOwnerStats(ctx context.Context, stats reaction.OwnerStats, version int64, ttl time.Duration) error {
	if fn := r.beforeFill; fn != nil {
		r.beforeFill = nil
		fn()
	}
	return r.RedisCache.SetOwnerStats(ctx, stats, version, ttl)
}

func TestOwnerStats_WriterReadsOwnWriteAfterRacingFill(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	racing := &racingStats{RedisCache: f.rc}
	eng := engine.New(repository.NewReactionRepository(f.gdb), f.owners, racing, logger.Discard(), engine.Options{})

	// the reader aggregates before the like commits, the writer invalidates,
	// then the reader's fill lands
	racing.beforeFill = func() {
		_, err := eng.Toggle(ctx, 42, reaction.KindFavorite, "a", true)
		require.NoError(t, err)
	}
	stale, err := eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stale.TotalLikesReceived)
	assert.False(t, f.mr.Exists(f.rc.KeyForOwnerStats("b")))

	fresh, err := eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.TotalLikesReceived)
	assert.True(t, f.mr.Exists(f.rc.KeyForOwnerStats("b")))
}

func TestOwnerStats_WithoutCacheAndRedisDown(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)

	noCache := engine.New(repository.NewReactionRepository(f.gdb), f.owners, nil, logger.Discard(), engine.Options{})
	stats, err := noCache.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalLikesReceived)

	f.mr.Close()
	stats, err = f.eng.OwnerStats(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalLikesReceived)
}

func TestOwnerStatsByKind(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	_, err = dislike(ctx, f, "a", 7, reaction.KindTop10)
	require.NoError(t, err)

	got, err := f.eng.OwnerStatsByKind(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []reaction.KindStats{
		{Kind: reaction.KindFavorite, Likes: 1},
		{Kind: reaction.KindTop10, Dislikes: 1},
	}, got)
}

//
// Analytics
//

func TestTrendingLikersSimilar(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// a and c both like #42, only c likes #7
	_, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)
	_, err = like(ctx, f, "c", 42, reaction.KindFavorite)
	require.NoError(t, err)
	_, err = like(ctx, f, "c", 7, reaction.KindTop10)
	require.NoError(t, err)

	trending, err := f.eng.Trending(ctx, reaction.KindFavorite, 0)
	require.NoError(t, err)
	assert.Equal(t, []reaction.TrendingEntry{{
		EntryID:   42,
		Kind:      reaction.KindFavorite,
		LikeCount: 2,
		OwnerID:   "b",
		MovieID:   603,
		Title:     "The Matrix",
	}}, trending)

	_, err = f.eng.Trending(ctx, reaction.Kind(""), 5)
	assert.ErrorIs(t, err, reaction.ErrInvalidEntryKind)

	likers, err := f.eng.UsersWhoLiked(ctx, 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, likers)

	none, err := f.eng.UsersWhoLiked(ctx, 5, reaction.KindWatched)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	similar, err := f.eng.SimilarUsers(ctx, "a", 10)
	require.NoError(t, err)
	assert.Equal(t, []reaction.SimilarUser{{UserID: "c", CommonLikes: 1}}, similar)
}

type failingDetails struct{}

func (failingDetails) FindByIDs(context.Context, reaction.Kind, []uint64) (map[uint64]db.ListEntry, error) {
	return nil, errors.New("list store down")
}

func TestTrending_DetailLookupFailureKeepsRanking(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := like(ctx, f, "a", 7, reaction.KindTop10)
	require.NoError(t, err)

	eng := engine.New(repository.NewReactionRepository(f.gdb), f.owners, nil, logger.Discard(), engine.Options{}).
		WithEntryDetails(failingDetails{})
	trending, err := eng.Trending(ctx, reaction.KindTop10, 5)
	require.NoError(t, err)
	assert.Equal(t, []reaction.TrendingEntry{{EntryID: 7, Kind: reaction.KindTop10, LikeCount: 1}}, trending)
}

func TestOwnerActivity(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for i, user := range []string{"u1", "u2", "u3", "u4", "u5"} {
		_, err := f.eng.Toggle(ctx, 42, reaction.KindFavorite, user, i%2 == 0)
		require.NoError(t, err)
	}

	var (
		seen   []string
		cursor *string
	)
	for pages := 0; pages < 5; pages++ {
		page, err := f.eng.OwnerActivity(ctx, "b", cursor, 2)
		require.NoError(t, err)
		for _, it := range page.Items {
			seen = append(seen, it.UserID)
			assert.Equal(t, uint64(42), it.EntryID)
			assert.NotEqual(t, reaction.StatusNone, it.Status)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}
	assert.ElementsMatch(t, []string{"u1", "u2", "u3", "u4", "u5"}, seen)

	bad := "%%%"
	_, err := f.eng.OwnerActivity(ctx, "b", &bad, 2)
	assert.ErrorIs(t, err, reaction.ErrInvalidCursor)
}

//
// Failures
//

func TestStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// ownership answers without the database
	owners := ownership.NewRegistry(logger.Discard()).
		Register(reaction.KindFavorite, ownership.LookupFunc(func(context.Context, uint64) (string, error) {
			return "b", nil
		}))
	eng := engine.New(repository.NewReactionRepository(f.gdb), owners, nil, logger.Discard(), engine.Options{})

	sqlDB, err := f.gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = eng.Toggle(ctx, 42, reaction.KindFavorite, "a", true)
	assert.ErrorIs(t, err, reaction.ErrStorageUnavailable)

	_, err = eng.Remove(ctx, 42, reaction.KindFavorite, "a")
	assert.ErrorIs(t, err, reaction.ErrStorageUnavailable)

	_, err = eng.BatchSummary(ctx, []uint64{1, 2}, reaction.KindFavorite, "a")
	assert.ErrorIs(t, err, reaction.ErrStorageUnavailable)

	_, err = eng.OwnerStats(ctx, "b")
	assert.ErrorIs(t, err, reaction.ErrStorageUnavailable)

	_, err = eng.Trending(ctx, reaction.KindFavorite, 3)
	assert.ErrorIs(t, err, reaction.ErrStorageUnavailable)
}

//
// Enrichment
//

func TestEnrich(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)

	views := engine.NewEntryViews(reaction.KindFavorite, []db.ListEntry{
		{ID: 42, UserID: "b", Title: "The Matrix"},
		{ID: 43, UserID: "b", Title: "Heat"},
	})
	engine.Enrich(ctx, f.eng, reaction.KindFavorite, "a", views)

	assert.Equal(t, int64(1), views[0].Likes)
	assert.Equal(t, reaction.StatusLiked, views[0].ViewerStatus)
	assert.Equal(t, int64(0), views[1].Likes)
	assert.Equal(t, reaction.StatusNone, views[1].ViewerStatus)
}

func TestEnrich_DegradesToZeros(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := like(ctx, f, "a", 42, reaction.KindFavorite)
	require.NoError(t, err)

	sqlDB, err := f.gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	views := make([]*engine.EntryView, 0, 3)
	for i := uint64(40); i < 43; i++ {
		views = append(views, &engine.EntryView{ID: i, Title: fmt.Sprintf("entry %d", i), Likes: -1})
	}
	engine.Enrich(ctx, f.eng, reaction.KindFavorite, "a", views)

	for _, v := range views {
		assert.Equal(t, int64(0), v.Likes)
		assert.Equal(t, int64(0), v.Dislikes)
		assert.Equal(t, reaction.StatusNone, v.ViewerStatus)
	}
}
