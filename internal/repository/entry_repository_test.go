package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/movie-social/internal/db"
	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/ownership"
	"github.com/oggyb/movie-social/internal/reaction"
	"github.com/oggyb/movie-social/internal/repository"
	"github.com/oggyb/movie-social/internal/testutil"
)

func TestNewListEntryRepository_UnknownKind(t *testing.T) {
	_, err := repository.NewListEntryRepository(testutil.NewDB(t), reaction.Kind("BOOKMARK"))
	assert.ErrorIs(t, err, reaction.ErrInvalidEntryKind)
}

func TestOwnerOf(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	require.NoError(t, db.SeedMinimalTestData(gdb))

	favs, err := repository.NewListEntryRepository(gdb, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, reaction.KindFavorite, favs.Kind())

	owner, err := favs.OwnerOf(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "b", owner)

	_, err = favs.OwnerOf(ctx, 7) // 7 is a top10 entry, not a favorite
	assert.ErrorIs(t, err, ownership.ErrNoOwner)
}

func TestListByOwner_Top10ByRank(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)

	rows := []db.Top10{
		{ListEntry: db.ListEntry{UserID: "b", MovieID: 1, Title: "third"}, Rank: 3},
		{ListEntry: db.ListEntry{UserID: "b", MovieID: 2, Title: "first"}, Rank: 1},
		{ListEntry: db.ListEntry{UserID: "b", MovieID: 3, Title: "second"}, Rank: 2},
		{ListEntry: db.ListEntry{UserID: "a", MovieID: 4, Title: "other"}, Rank: 1},
	}
	require.NoError(t, gdb.Create(&rows).Error)

	top, err := repository.NewListEntryRepository(gdb, reaction.KindTop10)
	require.NoError(t, err)

	got, err := top.ListByOwner(ctx, "b", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{got[0].Title, got[1].Title, got[2].Title})

	limited, err := top.ListByOwner(ctx, "b", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRegisterListLookups(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	require.NoError(t, db.SeedMinimalTestData(gdb))

	reg := ownership.NewRegistry(logger.Discard())
	lists, err := repository.RegisterListLookups(reg, gdb)
	require.NoError(t, err)
	assert.Len(t, lists, 4)

	for _, kind := range reaction.Kinds() {
		assert.True(t, reg.Registered(kind), kind)
	}

	owner, err := reg.ResolveOwner(ctx, 5, reaction.KindWatched)
	require.NoError(t, err)
	assert.Equal(t, "a", owner)

	_, err = reg.ResolveOwner(ctx, 5, reaction.KindWatchLater)
	assert.ErrorIs(t, err, reaction.ErrEntryNotFound)
}

func TestListSet_FindByIDs(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	require.NoError(t, db.SeedMinimalTestData(gdb))

	lists, err := repository.RegisterListLookups(ownership.NewRegistry(logger.Discard()), gdb)
	require.NoError(t, err)
	counter := testutil.CountQueries(t, gdb)

	got, err := lists.FindByIDs(ctx, reaction.KindFavorite, []uint64{42, 7, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counter.Count())
	require.Len(t, got, 1) // 7 is a top10 entry, 999 does not exist
	assert.Equal(t, "b", got[42].UserID)
	assert.Equal(t, "The Matrix", got[42].Title)
	assert.EqualValues(t, 603, got[42].MovieID)

	empty, err := lists.FindByIDs(ctx, reaction.KindTop10, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = lists.FindByIDs(ctx, reaction.Kind("BOOKMARK"), []uint64{1})
	assert.ErrorIs(t, err, reaction.ErrInvalidEntryKind)
}
