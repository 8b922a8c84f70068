package ownership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/ownership"
	"github.com/oggyb/movie-social/internal/reaction"
)

func staticOwners(owners map[uint64]string) ownership.LookupFunc {
	return func(_ context.Context, id uint64) (string, error) {
		if o, ok := owners[id]; ok {
			return o, nil
		}
		return "", ownership.ErrNoOwner
	}
}

func TestResolveOwner_DispatchesByKind(t *testing.T) {
	ctx := context.Background()
	reg := ownership.NewRegistry(logger.Discard()).
		Register(reaction.KindFavorite, staticOwners(map[uint64]string{42: "b"})).
		Register(reaction.KindTop10, staticOwners(map[uint64]string{42: "c"}))

	owner, err := reg.ResolveOwner(ctx, 42, reaction.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, "b", owner)

	owner, err = reg.ResolveOwner(ctx, 42, reaction.KindTop10)
	require.NoError(t, err)
	assert.Equal(t, "c", owner)
}

func TestResolveOwner_FailuresAreNotFound(t *testing.T) {
	ctx := context.Background()
	broken := ownership.LookupFunc(func(context.Context, uint64) (string, error) {
		return "", errors.New("connection refused")
	})
	empty := ownership.LookupFunc(func(context.Context, uint64) (string, error) {
		return "", nil
	})
	reg := ownership.NewRegistry(logger.Discard()).
		Register(reaction.KindFavorite, staticOwners(map[uint64]string{1: "b"})).
		Register(reaction.KindWatched, broken).
		Register(reaction.KindTop10, empty)

	cases := []struct {
		name string
		id   uint64
		kind reaction.Kind
	}{
		{"missing entry", 2, reaction.KindFavorite},
		{"store error", 1, reaction.KindWatched},
		{"empty owner", 1, reaction.KindTop10},
		{"unregistered kind", 1, reaction.KindWatchLater},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.ResolveOwner(ctx, tc.id, tc.kind)
			assert.ErrorIs(t, err, reaction.ErrEntryNotFound)
		})
	}
}

func TestRegister_NilUnregisters(t *testing.T) {
	reg := ownership.NewRegistry(nil).
		Register(reaction.KindFavorite, staticOwners(map[uint64]string{1: "b"}))
	assert.True(t, reg.Registered(reaction.KindFavorite))

	reg.Register(reaction.KindFavorite, nil)
	assert.False(t, reg.Registered(reaction.KindFavorite))

	_, err := reg.ResolveOwner(context.Background(), 1, reaction.KindFavorite)
	assert.ErrorIs(t, err, reaction.ErrEntryNotFound)
}
