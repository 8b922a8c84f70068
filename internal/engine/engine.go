// Package engine implements reaction toggling and the read paths built on top
// of the reaction store: single and batched summaries, owner statistics and
// the analytics queries.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/oggyb/movie-social/internal/config"
	"github.com/oggyb/movie-social/internal/db"
	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/metrics"
	"github.com/oggyb/movie-social/internal/reaction"
	"github.com/oggyb/movie-social/internal/repository"
)

// OwnerResolver finds the owner of an entry. *ownership.Registry implements it.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, entryID uint64, kind reaction.Kind) (string, error)
}

// StatsCache stores computed owner totals. *cache.RedisCache implements it.
// SetOwnerStats must drop a fill whose version was read before the last
// InvalidateOwnerStats for that owner.
type StatsCache interface {
	GetOwnerStats(ctx context.Context, ownerID string) (reaction.OwnerStats, bool, error)
	OwnerStatsVersion(ctx context.Context, ownerID string) (int64, error)
	SetOwnerStats(ctx context.Context, stats reaction.OwnerStats, version int64, ttl time.Duration) error
	InvalidateOwnerStats(ctx context.Context, ownerIDs ...string) error
}

// EntryDetails loads list rows for a batch of ids of one kind.
// repository.ListSet implements it.
type EntryDetails interface {
	FindByIDs(ctx context.Context, kind reaction.Kind, ids []uint64) (map[uint64]db.ListEntry, error)
}

// Options tunes retries, caching and result limits. Zero values take defaults.
type Options struct {
	// MaxAttempts bounds the read-check-write attempts per toggle. Values
	// below 2 are raised to 2.
	MaxAttempts  int
	StatsTTL     time.Duration
	DefaultLimit int
	MaxLimit     int
}

// OptionsFromConfig reads the Reaction section of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxAttempts:  cfg.Reaction.MaxAttempts,
		StatsTTL:     cfg.Reaction.StatsTTL,
		DefaultLimit: cfg.Reaction.TrendingLimit,
		MaxLimit:     cfg.Reaction.MaxLimit,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts < 2 {
		o.MaxAttempts = 2
	}
	if o.StatsTTL <= 0 {
		o.StatsTTL = time.Hour
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 10
	}
	if o.MaxLimit < o.DefaultLimit {
		o.MaxLimit = o.DefaultLimit
	}
	return o
}

// Engine is safe for concurrent use.
type Engine struct {
	store  *repository.ReactionRepository
	owners OwnerResolver
	stats   StatsCache
	entries EntryDetails
	logger  *slog.Logger
	opts   Options

	statsGroup singleflight.Group
}

// New wires an engine. stats may be nil, in which case owner statistics are
// always computed from the store.
func New(
	store *repository.ReactionRepository,
	owners OwnerResolver,
	stats StatsCache,
	log *slog.Logger,
	opts Options,
) *Engine {
	if log == nil {
		log = logger.L()
	}
	return &Engine{
		store:  store,
		owners: owners,
		stats:  stats,
		logger: log,
		opts:   opts.withDefaults(),
	}
}

// WithEntryDetails sets the source Trending reads entry details from. Call it
// before the engine serves requests.
func (e *Engine) WithEntryDetails(d EntryDetails) *Engine {
	e.entries = d
	return e
}

// Toggle applies a like (wantsLike) or dislike intent from userID to an entry.
//
// Behavior:
//   - No reaction yet → the reaction is stored (ActionAdded).
//   - Same reaction already stored → it is deleted (ActionRemoved).
//   - Opposite reaction stored → the flag is flipped in place (ActionSwitched).
//   - The entry owner may not react to their own entry (reaction.ErrSelfReaction).
//
// The returned counts include this call's effect.
func (e *Engine) Toggle(
	ctx context.Context,
	entryID uint64,
	kind reaction.Kind,
	userID string,
	wantsLike bool,
) (reaction.Result, error) {
	e.logger.Debug("Toggle called", "entry_id", entryID, "kind", kind, "user", userID, "like", wantsLike)

	if !kind.Valid() {
		return reaction.Result{}, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}

	ownerID, err := e.owners.ResolveOwner(ctx, entryID, kind)
	if err != nil {
		return reaction.Result{}, err
	}
	if ownerID == userID {
		return reaction.Result{}, reaction.ErrSelfReaction
	}

	var action reaction.Action
	err = e.write(ctx, func(tx *repository.ReactionRepository) error {
		existing, err := tx.FindForUpdate(ctx, userID, entryID, kind)
		if err != nil {
			return err
		}

		switch {
		case existing == nil:
			action = reaction.ActionAdded
			return tx.Insert(ctx, &db.Reaction{
				UserID:       userID,
				EntryID:      entryID,
				EntryKind:    kind,
				EntryOwnerID: ownerID,
				IsLike:       wantsLike,
			})
		case existing.IsLike == wantsLike:
			action = reaction.ActionRemoved
			return tx.Delete(ctx, existing.ID)
		default:
			action = reaction.ActionSwitched
			return tx.SetLike(ctx, existing.ID, wantsLike)
		}
	})
	if err != nil {
		e.logger.Error("Toggle failed", "entry_id", entryID, "kind", kind, "user", userID, "err", err)
		return reaction.Result{}, err
	}

	e.afterWrite(ctx, kind, action, ownerID)
	return e.result(ctx, entryID, kind, action)
}

// Remove deletes userID's reaction on an entry whatever its value.
// Reports ActionNone when there was nothing to delete.
func (e *Engine) Remove(ctx context.Context, entryID uint64, kind reaction.Kind, userID string) (reaction.Result, error) {
	e.logger.Debug("Remove called", "entry_id", entryID, "kind", kind, "user", userID)

	if !kind.Valid() {
		return reaction.Result{}, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}

	var (
		action  reaction.Action
		ownerID string
	)
	err := e.write(ctx, func(tx *repository.ReactionRepository) error {
		existing, err := tx.FindForUpdate(ctx, userID, entryID, kind)
		if err != nil {
			return err
		}
		if existing == nil {
			action, ownerID = reaction.ActionNone, ""
			return nil
		}
		action, ownerID = reaction.ActionRemoved, existing.EntryOwnerID
		return tx.Delete(ctx, existing.ID)
	})
	if err != nil {
		e.logger.Error("Remove failed", "entry_id", entryID, "kind", kind, "user", userID, "err", err)
		return reaction.Result{}, err
	}

	if action == reaction.ActionRemoved {
		e.afterWrite(ctx, kind, action, ownerID)
	}
	return e.result(ctx, entryID, kind, action)
}

// RemoveAllForEntry deletes every reaction on an entry. List services call it
// when the entry itself is deleted. Returns the number of reactions removed.
func (e *Engine) RemoveAllForEntry(ctx context.Context, entryID uint64, kind reaction.Kind) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}

	owners, removed, err := e.store.DeleteForEntry(ctx, entryID, kind)
	if err != nil {
		e.logger.Error("RemoveAllForEntry failed", "entry_id", entryID, "kind", kind, "err", err)
		return 0, storageErr(err)
	}

	e.invalidate(ctx, owners...)
	e.logger.Info("entry reactions removed", "entry_id", entryID, "kind", kind, "removed", removed)
	return removed, nil
}

// Summary returns counts for one entry and, when viewerID is set, the
// viewer's own reaction. It reads through the batch path so single and
// batched summaries always agree.
func (e *Engine) Summary(ctx context.Context, entryID uint64, kind reaction.Kind, viewerID string) (reaction.Summary, error) {
	out, err := e.BatchSummary(ctx, []uint64{entryID}, kind, viewerID)
	if err != nil {
		return reaction.Summary{}, err
	}
	return out[entryID], nil
}

// BatchSummary returns a summary for every id in entryIDs, including ids that
// have no reactions. It issues at most two queries whatever the number of ids.
func (e *Engine) BatchSummary(
	ctx context.Context,
	entryIDs []uint64,
	kind reaction.Kind,
	viewerID string,
) (map[uint64]reaction.Summary, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}

	ids := dedupe(entryIDs)
	metrics.ObserveBatchSize(len(ids))

	out := make(map[uint64]reaction.Summary, len(ids))
	for _, id := range ids {
		out[id] = reaction.Summary{EntryID: id, Kind: kind}
	}
	if len(ids) == 0 {
		return out, nil
	}

	counts, err := e.store.CountsForEntries(ctx, ids, kind)
	if err != nil {
		e.logger.Error("batch counts failed", "kind", kind, "ids", len(ids), "err", err)
		return nil, storageErr(err)
	}
	for id, c := range counts {
		s := out[id]
		s.Likes, s.Dislikes = c.Likes, c.Dislikes
		out[id] = s
	}

	if viewerID == "" {
		return out, nil
	}

	rows, err := e.store.UserReactionsForEntries(ctx, viewerID, ids, kind)
	if err != nil {
		e.logger.Error("batch viewer lookup failed", "kind", kind, "viewer", viewerID, "err", err)
		return nil, storageErr(err)
	}
	for _, row := range rows {
		if s, ok := out[row.EntryID]; ok {
			s.ViewerStatus = reaction.StatusOf(row.IsLike)
			out[row.EntryID] = s
		}
	}
	return out, nil
}

// write runs fn in a transaction, retrying when a concurrent writer raced on
// the same (user, entry, kind) key.
func (e *Engine) write(ctx context.Context, fn func(tx *repository.ReactionRepository) error) error {
	var err error
	for attempt := 1; attempt <= e.opts.MaxAttempts; attempt++ {
		err = e.store.Transaction(ctx, fn)
		if !errors.Is(err, reaction.ErrConflict) {
			break
		}
		if ctx.Err() != nil {
			return storageErr(ctx.Err())
		}
		if attempt < e.opts.MaxAttempts {
			metrics.RecordConflictRetry()
			e.logger.Debug("reaction write conflict, retrying", "attempt", attempt)
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, reaction.ErrConflict):
		return err
	default:
		return storageErr(err)
	}
}

func (e *Engine) afterWrite(ctx context.Context, kind reaction.Kind, action reaction.Action, ownerID string) {
	metrics.RecordTransition(kind, action)
	e.invalidate(ctx, ownerID)
}

// invalidate drops cached owner stats. Failures are logged, never returned:
// the write is already committed.
func (e *Engine) invalidate(ctx context.Context, ownerIDs ...string) {
	for _, id := range ownerIDs {
		e.statsGroup.Forget(id)
	}
	if e.stats == nil || len(ownerIDs) == 0 {
		return
	}
	if err := e.stats.InvalidateOwnerStats(ctx, ownerIDs...); err != nil {
		e.logger.Warn("owner stats invalidation failed", "owners", ownerIDs, "err", err)
	}
}

func (e *Engine) result(ctx context.Context, entryID uint64, kind reaction.Kind, action reaction.Action) (reaction.Result, error) {
	counts, err := e.store.Counts(ctx, entryID, kind)
	if err != nil {
		e.logger.Error("recount failed", "entry_id", entryID, "kind", kind, "err", err)
		return reaction.Result{}, storageErr(err)
	}
	return reaction.Result{
		Action:   action,
		EntryID:  entryID,
		Kind:     kind,
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
	}, nil
}

// storageErr tags a persistence failure with reaction.ErrStorageUnavailable
// while keeping the cause (and any context error) matchable.
func storageErr(err error) error {
	if err == nil || errors.Is(err, reaction.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", reaction.ErrStorageUnavailable, err)
}

func dedupe(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
