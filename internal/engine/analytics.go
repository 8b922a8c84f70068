package engine

import (
	"context"
	"fmt"

	"github.com/oggyb/movie-social/internal/metrics"
	"github.com/oggyb/movie-social/internal/reaction"
)

// OwnerStats returns the likes and dislikes received across all of an owner's
// entries.
// Cache-first strategy:
//  1. Reads reactions:owner_stats:<owner> from the stats cache.
//  2. On miss or cache error, aggregates from the store. Concurrent misses for
//     the same owner share one query.
//  3. Stores the result with the configured TTL. Writes touching the owner
//     drop the entry and bump its version; a fill whose version was read
//     before that bump is discarded, so the writer's next read is fresh.
func (e *Engine) OwnerStats(ctx context.Context, ownerID string) (reaction.OwnerStats, error) {
	e.logger.Debug("OwnerStats called", "owner", ownerID)

	if e.stats != nil {
		cached, hit, err := e.stats.GetOwnerStats(ctx, ownerID)
		switch {
		case err != nil:
			metrics.RecordStatsCache(metrics.CacheError)
			e.logger.Warn("owner stats cache read failed", "owner", ownerID, "err", err)
		case hit:
			metrics.RecordStatsCache(metrics.CacheHit)
			return cached, nil
		default:
			metrics.RecordStatsCache(metrics.CacheMiss)
		}
	}

	v, err, _ := e.statsGroup.Do(ownerID, func() (any, error) {
		var (
			version  int64
			fillable = e.stats != nil
		)
		if fillable {
			var verr error
			if version, verr = e.stats.OwnerStatsVersion(ctx, ownerID); verr != nil {
				e.logger.Warn("owner stats version read failed", "owner", ownerID, "err", verr)
				fillable = false
			}
		}

		totals, err := e.store.OwnerTotals(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		stats := reaction.NewOwnerStats(ownerID, totals.Likes, totals.Dislikes)
		if fillable {
			if err := e.stats.SetOwnerStats(ctx, stats, version, e.opts.StatsTTL); err != nil {
				e.logger.Warn("owner stats cache write failed", "owner", ownerID, "err", err)
			}
		}
		return stats, nil
	})
	if err != nil {
		e.logger.Error("OwnerStats failed", "owner", ownerID, "err", err)
		return reaction.OwnerStats{}, storageErr(err)
	}
	return v.(reaction.OwnerStats), nil
}

// OwnerStatsByKind breaks OwnerStats down per entry kind. Kinds the owner
// received nothing on are omitted.
func (e *Engine) OwnerStatsByKind(ctx context.Context, ownerID string) ([]reaction.KindStats, error) {
	stats, err := e.store.OwnerTotalsByKind(ctx, ownerID)
	if err != nil {
		return nil, storageErr(err)
	}
	return stats, nil
}

// Trending ranks entries of a kind by like count descending, ties broken by
// entry id ascending. Each row carries the entry's owner, movie and title,
// loaded in one query. A failed detail lookup leaves the ranking intact.
func (e *Engine) Trending(ctx context.Context, kind reaction.Kind, limit int) ([]reaction.TrendingEntry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}
	entries, err := e.store.MostLiked(ctx, kind, e.limit(limit))
	if err != nil {
		return nil, storageErr(err)
	}
	if e.entries == nil || len(entries) == 0 {
		return entries, nil
	}

	ids := make([]uint64, 0, len(entries))
	for _, t := range entries {
		ids = append(ids, t.EntryID)
	}
	rows, err := e.entries.FindByIDs(ctx, kind, ids)
	if err != nil {
		e.logger.Warn("trending entry details unavailable", "kind", kind, "err", err)
		return entries, nil
	}
	for i := range entries {
		row, ok := rows[entries[i].EntryID]
		if !ok {
			continue
		}
		entries[i].OwnerID = row.UserID
		entries[i].MovieID = row.MovieID
		entries[i].Title = row.Title
		entries[i].PosterPath = row.PosterPath
	}
	return entries, nil
}

// UsersWhoLiked returns the ids of users who liked an entry, sorted.
func (e *Engine) UsersWhoLiked(ctx context.Context, entryID uint64, kind reaction.Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}
	ids, err := e.store.Likers(ctx, entryID, kind)
	if err != nil {
		return nil, storageErr(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SimilarUsers finds users who liked entries userID also liked, ranked by the
// number of shared likes, then by user id. userID itself is never included.
func (e *Engine) SimilarUsers(ctx context.Context, userID string, limit int) ([]reaction.SimilarUser, error) {
	users, err := e.store.SimilarTaste(ctx, userID, e.limit(limit))
	if err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}

// OwnerActivity lists reactions received on an owner's entries, newest first.
// cursor is the NextCursor of a previous page, or nil for the first page.
func (e *Engine) OwnerActivity(ctx context.Context, ownerID string, cursor *string, limit int) (reaction.ActivityPage, error) {
	rows, next, err := e.store.OwnerActivity(ctx, ownerID, cursor, e.limit(limit))
	if err != nil {
		if reaction.IsCallerError(err) {
			return reaction.ActivityPage{}, err
		}
		return reaction.ActivityPage{}, storageErr(err)
	}

	page := reaction.ActivityPage{Items: make([]reaction.Activity, 0, len(rows)), NextCursor: next}
	for _, r := range rows {
		page.Items = append(page.Items, reaction.Activity{
			UserID:    r.UserID,
			EntryID:   r.EntryID,
			Kind:      r.EntryKind,
			Status:    reaction.StatusOf(r.IsLike),
			CreatedAt: r.CreatedAt,
		})
	}
	return page, nil
}

// limit applies the default to non-positive values and caps the rest.
func (e *Engine) limit(n int) int {
	switch {
	case n <= 0:
		return e.opts.DefaultLimit
	case n > e.opts.MaxLimit:
		return e.opts.MaxLimit
	}
	return n
}
