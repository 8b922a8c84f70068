package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/movie-social/internal/db"
	"github.com/oggyb/movie-social/internal/reaction"
	"github.com/oggyb/movie-social/internal/utils/pagination"
)

// MySQL lock errors that mean "another writer got there first".
const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// ReactionRepository provides data access methods for the Reaction model.
// It is the only writer of the reactions table.
type ReactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new repository bound to the given DB connection.
func NewReactionRepository(database *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: database}
}

// Transaction runs fn against a repository bound to a single transaction.
// Any error returned by fn rolls the transaction back. Lock contention on
// begin or commit yields reaction.ErrConflict.
func (r *ReactionRepository) Transaction(ctx context.Context, fn func(tx *ReactionRepository) error) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReactionRepository{db: tx})
	}))
}

// FindForUpdate returns the user's reaction on an entry, locking the row
// where the dialect supports it. Returns nil when there is no reaction.
func (r *ReactionRepository) FindForUpdate(
	ctx context.Context,
	userID string,
	entryID uint64,
	kind reaction.Kind,
) (*db.Reaction, error) {
	return r.find(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), userID, entryID, kind)
}

// Find returns the user's reaction on an entry, or nil when there is none.
func (r *ReactionRepository) Find(
	ctx context.Context,
	userID string,
	entryID uint64,
	kind reaction.Kind,
) (*db.Reaction, error) {
	return r.find(ctx, r.db, userID, entryID, kind)
}

func (r *ReactionRepository) find(
	ctx context.Context,
	q *gorm.DB,
	userID string,
	entryID uint64,
	kind reaction.Kind,
) (*db.Reaction, error) {
	var rows []db.Reaction
	err := q.WithContext(ctx).
		Where("user_id = ? AND entry_id = ? AND entry_kind = ?", userID, entryID, kind).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Insert stores a new reaction.
// A duplicate (user_id, entry_id, entry_kind) yields reaction.ErrConflict.
func (r *ReactionRepository) Insert(ctx context.Context, row *db.Reaction) error {
	return translate(r.db.WithContext(ctx).Create(row).Error)
}

// SetLike flips the like flag of an existing reaction in place.
// Yields reaction.ErrConflict when the row vanished concurrently.
func (r *ReactionRepository) SetLike(ctx context.Context, id string, isLike bool) error {
	res := r.db.WithContext(ctx).
		Model(&db.Reaction{}).
		Where("id = ?", id).
		Update("is_like", isLike)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return reaction.ErrConflict
	}
	return nil
}

// Delete hard-deletes a reaction by id.
// Yields reaction.ErrConflict when the row vanished concurrently.
func (r *ReactionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Reaction{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return reaction.ErrConflict
	}
	return nil
}

type countRow struct {
	EntryID  uint64
	Likes    int64
	Dislikes int64
}

type totalsRow struct {
	Likes    int64
	Dislikes int64
}

type kindTotalsRow struct {
	EntryKind reaction.Kind
	Likes     int64
	Dislikes  int64
}

type trendingRow struct {
	EntryID   uint64
	LikeCount int64
}

type similarRow struct {
	UserID      string
	CommonLikes int64
}

// CountsForEntries returns like/dislike counts for every id in ids that has
// at least one reaction, in one grouped query. Missing ids have no reactions.
func (r *ReactionRepository) CountsForEntries(
	ctx context.Context,
	entryIDs []uint64,
	kind reaction.Kind,
) (map[uint64]reaction.Counts, error) {
	out := make(map[uint64]reaction.Counts, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}

	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&db.Reaction{}).
		Select(
			"entry_id, "+
				"COALESCE(SUM(CASE WHEN is_like = ? THEN 1 ELSE 0 END), 0) AS likes, "+
				"COALESCE(SUM(CASE WHEN is_like = ? THEN 1 ELSE 0 END), 0) AS dislikes",
			true, false,
		).
		Where("entry_kind = ? AND entry_id IN ?", kind, entryIDs).
		Group("entry_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.EntryID] = reaction.Counts{Likes: row.Likes, Dislikes: row.Dislikes}
	}
	return out, nil
}

// Counts returns like/dislike counts for a single entry.
func (r *ReactionRepository) Counts(ctx context.Context, entryID uint64, kind reaction.Kind) (reaction.Counts, error) {
	counts, err := r.CountsForEntries(ctx, []uint64{entryID}, kind)
	if err != nil {
		return reaction.Counts{}, err
	}
	return counts[entryID], nil
}

// UserReactionsForEntries returns the user's rows among entryIDs, in one query.
func (r *ReactionRepository) UserReactionsForEntries(
	ctx context.Context,
	userID string,
	entryIDs []uint64,
	kind reaction.Kind,
) ([]db.Reaction, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	var rows []db.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_kind = ? AND entry_id IN ?", userID, kind, entryIDs).
		Find(&rows).Error
	return rows, err
}

// OwnerTotals counts likes and dislikes received across all of an owner's entries.
func (r *ReactionRepository) OwnerTotals(ctx context.Context, ownerID string) (reaction.Counts, error) {
	var row totalsRow
	err := r.db.WithContext(ctx).
		Model(&db.Reaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN is_like = ? THEN 1 ELSE 0 END), 0) AS likes, "+
				"COALESCE(SUM(CASE WHEN is_like = ? THEN 1 ELSE 0 END), 0) AS dislikes",
			true, false,
		).
		Where("entry_owner_id = ?", ownerID).
		Find(&row).Error
	if err != nil {
		return reaction.Counts{}, err
	}
	return reaction.Counts{Likes: row.Likes, Dislikes: row.Dislikes}, nil
}

// OwnerTotalsByKind is OwnerTotals grouped by entry kind, ordered by kind.
func (r *ReactionRepository) OwnerTotalsByKind(ctx context.Context, ownerID string) ([]reaction.KindStats, error) {
	var rows []kindTotalsRow
	err := r.db.WithContext(ctx).
		Model(&db.Reaction{}).
		Select(
			"entry_kind, "+
				"COALESCE(SUM(CASE WHEN is_like = ? THEN 1 ELSE 0 END), 0) AS likes, "+
				"COALESCE(SUM(CASE WHEN is_like = ? THEN 1 ELSE 0 END), 0) AS dislikes",
			true, false,
		).
		Where("entry_owner_id = ?", ownerID).
		Group("entry_kind").
		Order("entry_kind ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]reaction.KindStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, reaction.KindStats{Kind: row.EntryKind, Likes: row.Likes, Dislikes: row.Dislikes})
	}
	return out, nil
}

// MostLiked ranks entries of a kind by like count.
// Ties are broken by entry_id ascending so the ranking is stable.
func (r *ReactionRepository) MostLiked(ctx context.Context, kind reaction.Kind, limit int) ([]reaction.TrendingEntry, error) {
	var rows []trendingRow
	err := r.db.WithContext(ctx).
		Model(&db.Reaction{}).
		Select("entry_id, COUNT(*) AS like_count").
		Where("entry_kind = ? AND is_like = ?", kind, true).
		Group("entry_id").
		Order("like_count DESC, entry_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]reaction.TrendingEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, reaction.TrendingEntry{EntryID: row.EntryID, Kind: kind, LikeCount: row.LikeCount})
	}
	return out, nil
}

// Likers returns the ids of users who liked an entry, sorted.
func (r *ReactionRepository) Likers(ctx context.Context, entryID uint64, kind reaction.Kind) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&db.Reaction{}).
		Where("entry_id = ? AND entry_kind = ? AND is_like = ?", entryID, kind, true).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// SimilarTaste returns users who liked at least one entry userID also liked,
// ranked by overlap descending, then user id ascending. userID is excluded.
func (r *ReactionRepository) SimilarTaste(ctx context.Context, userID string, limit int) ([]reaction.SimilarUser, error) {
	var rows []similarRow
	err := r.db.WithContext(ctx).
		Table("reactions r1").
		Select("r2.user_id AS user_id, COUNT(*) AS common_likes").
		Joins("JOIN reactions r2 ON r1.entry_id = r2.entry_id AND r1.entry_kind = r2.entry_kind").
		Where("r1.user_id = ? AND r2.user_id <> ? AND r1.is_like = ? AND r2.is_like = ?", userID, userID, true, true).
		Group("r2.user_id").
		Order("common_likes DESC, r2.user_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]reaction.SimilarUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, reaction.SimilarUser{UserID: row.UserID, CommonLikes: row.CommonLikes})
	}
	return out, nil
}

// OwnerActivity returns reactions received on an owner's entries.
//
// Behavior:
//   - Ordered by created_at DESC, id DESC.
//   - Supports cursor-based pagination via paginationToken.
func (r *ReactionRepository) OwnerActivity(
	ctx context.Context,
	ownerID string,
	paginationToken *string,
	limit int,
) ([]db.Reaction, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, reaction.ErrInvalidCursor
	}

	query := r.db.WithContext(ctx).
		Model(&db.Reaction{}).
		Where("entry_owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)

	if !cursor.IsZero() {
		ts := time.UnixMilli(cursor.CreatedUnix).UTC()
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND id < ?))",
			ts, ts, cursor.ID,
		)
	}

	var rows []db.Reaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(rows) > limit {
		last := rows[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			ID:          last.ID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		rows = rows[:limit]
	}

	return rows, nextToken, nil
}

// DeleteForEntry removes every reaction on an entry and returns the distinct
// owners recorded on the removed rows together with the number removed.
func (r *ReactionRepository) DeleteForEntry(
	ctx context.Context,
	entryID uint64,
	kind reaction.Kind,
) ([]string, int64, error) {
	var (
		owners  []string
		removed int64
	)
	err := r.Transaction(ctx, func(tx *ReactionRepository) error {
		if err := tx.db.WithContext(ctx).
			Model(&db.Reaction{}).
			Where("entry_id = ? AND entry_kind = ?", entryID, kind).
			Distinct().
			Pluck("entry_owner_id", &owners).Error; err != nil {
			return err
		}

		res := tx.db.WithContext(ctx).
			Where("entry_id = ? AND entry_kind = ?", entryID, kind).
			Delete(&db.Reaction{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return owners, removed, nil
}

// translate maps driver-level write races and lock contention onto
// reaction.ErrConflict.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return reaction.ErrConflict
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWaitTimeout) {
		return reaction.ErrConflict
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		// low byte is the primary code, e.g. SQLITE_BUSY_SNAPSHOT is BUSY
		switch liteErr.Code & 0xff {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return reaction.ErrConflict
		}
	}
	return err
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
