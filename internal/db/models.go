package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/movie-social/internal/reaction"
)

// User table
type User struct {
	ID           string    `gorm:"primaryKey;size:255"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// ListEntry is the column set shared by the four list tables.
// Only ID and UserID matter to reactions; the rest feeds the list views.
type ListEntry struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     string    `gorm:"size:255;not null;index"`
	MovieID    int64     `gorm:"not null"`
	Title      string    `gorm:"size:500;not null"`
	PosterPath string    `gorm:"size:500"`
	Comment    string    `gorm:"size:2000"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type Favorite struct {
	ListEntry
}

type Watched struct {
	ListEntry
}

func (Watched) TableName() string { return "watched" }

type Top10 struct {
	ListEntry
	Rank int `gorm:"not null;default:0"`
}

func (Top10) TableName() string { return "top10" }

type WatchLater struct {
	ListEntry
}

func (WatchLater) TableName() string { return "watch_later" }

// ListTable returns the table holding entries of the given kind.
func ListTable(kind reaction.Kind) (string, bool) {
	switch kind {
	case reaction.KindFavorite:
		return "favorites", true
	case reaction.KindWatched:
		return "watched", true
	case reaction.KindTop10:
		return "top10", true
	case reaction.KindWatchLater:
		return "watch_later", true
	}
	return "", false
}

// Reaction is one user's like/dislike on another user's list entry.
//
// Unique index: uq_reactions_user_entry(user_id, entry_id, entry_kind)
//   - At most one row per (reacting user, entry). Concurrent inserts for the
//     same key fail with a duplicate-key error instead of creating twins.
//
// Indexes:
//   - idx_reactions_entry(entry_id, entry_kind, is_like)
//     Serves single and batched count queries.
//   - idx_reactions_owner(entry_owner_id, is_like)
//     Serves owner-side aggregation.
//
// Fields:
//   - EntryOwnerID: denormalized owner of the entry, captured at insert.
//   - IsLike: true for like, false for dislike. No row means no reaction.
//   - CreatedAt: set once on insert.
type Reaction struct {
	ID           string        `gorm:"primaryKey;size:36"`
	UserID       string        `gorm:"size:255;not null;uniqueIndex:uq_reactions_user_entry,priority:1"`
	EntryID      uint64        `gorm:"not null;uniqueIndex:uq_reactions_user_entry,priority:2;index:idx_reactions_entry,priority:1"`
	EntryKind    reaction.Kind `gorm:"size:50;not null;uniqueIndex:uq_reactions_user_entry,priority:3;index:idx_reactions_entry,priority:2"`
	EntryOwnerID string        `gorm:"size:255;not null;index:idx_reactions_owner,priority:1"`
	IsLike       bool          `gorm:"not null;index:idx_reactions_entry,priority:3;index:idx_reactions_owner,priority:2"`
	CreatedAt    time.Time     `gorm:"autoCreateTime;<-:create"`
}

// BeforeCreate assigns the opaque id.
func (r *Reaction) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AllModels is the migration set.
func AllModels() []any {
	return []any{&User{}, &Favorite{}, &Watched{}, &Top10{}, &WatchLater{}, &Reaction{}}
}
