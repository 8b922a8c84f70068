package reaction

import "time"

// Action describes what a toggle or remove call did to the stored reaction.
type Action string

const (
	ActionAdded    Action = "added"
	ActionRemoved  Action = "removed"
	ActionSwitched Action = "switched"
	ActionNone     Action = "none"
)

// Status is the viewer's own reaction on an entry. Empty means no reaction.
type Status string

const (
	StatusNone     Status = ""
	StatusLiked    Status = "liked"
	StatusDisliked Status = "disliked"
)

// StatusOf maps a stored like flag to a viewer status.
func StatusOf(isLike bool) Status {
	if isLike {
		return StatusLiked
	}
	return StatusDisliked
}

// Result is returned by toggle and remove.
type Result struct {
	Action   Action
	EntryID  uint64
	Kind     Kind
	Likes    int64
	Dislikes int64
}

// Summary is the read-side view of an entry's reactions.
type Summary struct {
	EntryID      uint64
	Kind         Kind
	Likes        int64
	Dislikes     int64
	ViewerStatus Status
}

// Counts is a like/dislike pair.
type Counts struct {
	Likes    int64
	Dislikes int64
}

// OwnerStats aggregates what an owner's entries have received.
type OwnerStats struct {
	OwnerID               string  `json:"owner_id"`
	TotalLikesReceived    int64   `json:"total_likes_received"`
	TotalDislikesReceived int64   `json:"total_dislikes_received"`
	LikeRatio             float64 `json:"like_ratio"`
}

// NewOwnerStats fills in the ratio; it is 0 when nothing was received.
func NewOwnerStats(ownerID string, likes, dislikes int64) OwnerStats {
	s := OwnerStats{
		OwnerID:               ownerID,
		TotalLikesReceived:    likes,
		TotalDislikesReceived: dislikes,
	}
	if total := likes + dislikes; total > 0 {
		s.LikeRatio = float64(likes) / float64(total) * 100
	}
	return s
}

// KindStats is OwnerStats broken down by entry kind.
type KindStats struct {
	Kind     Kind
	Likes    int64
	Dislikes int64
}

// TrendingEntry is one row of the most-liked ranking. The entry details are
// empty when the entry row could not be loaded.
type TrendingEntry struct {
	EntryID   uint64
	Kind      Kind
	LikeCount int64

	OwnerID    string
	MovieID    int64
	Title      string
	PosterPath string
}

// SimilarUser is another user who liked the same entries.
type SimilarUser struct {
	UserID      string
	CommonLikes int64
}

// Activity is one reaction received on an owner's content.
type Activity struct {
	UserID    string
	EntryID   uint64
	Kind      Kind
	Status    Status
	CreatedAt time.Time
}

// ActivityPage is a cursor-paginated slice of Activity.
type ActivityPage struct {
	Items      []Activity
	NextCursor *string
}
