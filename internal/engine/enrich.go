package engine

import (
	"context"
	"time"

	"github.com/oggyb/movie-social/internal/db"
	"github.com/oggyb/movie-social/internal/reaction"
)

// Annotatable is a list item that can carry reaction counts.
type Annotatable interface {
	ReactionEntryID() uint64
	Annotate(s reaction.Summary)
}

// Enrich annotates items with counts and the viewer's reaction using a single
// batch summary. When the store fails every item is annotated with zero
// counts so that list rendering never fails because of reactions.
func Enrich[T Annotatable](ctx context.Context, e *Engine, kind reaction.Kind, viewerID string, items []T) {
	if len(items) == 0 {
		return
	}

	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ReactionEntryID())
	}

	summaries, err := e.BatchSummary(ctx, ids, kind, viewerID)
	if err != nil {
		e.logger.Warn("enrichment degraded to zero counts", "kind", kind, "items", len(items), "err", err)
		summaries = nil
	}

	for _, it := range items {
		id := it.ReactionEntryID()
		s, ok := summaries[id]
		if !ok {
			s = reaction.Summary{EntryID: id, Kind: kind}
		}
		it.Annotate(s)
	}
}

// EntryView is the shared, read-only rendering of one list entry.
type EntryView struct {
	ID           uint64          `json:"id"`
	OwnerID      string          `json:"ownerId"`
	Kind         reaction.Kind   `json:"entryType"`
	MovieID      int64           `json:"movieId"`
	Title        string          `json:"title"`
	PosterPath   string          `json:"posterPath,omitempty"`
	Comment      string          `json:"comment,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	Likes        int64           `json:"likes"`
	Dislikes     int64           `json:"dislikes"`
	ViewerStatus reaction.Status `json:"viewerStatus,omitempty"`
}

// NewEntryViews maps list rows of one kind to views.
func NewEntryViews(kind reaction.Kind, rows []db.ListEntry) []*EntryView {
	out := make([]*EntryView, 0, len(rows))
	for _, r := range rows {
		out = append(out, &EntryView{
			ID:         r.ID,
			OwnerID:    r.UserID,
			Kind:       kind,
			MovieID:    r.MovieID,
			Title:      r.Title,
			PosterPath: r.PosterPath,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}

func (v *EntryView) ReactionEntryID() uint64 { return v.ID }

func (v *EntryView) Annotate(s reaction.Summary) {
	v.Likes, v.Dislikes, v.ViewerStatus = s.Likes, s.Dislikes, s.ViewerStatus
}
