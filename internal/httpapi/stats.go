package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oggyb/movie-social/internal/reaction"
)

type ownerStatsResponse struct {
	OwnerID               string  `json:"ownerId"`
	TotalLikesReceived    int64   `json:"totalLikesReceived"`
	TotalDislikesReceived int64   `json:"totalDislikesReceived"`
	LikeRatio             float64 `json:"likeRatio"`
}

type kindStatsResponse struct {
	EntryType reaction.Kind `json:"entryType"`
	Likes     int64         `json:"likes"`
	Dislikes  int64         `json:"dislikes"`
}

type trendingResponse struct {
	EntryID    uint64        `json:"entryId"`
	EntryType  reaction.Kind `json:"entryType"`
	LikeCount  int64         `json:"likeCount"`
	OwnerID    string        `json:"ownerId,omitempty"`
	MovieID    int64         `json:"movieId,omitempty"`
	MovieTitle string        `json:"movieTitle,omitempty"`
	PosterPath string        `json:"posterPath,omitempty"`
}

type similarUserResponse struct {
	UserID      string `json:"userId"`
	CommonLikes int64  `json:"commonLikes"`
}

type activityResponse struct {
	UserID    string          `json:"userId"`
	EntryID   uint64          `json:"entryId"`
	EntryType reaction.Kind   `json:"entryType"`
	Status    reaction.Status `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

type activityPageResponse struct {
	Items      []activityResponse `json:"items"`
	NextCursor *string            `json:"nextCursor,omitempty"`
}

type likersResponse struct {
	EntryID   uint64        `json:"entryId"`
	EntryType reaction.Kind `json:"entryType"`
	UserIDs   []string      `json:"userIds"`
}

// HandleOwnerStats returns totals received by an owner.
// GET /api/stats/user/{userId}
func (h *Handler) HandleOwnerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.engine.OwnerStats(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		handleError(w, h.log(r), err)
		return
	}
	writeJSON(w, h.log(r), http.StatusOK, ownerStatsResponse{
		OwnerID:               stats.OwnerID,
		TotalLikesReceived:    stats.TotalLikesReceived,
		TotalDislikesReceived: stats.TotalDislikesReceived,
		LikeRatio:             stats.LikeRatio,
	})
}

// HandleOwnerStatsByKind returns totals received per entry type.
// GET /api/stats/user/{userId}/by-kind
func (h *Handler) HandleOwnerStatsByKind(w http.ResponseWriter, r *http.Request) {
	rows, err := h.engine.OwnerStatsByKind(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		handleError(w, h.log(r), err)
		return
	}

	out := make([]kindStatsResponse, 0, len(rows))
	for _, k := range rows {
		out = append(out, kindStatsResponse{EntryType: k.Kind, Likes: k.Likes, Dislikes: k.Dislikes})
	}
	writeJSON(w, h.log(r), http.StatusOK, out)
}

// HandleTrending ranks entries of ?type= by likes.
// GET /api/stats/trending?type=&limit=
func (h *Handler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	kind, err := reaction.ParseKind(r.URL.Query().Get("type"))
	if err != nil {
		handleError(w, log, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		badRequest(w, log, err.Error())
		return
	}

	entries, err := h.engine.Trending(r.Context(), kind, limit)
	if err != nil {
		handleError(w, log, err)
		return
	}

	out := make([]trendingResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, trendingResponse{
			EntryID:    e.EntryID,
			EntryType:  e.Kind,
			LikeCount:  e.LikeCount,
			OwnerID:    e.OwnerID,
			MovieID:    e.MovieID,
			MovieTitle: e.Title,
			PosterPath: e.PosterPath,
		})
	}
	writeJSON(w, log, http.StatusOK, out)
}

// HandleLikers lists users who liked an entry.
// GET /api/stats/likes/{entryId}/users?type=
func (h *Handler) HandleLikers(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	entryID, err := parseEntryID(chi.URLParam(r, "entryId"))
	if err != nil {
		badRequest(w, log, err.Error())
		return
	}
	kind, err := reaction.ParseKind(r.URL.Query().Get("type"))
	if err != nil {
		handleError(w, log, err)
		return
	}

	users, err := h.engine.UsersWhoLiked(r.Context(), entryID, kind)
	if err != nil {
		handleError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, likersResponse{EntryID: entryID, EntryType: kind, UserIDs: users})
}

// HandleSimilarUsers ranks users by common likes with {userId}.
// GET /api/stats/user/{userId}/similar?limit=
func (h *Handler) HandleSimilarUsers(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	limit, err := parseLimit(r)
	if err != nil {
		badRequest(w, log, err.Error())
		return
	}

	users, err := h.engine.SimilarUsers(r.Context(), chi.URLParam(r, "userId"), limit)
	if err != nil {
		handleError(w, log, err)
		return
	}

	out := make([]similarUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, similarUserResponse{UserID: u.UserID, CommonLikes: u.CommonLikes})
	}
	writeJSON(w, log, http.StatusOK, out)
}

// HandleOwnerActivity pages through reactions received by {userId}, newest
// first.
// GET /api/stats/user/{userId}/activity?limit=&cursor=
func (h *Handler) HandleOwnerActivity(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	limit, err := parseLimit(r)
	if err != nil {
		badRequest(w, log, err.Error())
		return
	}

	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	page, err := h.engine.OwnerActivity(r.Context(), chi.URLParam(r, "userId"), cursor, limit)
	if err != nil {
		handleError(w, log, err)
		return
	}

	out := activityPageResponse{Items: make([]activityResponse, 0, len(page.Items)), NextCursor: page.NextCursor}
	for _, a := range page.Items {
		out.Items = append(out.Items, activityResponse{
			UserID:    a.UserID,
			EntryID:   a.EntryID,
			EntryType: a.Kind,
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
		})
	}
	writeJSON(w, log, http.StatusOK, out)
}
