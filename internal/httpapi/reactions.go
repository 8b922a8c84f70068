package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/oggyb/movie-social/internal/engine"
	"github.com/oggyb/movie-social/internal/reaction"
	"github.com/oggyb/movie-social/internal/validation"
)

// MaxBatchIDs bounds the ids accepted by the batch endpoint.
const MaxBatchIDs = 500

// listPageSize caps the entries returned by the shared list view.
const listPageSize = 100

type resultResponse struct {
	Action          reaction.Action `json:"action"`
	EntryID         uint64          `json:"entryId"`
	EntryType       reaction.Kind   `json:"entryType"`
	Likes           int64           `json:"likes"`
	Dislikes        int64           `json:"dislikes"`
	RequestedAction string          `json:"requestedAction,omitempty"`
}

type summaryResponse struct {
	EntryID    uint64          `json:"entryId"`
	EntryType  reaction.Kind   `json:"entryType"`
	Likes      int64           `json:"likes"`
	Dislikes   int64           `json:"dislikes"`
	UserStatus reaction.Status `json:"userStatus,omitempty"`
}

type batchRequest struct {
	IDs      []uint64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
	ViewerID string   `json:"viewerId" validate:"max=255"`
}

type batchResponse struct {
	EntryType reaction.Kind     `json:"entryType"`
	Summaries []summaryResponse `json:"summaries"`
}

// writeParams are the path and query values shared by the write endpoints.
type writeParams struct {
	EntryType string `json:"entryType" validate:"required,entrykind"`
	EntryID   string `json:"entryId" validate:"required"`
	UserID    string `json:"userId" validate:"required,max=255"`
}

func newResultResponse(res reaction.Result) resultResponse {
	return resultResponse{
		Action:    res.Action,
		EntryID:   res.EntryID,
		EntryType: res.Kind,
		Likes:     res.Likes,
		Dislikes:  res.Dislikes,
	}
}

func newSummaryResponse(s reaction.Summary) summaryResponse {
	return summaryResponse{
		EntryID:    s.EntryID,
		EntryType:  s.Kind,
		Likes:      s.Likes,
		Dislikes:   s.Dislikes,
		UserStatus: s.ViewerStatus,
	}
}

// entryRef resolves {entryType} and {entryId} plus ?userId= for a write.
func (h *Handler) entryRef(w http.ResponseWriter, r *http.Request) (uint64, reaction.Kind, string, bool) {
	log := h.log(r)
	p := writeParams{
		EntryType: chi.URLParam(r, "entryType"),
		EntryID:   chi.URLParam(r, "entryId"),
		UserID:    r.URL.Query().Get("userId"),
	}
	if err := validation.Struct(&p); err != nil {
		handleError(w, log, err)
		return 0, "", "", false
	}

	entryID, err := parseEntryID(p.EntryID)
	if err != nil {
		badRequest(w, log, err.Error())
		return 0, "", "", false
	}
	kind, err := reaction.ParseKind(p.EntryType)
	if err != nil {
		handleError(w, log, err)
		return 0, "", "", false
	}
	return entryID, kind, p.UserID, true
}

// HandleLike toggles a like.
// POST /api/{entryType}/{entryId}/like?userId=
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, true)
}

// HandleDislike toggles a dislike.
// POST /api/{entryType}/{entryId}/dislike?userId=
func (h *Handler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, false)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, wantsLike bool) {
	entryID, kind, userID, ok := h.entryRef(w, r)
	if !ok {
		return
	}

	res, err := h.engine.Toggle(r.Context(), entryID, kind, userID, wantsLike)
	if err != nil {
		handleError(w, h.log(r), err)
		return
	}
	writeJSON(w, h.log(r), http.StatusOK, newResultResponse(res))
}

// HandleRemove deletes the caller's reaction, if any.
// DELETE /api/{entryType}/{entryId}/like?userId=
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	entryID, kind, userID, ok := h.entryRef(w, r)
	if !ok {
		return
	}

	res, err := h.engine.Remove(r.Context(), entryID, kind, userID)
	if err != nil {
		handleError(w, h.log(r), err)
		return
	}
	writeJSON(w, h.log(r), http.StatusOK, newResultResponse(res))
}

// HandleReact dispatches ?action=like|dislike|remove.
// POST /api/{entryType}/{entryId}/react?action=&userId=
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	entryID, kind, userID, ok := h.entryRef(w, r)
	if !ok {
		return
	}

	action := r.URL.Query().Get("action")
	var call func() (reaction.Result, error)
	switch strings.ToLower(action) {
	case "like":
		call = func() (reaction.Result, error) { return h.engine.Toggle(r.Context(), entryID, kind, userID, true) }
	case "dislike":
		call = func() (reaction.Result, error) { return h.engine.Toggle(r.Context(), entryID, kind, userID, false) }
	case "remove":
		call = func() (reaction.Result, error) { return h.engine.Remove(r.Context(), entryID, kind, userID) }
	default:
		badRequest(w, h.log(r), "Invalid action. Use 'like', 'dislike', or 'remove'")
		return
	}

	res, err := call()
	if err != nil {
		handleError(w, h.log(r), err)
		return
	}
	out := newResultResponse(res)
	out.RequestedAction = action
	writeJSON(w, h.log(r), http.StatusOK, out)
}

// HandleSummary returns counts and the optional viewer's status.
// GET /api/{entryType}/{entryId}/likes[?userId=]
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	entryID, err := parseEntryID(chi.URLParam(r, "entryId"))
	if err != nil {
		badRequest(w, log, err.Error())
		return
	}
	kind, err := reaction.ParseKind(chi.URLParam(r, "entryType"))
	if err != nil {
		handleError(w, log, err)
		return
	}

	s, err := h.engine.Summary(r.Context(), entryID, kind, r.URL.Query().Get("userId"))
	if err != nil {
		handleError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, newSummaryResponse(s))
}

// HandleBatchSummary returns one summary per distinct id, in request order.
// POST /api/{entryType}/likes/batch  body: {"ids": [...], "viewerId": "..."}
func (h *Handler) HandleBatchSummary(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	kind, err := reaction.ParseKind(chi.URLParam(r, "entryType"))
	if err != nil {
		handleError(w, log, err)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		badRequest(w, log, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		handleError(w, log, err)
		return
	}

	summaries, err := h.engine.BatchSummary(r.Context(), req.IDs, kind, req.ViewerID)
	if err != nil {
		handleError(w, log, err)
		return
	}

	out := batchResponse{EntryType: kind, Summaries: make([]summaryResponse, 0, len(summaries))}
	seen := make(map[uint64]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out.Summaries = append(out.Summaries, newSummaryResponse(summaries[id]))
	}
	writeJSON(w, log, http.StatusOK, out)
}

// HandleUserList renders an owner's list annotated with reactions as seen by
// ?viewerId=.
// GET /api/users/{userId}/{entryType}
func (h *Handler) HandleUserList(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	kind, err := reaction.ParseKind(chi.URLParam(r, "entryType"))
	if err != nil {
		handleError(w, log, err)
		return
	}
	repo, ok := h.lists[kind]
	if !ok {
		handleError(w, log, reaction.ErrEntryNotFound)
		return
	}

	rows, err := repo.ListByOwner(r.Context(), chi.URLParam(r, "userId"), listPageSize)
	if err != nil {
		handleError(w, log, err)
		return
	}

	views := engine.NewEntryViews(kind, rows)
	engine.Enrich(r.Context(), h.engine, kind, r.URL.Query().Get("viewerId"), views)
	writeJSON(w, log, http.StatusOK, views)
}
