package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/oggyb/movie-social/internal/reaction"
	"github.com/oggyb/movie-social/internal/validation"
)

// ErrorBody is the JSON error envelope of every non-2xx response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, errorType, message string) {
	writeJSON(w, log, status, ErrorBody{Error: errorType, Message: message})
}

// handleError converts engine and validation errors to HTTP responses.
// Unexpected errors are logged and reported without their cause.
func handleError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeError(w, log, http.StatusBadRequest, "InvalidRequest", verr.Error())
	case errors.Is(err, reaction.ErrInvalidEntryKind):
		writeError(w, log, http.StatusBadRequest, "InvalidEntryType", err.Error())
	case errors.Is(err, reaction.ErrInvalidCursor):
		writeError(w, log, http.StatusBadRequest, "InvalidCursor", "Invalid pagination cursor")
	case errors.Is(err, reaction.ErrEntryNotFound):
		writeError(w, log, http.StatusNotFound, "EntryNotFound", "Entry not found")
	case errors.Is(err, reaction.ErrSelfReaction):
		writeError(w, log, http.StatusForbidden, "SelfReaction", "You cannot react to your own entry")
	case errors.Is(err, reaction.ErrConflict):
		writeError(w, log, http.StatusConflict, "Conflict", "Concurrent update, please retry")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, log, http.StatusGatewayTimeout, "Timeout", "Request timed out")
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads this
		writeError(w, log, 499, "Canceled", "Request canceled")
	default:
		log.Error("request failed", "err", err)
		writeError(w, log, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}

func badRequest(w http.ResponseWriter, log *slog.Logger, message string) {
	writeError(w, log, http.StatusBadRequest, "InvalidRequest", message)
}

// parseLimit reads an optional positive integer query parameter. Zero means
// "use the default".
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}

func parseEntryID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("entryId must be a positive integer")
	}
	return id, nil
}
