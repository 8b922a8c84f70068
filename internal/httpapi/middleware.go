package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/oggyb/movie-social/internal/cache"
	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/server"
)

// RequestLogger logs one line per request and stores a request-scoped logger
// in the context.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With(
				"request_id", chiMiddleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.IntoContext(r.Context(), reqLog)))

			attrs := []any{"status", ww.Status(), "bytes", ww.BytesWritten(), "duration", time.Since(start)}
			if ww.Status() >= http.StatusInternalServerError {
				reqLog.Error("http request failed", attrs...)
				return
			}
			reqLog.Debug("http request", attrs...)
		})
	}
}

// RejectRevoked answers 401 when the request's bearer token is blacklisted and
// 503 when the blacklist cannot be consulted. Requests without a bearer token
// pass through. A nil checker disables the check.
func RejectRevoked(revoked server.RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if revoked == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := cache.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(r.Context())
			isRevoked, err := revoked.IsRevoked(r.Context(), token)
			if err != nil {
				log.Warn("token blacklist lookup failed", "err", err)
				writeError(w, log, http.StatusServiceUnavailable, "Unavailable", "Token blacklist unavailable")
				return
			}
			if isRevoked {
				writeError(w, log, http.StatusUnauthorized, "TokenRevoked", "Token has been revoked")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
