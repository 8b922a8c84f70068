// Package httpapi exposes the reaction engine over REST.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oggyb/movie-social/internal/app"
	"github.com/oggyb/movie-social/internal/engine"
	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/repository"
	"github.com/oggyb/movie-social/internal/server"
)

// Handler serves the reaction, list and stats endpoints.
type Handler struct {
	engine *engine.Engine
	lists  repository.ListSet
}

// NewHandler creates a handler backed by the app's engine and list repos.
func NewHandler(appCtx *app.AppContext) *Handler {
	return &Handler{
		engine: appCtx.Engine,
		lists:  appCtx.Lists,
	}
}

// log returns the request-scoped logger installed by RequestLogger.
func (h *Handler) log(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}

// NewRouter mounts every endpoint plus /healthz and /metrics.
func NewRouter(appCtx *app.AppContext) http.Handler {
	h := NewHandler(appCtx)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(RequestLogger(appCtx.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCtx.Config.HTTP.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	var revoked server.RevocationChecker
	if appCtx.Blacklist != nil {
		revoked = appCtx.Blacklist
	}

	r.Route("/api", func(api chi.Router) {
		if n := appCtx.Config.HTTP.RateLimit; n > 0 {
			api.Use(httprate.LimitByRealIP(n, time.Minute))
		}
		api.Use(RejectRevoked(revoked))

		api.Route("/stats", func(s chi.Router) {
			s.Get("/trending", h.HandleTrending)
			s.Get("/likes/{entryId}/users", h.HandleLikers)
			s.Get("/user/{userId}", h.HandleOwnerStats)
			s.Get("/user/{userId}/by-kind", h.HandleOwnerStatsByKind)
			s.Get("/user/{userId}/activity", h.HandleOwnerActivity)
			s.Get("/user/{userId}/similar", h.HandleSimilarUsers)
		})

		api.Get("/users/{userId}/{entryType}", h.HandleUserList)

		api.Post("/{entryType}/likes/batch", h.HandleBatchSummary)
		api.Post("/{entryType}/{entryId}/like", h.HandleLike)
		api.Post("/{entryType}/{entryId}/dislike", h.HandleDislike)
		api.Delete("/{entryType}/{entryId}/like", h.HandleRemove)
		api.Post("/{entryType}/{entryId}/react", h.HandleReact)
		api.Get("/{entryType}/{entryId}/likes", h.HandleSummary)
	})

	return r
}
