package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/oggyb/movie-social/internal/config"
)

// NewHTTPServer wraps handler in an http.Server bound to the configured
// address. The caller owns ListenAndServe and Shutdown.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
