package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oggyb/movie-social/internal/app"
	"github.com/oggyb/movie-social/internal/cache"
	"github.com/oggyb/movie-social/internal/config"
	"github.com/oggyb/movie-social/internal/db"
	"github.com/oggyb/movie-social/internal/httpapi"
	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/server"
	"github.com/oggyb/movie-social/internal/service/reaction"
	"github.com/oggyb/movie-social/internal/service/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return 1
	}

	// Init Redis. Without it stats are computed on every read and the
	// token blacklist is off.
	redisCache := cache.NewRedisCache(cfg)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	err = redisCache.Ping(pingCtx)
	cancelPing()
	if err != nil {
		log.Warn("redis unavailable, running without stats cache and token blacklist", "addr", cfg.Redis.Addr, "err", err)
		redisCache = nil
	}

	appCtx, err := app.New(cfg, database, redisCache, log)
	if err != nil {
		log.Error("failed to build app context", "err", err)
		return 1
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	grpcServer := server.NewGRPCServer(log, appCtx.Blacklist,
		reaction.NewRegistrar(appCtx),
		session.NewRegistrar(appCtx),
	)
	httpServer := server.NewHTTPServer(cfg, httpapi.NewRouter(appCtx))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		log.Info("starting gRPC server", "addr", cfg.GRPC.Host+":"+cfg.GRPC.Port)
		errCh <- server.StartGRPCServer(cfg, grpcServer)
	}()
	go func() {
		log.Info("starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	code := 0
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server stopped unexpectedly", "err", err)
		code = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("shutdown complete")
	return code
}
