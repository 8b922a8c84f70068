package server

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/oggyb/movie-social/internal/config"
)

// NewGRPCServer builds a gRPC server with the logging and token blacklist
// interceptors and registers all provided services.
// revoked may be nil to disable the blacklist check.
func NewGRPCServer(log *slog.Logger, revoked RevocationChecker, registrars ...Registrar) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(log),
			BlacklistInterceptor(revoked, log),
		),
	)

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	// enable reflection for easier debugging with grpcurl
	reflection.Register(grpcServer)

	return grpcServer
}

// StartGRPCServer listens on the configured address and serves until the
// server is stopped.
func StartGRPCServer(cfg *config.Config, grpcServer *grpc.Server) error {
	addr := fmt.Sprintf("%s:%s", cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return grpcServer.Serve(lis)
}
