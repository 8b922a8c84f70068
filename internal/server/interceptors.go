package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/movie-social/internal/cache"
	"github.com/oggyb/movie-social/internal/logger"
)

// RevocationChecker reports whether a bearer token was revoked.
// *cache.TokenBlacklist implements it.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// LoggingInterceptor logs every unary call with its code and duration and
// puts a method-scoped logger into the request context.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = logger.L()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		reqLog := log.With("method", info.FullMethod)

		resp, err := handler(logger.IntoContext(ctx, reqLog), req)

		code := status.Code(err)
		attrs := []any{"code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.OK:
			reqLog.Debug("grpc call", attrs...)
		case codes.Internal, codes.Unknown, codes.Unavailable, codes.DataLoss:
			reqLog.Error("grpc call failed", append(attrs, "err", err)...)
		default:
			reqLog.Info("grpc call rejected", append(attrs, "err", err)...)
		}
		return resp, err
	}
}

// BlacklistInterceptor rejects calls whose bearer token has been revoked.
// Calls without a bearer token pass through; token validation belongs to the
// auth service.
func BlacklistInterceptor(revoked RevocationChecker, log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = logger.L()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if revoked == nil {
			return handler(ctx, req)
		}

		token, ok := tokenFromMetadata(ctx)
		if !ok {
			return handler(ctx, req)
		}

		isRevoked, err := revoked.IsRevoked(ctx, token)
		if err != nil {
			log.Warn("token blacklist lookup failed", "method", info.FullMethod, "err", err)
			return nil, status.Error(codes.Unavailable, "token blacklist unavailable")
		}
		if isRevoked {
			return nil, status.Error(codes.Unauthenticated, "token has been revoked")
		}
		return handler(ctx, req)
	}
}

func tokenFromMetadata(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get("authorization") {
		if token, ok := cache.BearerToken(v); ok {
			return token, true
		}
	}
	return "", false
}
