package session

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/movie-social/internal/app"
	"github.com/oggyb/movie-social/internal/cache"
	svcErr "github.com/oggyb/movie-social/internal/errors"
	pb "github.com/oggyb/movie-social/internal/proto/session"
)

// Service lets the auth service record logouts in the token blacklist.
type Service struct {
	appCtx    *app.AppContext
	blacklist *cache.TokenBlacklist

	pb.UnimplementedSessionServiceServer
}

func NewSessionService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, blacklist: appCtx.Blacklist}
}

// RevokeToken blacklists a bearer token until its expiry.
// A token that already expired is accepted and not stored.
func (s *Service) RevokeToken(ctx context.Context, req *pb.RevokeTokenRequest) (*pb.TokenStatus, error) {
	if s.blacklist == nil {
		return nil, status.Error(codes.Unavailable, "token blacklist is not configured")
	}
	if req.GetToken() == "" {
		return nil, svcErr.InvalidArgument("token is required")
	}
	if req.GetExpiresAtUnix() <= 0 {
		return nil, svcErr.InvalidArgument("expires_at_unix is required")
	}

	expiresAt := time.Unix(req.GetExpiresAtUnix(), 0)
	if err := s.blacklist.Revoke(ctx, req.GetToken(), expiresAt); err != nil {
		s.appCtx.Logger.Error("RevokeToken failed", "err", err)
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Info("token revoked", "expires_at", expiresAt)
	return &pb.TokenStatus{Revoked: true}, nil
}

func (s *Service) IsTokenRevoked(ctx context.Context, req *pb.IsTokenRevokedRequest) (*pb.TokenStatus, error) {
	if s.blacklist == nil {
		return &pb.TokenStatus{}, nil
	}
	if req.GetToken() == "" {
		return nil, svcErr.InvalidArgument("token is required")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, req.GetToken())
	if err != nil {
		s.appCtx.Logger.Error("IsTokenRevoked failed", "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.TokenStatus{Revoked: revoked}, nil
}
