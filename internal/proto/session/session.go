// Package session holds the messages, service descriptor and client of
// movie.session.v1.SessionService.
package session

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/movie-social/internal/proto/rpc"
)

const ServiceName = "movie.session.v1.SessionService"

const (
	SessionService_RevokeToken_FullMethodName    = "/" + ServiceName + "/RevokeToken"
	SessionService_IsTokenRevoked_FullMethodName = "/" + ServiceName + "/IsTokenRevoked"
)

// RevokeTokenRequest blacklists Token until ExpiresAtUnix (seconds).
type RevokeTokenRequest struct {
	Token         string `json:"token"`
	ExpiresAtUnix int64  `json:"expires_at_unix"`
}

func (x *RevokeTokenRequest) GetToken() string {
	if x != nil {
		return x.Token
	}
	return ""
}

func (x *RevokeTokenRequest) GetExpiresAtUnix() int64 {
	if x != nil {
		return x.ExpiresAtUnix
	}
	return 0
}

type IsTokenRevokedRequest struct {
	Token string `json:"token"`
}

func (x *IsTokenRevokedRequest) GetToken() string {
	if x != nil {
		return x.Token
	}
	return ""
}

type TokenStatus struct {
	Revoked bool `json:"revoked"`
}

type SessionServiceServer interface {
	RevokeToken(context.Context, *RevokeTokenRequest) (*TokenStatus, error)
	IsTokenRevoked(context.Context, *IsTokenRevokedRequest) (*TokenStatus, error)
}

type UnimplementedSessionServiceServer struct{}

func (UnimplementedSessionServiceServer) RevokeToken(context.Context, *RevokeTokenRequest) (*TokenStatus, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokeToken not implemented")
}
func (UnimplementedSessionServiceServer) IsTokenRevoked(context.Context, *IsTokenRevokedRequest) (*TokenStatus, error) {
	return nil, status.Error(codes.Unimplemented, "method IsTokenRevoked not implemented")
}

var SessionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RevokeToken", Handler: rpc.Unary(SessionService_RevokeToken_FullMethodName, SessionServiceServer.RevokeToken)},
		{MethodName: "IsTokenRevoked", Handler: rpc.Unary(SessionService_IsTokenRevoked_FullMethodName, SessionServiceServer.IsTokenRevoked)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionService_ServiceDesc, srv)
}

type SessionServiceClient interface {
	RevokeToken(ctx context.Context, in *RevokeTokenRequest, opts ...grpc.CallOption) (*TokenStatus, error)
	IsTokenRevoked(ctx context.Context, in *IsTokenRevokedRequest, opts ...grpc.CallOption) (*TokenStatus, error)
}

type sessionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionServiceClient(cc grpc.ClientConnInterface) SessionServiceClient {
	return &sessionServiceClient{cc: cc}
}

func (c *sessionServiceClient) RevokeToken(ctx context.Context, in *RevokeTokenRequest, opts ...grpc.CallOption) (*TokenStatus, error) {
	return rpc.Invoke[TokenStatus](ctx, c.cc, SessionService_RevokeToken_FullMethodName, in, opts...)
}

func (c *sessionServiceClient) IsTokenRevoked(ctx context.Context, in *IsTokenRevokedRequest, opts ...grpc.CallOption) (*TokenStatus, error) {
	return rpc.Invoke[TokenStatus](ctx, c.cc, SessionService_IsTokenRevoked_FullMethodName, in, opts...)
}
