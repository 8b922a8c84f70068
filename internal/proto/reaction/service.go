package reaction

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/movie-social/internal/proto/rpc"
)

const ServiceName = "movie.reaction.v1.ReactionService"

const (
	ReactionService_ToggleReaction_FullMethodName          = "/" + ServiceName + "/ToggleReaction"
	ReactionService_RemoveReaction_FullMethodName          = "/" + ServiceName + "/RemoveReaction"
	ReactionService_React_FullMethodName                   = "/" + ServiceName + "/React"
	ReactionService_GetReactionSummary_FullMethodName      = "/" + ServiceName + "/GetReactionSummary"
	ReactionService_GetBatchReactionSummary_FullMethodName = "/" + ServiceName + "/GetBatchReactionSummary"
	ReactionService_RemoveEntryReactions_FullMethodName    = "/" + ServiceName + "/RemoveEntryReactions"
	ReactionService_GetOwnerStats_FullMethodName           = "/" + ServiceName + "/GetOwnerStats"
	ReactionService_GetOwnerStatsByKind_FullMethodName     = "/" + ServiceName + "/GetOwnerStatsByKind"
	ReactionService_GetTrending_FullMethodName             = "/" + ServiceName + "/GetTrending"
	ReactionService_ListUsersWhoLiked_FullMethodName       = "/" + ServiceName + "/ListUsersWhoLiked"
	ReactionService_ListSimilarUsers_FullMethodName        = "/" + ServiceName + "/ListSimilarUsers"
	ReactionService_ListOwnerActivity_FullMethodName       = "/" + ServiceName + "/ListOwnerActivity"
)

// ReactionServiceServer is the server API for ReactionService.
type ReactionServiceServer interface {
	ToggleReaction(context.Context, *ToggleReactionRequest) (*ReactionResult, error)
	RemoveReaction(context.Context, *RemoveReactionRequest) (*ReactionResult, error)
	React(context.Context, *ReactRequest) (*ReactionResult, error)
	GetReactionSummary(context.Context, *GetReactionSummaryRequest) (*ReactionSummary, error)
	GetBatchReactionSummary(context.Context, *GetBatchReactionSummaryRequest) (*GetBatchReactionSummaryResponse, error)
	RemoveEntryReactions(context.Context, *RemoveEntryReactionsRequest) (*RemoveEntryReactionsResponse, error)
	GetOwnerStats(context.Context, *GetOwnerStatsRequest) (*OwnerStats, error)
	GetOwnerStatsByKind(context.Context, *GetOwnerStatsRequest) (*GetOwnerStatsByKindResponse, error)
	GetTrending(context.Context, *GetTrendingRequest) (*GetTrendingResponse, error)
	ListUsersWhoLiked(context.Context, *ListUsersWhoLikedRequest) (*ListUsersWhoLikedResponse, error)
	ListSimilarUsers(context.Context, *ListSimilarUsersRequest) (*ListSimilarUsersResponse, error)
	ListOwnerActivity(context.Context, *ListOwnerActivityRequest) (*ListOwnerActivityResponse, error)
}

// UnimplementedReactionServiceServer can be embedded to have forward compatible implementations.
type UnimplementedReactionServiceServer struct{}

func (UnimplementedReactionServiceServer) ToggleReaction(context.Context, *ToggleReactionRequest) (*ReactionResult, error) {
	return nil, status.Error(codes.Unimplemented, "method ToggleReaction not implemented")
}
func (UnimplementedReactionServiceServer) RemoveReaction(context.Context, *RemoveReactionRequest) (*ReactionResult, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveReaction not implemented")
}
func (UnimplementedReactionServiceServer) React(context.Context, *ReactRequest) (*ReactionResult, error) {
	return nil, status.Error(codes.Unimplemented, "method React not implemented")
}
func (UnimplementedReactionServiceServer) GetReactionSummary(context.Context, *GetReactionSummaryRequest) (*ReactionSummary, error) {
	return nil, status.Error(codes.Unimplemented, "method GetReactionSummary not implemented")
}
func (UnimplementedReactionServiceServer) GetBatchReactionSummary(context.Context, *GetBatchReactionSummaryRequest) (*GetBatchReactionSummaryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBatchReactionSummary not implemented")
}
func (UnimplementedReactionServiceServer) RemoveEntryReactions(context.Context, *RemoveEntryReactionsRequest) (*RemoveEntryReactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveEntryReactions not implemented")
}
func (UnimplementedReactionServiceServer) GetOwnerStats(context.Context, *GetOwnerStatsRequest) (*OwnerStats, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOwnerStats not implemented")
}
func (UnimplementedReactionServiceServer) GetOwnerStatsByKind(context.Context, *GetOwnerStatsRequest) (*GetOwnerStatsByKindResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOwnerStatsByKind not implemented")
}
func (UnimplementedReactionServiceServer) GetTrending(context.Context, *GetTrendingRequest) (*GetTrendingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTrending not implemented")
}
func (UnimplementedReactionServiceServer) ListUsersWhoLiked(context.Context, *ListUsersWhoLikedRequest) (*ListUsersWhoLikedResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsersWhoLiked not implemented")
}
func (UnimplementedReactionServiceServer) ListSimilarUsers(context.Context, *ListSimilarUsersRequest) (*ListSimilarUsersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSimilarUsers not implemented")
}
func (UnimplementedReactionServiceServer) ListOwnerActivity(context.Context, *ListOwnerActivityRequest) (*ListOwnerActivityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOwnerActivity not implemented")
}

// ReactionService_ServiceDesc is the grpc.ServiceDesc for ReactionService.
var ReactionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReactionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ToggleReaction", Handler: rpc.Unary(ReactionService_ToggleReaction_FullMethodName, ReactionServiceServer.ToggleReaction)},
		{MethodName: "RemoveReaction", Handler: rpc.Unary(ReactionService_RemoveReaction_FullMethodName, ReactionServiceServer.RemoveReaction)},
		{MethodName: "React", Handler: rpc.Unary(ReactionService_React_FullMethodName, ReactionServiceServer.React)},
		{MethodName: "GetReactionSummary", Handler: rpc.Unary(ReactionService_GetReactionSummary_FullMethodName, ReactionServiceServer.GetReactionSummary)},
		{MethodName: "GetBatchReactionSummary", Handler: rpc.Unary(ReactionService_GetBatchReactionSummary_FullMethodName, ReactionServiceServer.GetBatchReactionSummary)},
		{MethodName: "RemoveEntryReactions", Handler: rpc.Unary(ReactionService_RemoveEntryReactions_FullMethodName, ReactionServiceServer.RemoveEntryReactions)},
		{MethodName: "GetOwnerStats", Handler: rpc.Unary(ReactionService_GetOwnerStats_FullMethodName, ReactionServiceServer.GetOwnerStats)},
		{MethodName: "GetOwnerStatsByKind", Handler: rpc.Unary(ReactionService_GetOwnerStatsByKind_FullMethodName, ReactionServiceServer.GetOwnerStatsByKind)},
		{MethodName: "GetTrending", Handler: rpc.Unary(ReactionService_GetTrending_FullMethodName, ReactionServiceServer.GetTrending)},
		{MethodName: "ListUsersWhoLiked", Handler: rpc.Unary(ReactionService_ListUsersWhoLiked_FullMethodName, ReactionServiceServer.ListUsersWhoLiked)},
		{MethodName: "ListSimilarUsers", Handler: rpc.Unary(ReactionService_ListSimilarUsers_FullMethodName, ReactionServiceServer.ListSimilarUsers)},
		{MethodName: "ListOwnerActivity", Handler: rpc.Unary(ReactionService_ListOwnerActivity_FullMethodName, ReactionServiceServer.ListOwnerActivity)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterReactionServiceServer(s grpc.ServiceRegistrar, srv ReactionServiceServer) {
	s.RegisterService(&ReactionService_ServiceDesc, srv)
}

// ReactionServiceClient is the client API for ReactionService.
type ReactionServiceClient interface {
	ToggleReaction(ctx context.Context, in *ToggleReactionRequest, opts ...grpc.CallOption) (*ReactionResult, error)
	RemoveReaction(ctx context.Context, in *RemoveReactionRequest, opts ...grpc.CallOption) (*ReactionResult, error)
	React(ctx context.Context, in *ReactRequest, opts ...grpc.CallOption) (*ReactionResult, error)
	GetReactionSummary(ctx context.Context, in *GetReactionSummaryRequest, opts ...grpc.CallOption) (*ReactionSummary, error)
	GetBatchReactionSummary(ctx context.Context, in *GetBatchReactionSummaryRequest, opts ...grpc.CallOption) (*GetBatchReactionSummaryResponse, error)
	RemoveEntryReactions(ctx context.Context, in *RemoveEntryReactionsRequest, opts ...grpc.CallOption) (*RemoveEntryReactionsResponse, error)
	GetOwnerStats(ctx context.Context, in *GetOwnerStatsRequest, opts ...grpc.CallOption) (*OwnerStats, error)
	GetOwnerStatsByKind(ctx context.Context, in *GetOwnerStatsRequest, opts ...grpc.CallOption) (*GetOwnerStatsByKindResponse, error)
	GetTrending(ctx context.Context, in *GetTrendingRequest, opts ...grpc.CallOption) (*GetTrendingResponse, error)
	ListUsersWhoLiked(ctx context.Context, in *ListUsersWhoLikedRequest, opts ...grpc.CallOption) (*ListUsersWhoLikedResponse, error)
	ListSimilarUsers(ctx context.Context, in *ListSimilarUsersRequest, opts ...grpc.CallOption) (*ListSimilarUsersResponse, error)
	ListOwnerActivity(ctx context.Context, in *ListOwnerActivityRequest, opts ...grpc.CallOption) (*ListOwnerActivityResponse, error)
}

type reactionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReactionServiceClient(cc grpc.ClientConnInterface) ReactionServiceClient {
	return &reactionServiceClient{cc: cc}
}

func (c *reactionServiceClient) ToggleReaction(ctx context.Context, in *ToggleReactionRequest, opts ...grpc.CallOption) (*ReactionResult, error) {
	return rpc.Invoke[ReactionResult](ctx, c.cc, ReactionService_ToggleReaction_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) RemoveReaction(ctx context.Context, in *RemoveReactionRequest, opts ...grpc.CallOption) (*ReactionResult, error) {
	return rpc.Invoke[ReactionResult](ctx, c.cc, ReactionService_RemoveReaction_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) React(ctx context.Context, in *ReactRequest, opts ...grpc.CallOption) (*ReactionResult, error) {
	return rpc.Invoke[ReactionResult](ctx, c.cc, ReactionService_React_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) GetReactionSummary(ctx context.Context, in *GetReactionSummaryRequest, opts ...grpc.CallOption) (*ReactionSummary, error) {
	return rpc.Invoke[ReactionSummary](ctx, c.cc, ReactionService_GetReactionSummary_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) GetBatchReactionSummary(ctx context.Context, in *GetBatchReactionSummaryRequest, opts ...grpc.CallOption) (*GetBatchReactionSummaryResponse, error) {
	return rpc.Invoke[GetBatchReactionSummaryResponse](ctx, c.cc, ReactionService_GetBatchReactionSummary_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) RemoveEntryReactions(ctx context.Context, in *RemoveEntryReactionsRequest, opts ...grpc.CallOption) (*RemoveEntryReactionsResponse, error) {
	return rpc.Invoke[RemoveEntryReactionsResponse](ctx, c.cc, ReactionService_RemoveEntryReactions_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) GetOwnerStats(ctx context.Context, in *GetOwnerStatsRequest, opts ...grpc.CallOption) (*OwnerStats, error) {
	return rpc.Invoke[OwnerStats](ctx, c.cc, ReactionService_GetOwnerStats_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) GetOwnerStatsByKind(ctx context.Context, in *GetOwnerStatsRequest, opts ...grpc.CallOption) (*GetOwnerStatsByKindResponse, error) {
	return rpc.Invoke[GetOwnerStatsByKindResponse](ctx, c.cc, ReactionService_GetOwnerStatsByKind_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) GetTrending(ctx context.Context, in *GetTrendingRequest, opts ...grpc.CallOption) (*GetTrendingResponse, error) {
	return rpc.Invoke[GetTrendingResponse](ctx, c.cc, ReactionService_GetTrending_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) ListUsersWhoLiked(ctx context.Context, in *ListUsersWhoLikedRequest, opts ...grpc.CallOption) (*ListUsersWhoLikedResponse, error) {
	return rpc.Invoke[ListUsersWhoLikedResponse](ctx, c.cc, ReactionService_ListUsersWhoLiked_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) ListSimilarUsers(ctx context.Context, in *ListSimilarUsersRequest, opts ...grpc.CallOption) (*ListSimilarUsersResponse, error) {
	return rpc.Invoke[ListSimilarUsersResponse](ctx, c.cc, ReactionService_ListSimilarUsers_FullMethodName, in, opts...)
}

func (c *reactionServiceClient) ListOwnerActivity(ctx context.Context, in *ListOwnerActivityRequest, opts ...grpc.CallOption) (*ListOwnerActivityResponse, error) {
	return rpc.Invoke[ListOwnerActivityResponse](ctx, c.cc, ReactionService_ListOwnerActivity_FullMethodName, in, opts...)
}
