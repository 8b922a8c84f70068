package reaction

import (
	"context"
	"strings"

	"github.com/oggyb/movie-social/internal/app"
	"github.com/oggyb/movie-social/internal/engine"
	svcErr "github.com/oggyb/movie-social/internal/errors"
	pb "github.com/oggyb/movie-social/internal/proto/reaction"
	"github.com/oggyb/movie-social/internal/reaction"
)

// MaxBatchIDs bounds GetBatchReactionSummary requests.
const MaxBatchIDs = 500

// Service implements the Reaction gRPC API on top of the reaction engine.
// Each method corresponds to an RPC of movie.reaction.v1.ReactionService.
type Service struct {
	appCtx *app.AppContext
	engine *engine.Engine

	pb.UnimplementedReactionServiceServer
}

// NewReactionService creates a new Reaction service with dependencies from AppContext.
func NewReactionService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		engine: appCtx.Engine,
	}
}

// ToggleReaction applies a like or dislike intent.
//
// Behavior:
//   - Adds the reaction when the user has none on the entry.
//   - Removes it when the same reaction is repeated.
//   - Switches it when the opposite reaction is stored.
//   - Rejects reactions on the caller's own entries with FailedPrecondition.
//
// Example:
//
//	svc.ToggleReaction(ctx, &pb.ToggleReactionRequest{EntryId: 42, EntryType: "favorites", UserId: "a", Like: true})
func (s *Service) ToggleReaction(ctx context.Context, req *pb.ToggleReactionRequest) (*pb.ReactionResult, error) {
	s.appCtx.Logger.Debug(
		"ToggleReaction called",
		"entry_id", req.GetEntryId(),
		"entry_type", req.GetEntryType(),
		"user", req.GetUserId(),
		"like", req.GetLike(),
	)

	kind, err := entryRef(req.GetEntryId(), req.GetEntryType())
	if err != nil {
		return nil, err
	}
	if req.GetUserId() == "" {
		return nil, svcErr.InvalidArgument("user_id is required")
	}

	res, err := s.engine.Toggle(ctx, req.GetEntryId(), kind, req.GetUserId(), req.GetLike())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return toResult(res), nil
}

// RemoveReaction deletes the caller's reaction whatever its value.
// Reports action "none" when there was nothing to delete.
func (s *Service) RemoveReaction(ctx context.Context, req *pb.RemoveReactionRequest) (*pb.ReactionResult, error) {
	s.appCtx.Logger.Debug("RemoveReaction called", "entry_id", req.GetEntryId(), "entry_type", req.GetEntryType(), "user", req.GetUserId())

	kind, err := entryRef(req.GetEntryId(), req.GetEntryType())
	if err != nil {
		return nil, err
	}
	if req.GetUserId() == "" {
		return nil, svcErr.InvalidArgument("user_id is required")
	}

	res, err := s.engine.Remove(ctx, req.GetEntryId(), kind, req.GetUserId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return toResult(res), nil
}

// React dispatches on Action: like and dislike toggle, remove removes.
func (s *Service) React(ctx context.Context, req *pb.ReactRequest) (*pb.ReactionResult, error) {
	switch strings.ToLower(req.GetAction()) {
	case "like":
		return s.ToggleReaction(ctx, &pb.ToggleReactionRequest{
			EntryId: req.GetEntryId(), EntryType: req.GetEntryType(), UserId: req.GetUserId(), Like: true,
		})
	case "dislike":
		return s.ToggleReaction(ctx, &pb.ToggleReactionRequest{
			EntryId: req.GetEntryId(), EntryType: req.GetEntryType(), UserId: req.GetUserId(), Like: false,
		})
	case "remove":
		return s.RemoveReaction(ctx, &pb.RemoveReactionRequest{
			EntryId: req.GetEntryId(), EntryType: req.GetEntryType(), UserId: req.GetUserId(),
		})
	}
	return nil, svcErr.InvalidArgument("action must be one of like, dislike, remove")
}

// GetReactionSummary returns counts for one entry and the viewer's reaction
// when viewer_id is set.
func (s *Service) GetReactionSummary(ctx context.Context, req *pb.GetReactionSummaryRequest) (*pb.ReactionSummary, error) {
	kind, err := entryRef(req.GetEntryId(), req.GetEntryType())
	if err != nil {
		return nil, err
	}

	sum, err := s.engine.Summary(ctx, req.GetEntryId(), kind, req.GetViewerId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return toSummary(sum), nil
}

// GetBatchReactionSummary returns one summary per distinct requested id,
// zero-valued for ids without reactions.
func (s *Service) GetBatchReactionSummary(
	ctx context.Context,
	req *pb.GetBatchReactionSummaryRequest,
) (*pb.GetBatchReactionSummaryResponse, error) {
	s.appCtx.Logger.Debug("GetBatchReactionSummary called", "entry_type", req.GetEntryType(), "ids", len(req.GetEntryIds()))

	kind, err := reaction.ParseKind(req.GetEntryType())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if len(req.GetEntryIds()) > MaxBatchIDs {
		return nil, svcErr.InvalidArgument("at most 500 entry_ids per request")
	}

	sums, err := s.engine.BatchSummary(ctx, req.GetEntryIds(), kind, req.GetViewerId())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.GetBatchReactionSummaryResponse{Summaries: make([]*pb.ReactionSummary, 0, len(sums))}
	seen := make(map[uint64]bool, len(sums))
	for _, id := range req.GetEntryIds() {
		if seen[id] {
			continue
		}
		seen[id] = true
		resp.Summaries = append(resp.Summaries, toSummary(sums[id]))
	}
	return resp, nil
}

// RemoveEntryReactions deletes every reaction on an entry. Called by list
// services when the entry itself is deleted.
func (s *Service) RemoveEntryReactions(
	ctx context.Context,
	req *pb.RemoveEntryReactionsRequest,
) (*pb.RemoveEntryReactionsResponse, error) {
	kind, err := entryRef(req.GetEntryId(), req.GetEntryType())
	if err != nil {
		return nil, err
	}

	removed, err := s.engine.RemoveAllForEntry(ctx, req.GetEntryId(), kind)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.RemoveEntryReactionsResponse{Removed: removed}, nil
}

// GetOwnerStats returns totals received across the owner's entries.
// Served from Redis when cached.
func (s *Service) GetOwnerStats(ctx context.Context, req *pb.GetOwnerStatsRequest) (*pb.OwnerStats, error) {
	if req.GetOwnerId() == "" {
		return nil, svcErr.InvalidArgument("owner_id is required")
	}

	stats, err := s.engine.OwnerStats(ctx, req.GetOwnerId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.OwnerStats{
		OwnerId:               stats.OwnerID,
		TotalLikesReceived:    stats.TotalLikesReceived,
		TotalDislikesReceived: stats.TotalDislikesReceived,
		LikeRatio:             stats.LikeRatio,
	}, nil
}

// GetOwnerStatsByKind breaks owner totals down per entry type.
func (s *Service) GetOwnerStatsByKind(ctx context.Context, req *pb.GetOwnerStatsRequest) (*pb.GetOwnerStatsByKindResponse, error) {
	if req.GetOwnerId() == "" {
		return nil, svcErr.InvalidArgument("owner_id is required")
	}

	kinds, err := s.engine.OwnerStatsByKind(ctx, req.GetOwnerId())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.GetOwnerStatsByKindResponse{OwnerId: req.GetOwnerId(), Kinds: make([]*pb.KindStats, 0, len(kinds))}
	for _, k := range kinds {
		resp.Kinds = append(resp.Kinds, &pb.KindStats{EntryType: k.Kind.String(), Likes: k.Likes, Dislikes: k.Dislikes})
	}
	return resp, nil
}

// GetTrending ranks entries of a type by like count; ties by entry id.
func (s *Service) GetTrending(ctx context.Context, req *pb.GetTrendingRequest) (*pb.GetTrendingResponse, error) {
	kind, err := reaction.ParseKind(req.GetEntryType())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	entries, err := s.engine.Trending(ctx, kind, int(req.GetLimit()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.GetTrendingResponse{Entries: make([]*pb.TrendingEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, &pb.TrendingEntry{
			EntryId:    e.EntryID,
			EntryType:  e.Kind.String(),
			LikeCount:  e.LikeCount,
			OwnerId:    e.OwnerID,
			MovieId:    e.MovieID,
			MovieTitle: e.Title,
			PosterPath: e.PosterPath,
		})
	}
	return resp, nil
}

// ListUsersWhoLiked returns the sorted ids of users who liked an entry.
func (s *Service) ListUsersWhoLiked(ctx context.Context, req *pb.ListUsersWhoLikedRequest) (*pb.ListUsersWhoLikedResponse, error) {
	kind, err := entryRef(req.GetEntryId(), req.GetEntryType())
	if err != nil {
		return nil, err
	}

	ids, err := s.engine.UsersWhoLiked(ctx, req.GetEntryId(), kind)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.ListUsersWhoLikedResponse{UserIds: ids}, nil
}

// ListSimilarUsers returns users sharing the most likes with user_id.
func (s *Service) ListSimilarUsers(ctx context.Context, req *pb.ListSimilarUsersRequest) (*pb.ListSimilarUsersResponse, error) {
	if req.GetUserId() == "" {
		return nil, svcErr.InvalidArgument("user_id is required")
	}

	users, err := s.engine.SimilarUsers(ctx, req.GetUserId(), int(req.GetLimit()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListSimilarUsersResponse{Users: make([]*pb.SimilarUser, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, &pb.SimilarUser{UserId: u.UserID, CommonLikes: u.CommonLikes})
	}
	return resp, nil
}

// ListOwnerActivity returns reactions received on the owner's entries, newest
// first, with cursor-based pagination.
func (s *Service) ListOwnerActivity(ctx context.Context, req *pb.ListOwnerActivityRequest) (*pb.ListOwnerActivityResponse, error) {
	s.appCtx.Logger.Debug("ListOwnerActivity called", "owner", req.GetOwnerId(), "token", req.GetPaginationToken())

	if req.GetOwnerId() == "" {
		return nil, svcErr.InvalidArgument("owner_id is required")
	}

	page, err := s.engine.OwnerActivity(ctx, req.GetOwnerId(), req.PaginationToken, int(req.GetLimit()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListOwnerActivityResponse{Items: make([]*pb.Activity, 0, len(page.Items))}
	for _, a := range page.Items {
		resp.Items = append(resp.Items, &pb.Activity{
			UserId:        a.UserID,
			EntryId:       a.EntryID,
			EntryType:     a.Kind.String(),
			Status:        string(a.Status),
			UnixTimestamp: uint64(a.CreatedAt.UnixMilli()),
		})
	}
	if page.NextCursor != nil {
		resp.NextPaginationToken = page.NextCursor
	}
	return resp, nil
}

// entryRef validates an (entry id, entry type) pair.
func entryRef(entryID uint64, entryType string) (reaction.Kind, error) {
	kind, err := reaction.ParseKind(entryType)
	if err != nil {
		return "", svcErr.Map(err)
	}
	if entryID == 0 {
		return "", svcErr.InvalidArgument("entry_id is required")
	}
	return kind, nil
}

func toResult(r reaction.Result) *pb.ReactionResult {
	return &pb.ReactionResult{
		Action:    string(r.Action),
		EntryId:   r.EntryID,
		EntryType: r.Kind.String(),
		Likes:     r.Likes,
		Dislikes:  r.Dislikes,
	}
}

func toSummary(s reaction.Summary) *pb.ReactionSummary {
	return &pb.ReactionSummary{
		EntryId:      s.EntryID,
		EntryType:    s.Kind.String(),
		Likes:        s.Likes,
		Dislikes:     s.Dislikes,
		ViewerStatus: string(s.ViewerStatus),
	}
}
