// Package reaction holds the messages, service descriptor and client of
// movie.reaction.v1.ReactionService. Messages travel as JSON (see package rpc).
package reaction

// ToggleReactionRequest applies a like (Like=true) or dislike intent.
type ToggleReactionRequest struct {
	EntryId   uint64 `json:"entry_id"`
	EntryType string `json:"entry_type"`
	UserId    string `json:"user_id"`
	Like      bool   `json:"like"`
}

func (x *ToggleReactionRequest) GetEntryId() uint64 {
	if x != nil {
		return x.EntryId
	}
	return 0
}

func (x *ToggleReactionRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

func (x *ToggleReactionRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *ToggleReactionRequest) GetLike() bool {
	if x != nil {
		return x.Like
	}
	return false
}

type RemoveReactionRequest struct {
	EntryId   uint64 `json:"entry_id"`
	EntryType string `json:"entry_type"`
	UserId    string `json:"user_id"`
}

func (x *RemoveReactionRequest) GetEntryId() uint64 {
	if x != nil {
		return x.EntryId
	}
	return 0
}

func (x *RemoveReactionRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

func (x *RemoveReactionRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

// ReactRequest is the single-endpoint form: Action is like, dislike or remove.
type ReactRequest struct {
	EntryId   uint64 `json:"entry_id"`
	EntryType string `json:"entry_type"`
	UserId    string `json:"user_id"`
	Action    string `json:"action"`
}

func (x *ReactRequest) GetEntryId() uint64 {
	if x != nil {
		return x.EntryId
	}
	return 0
}

func (x *ReactRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

func (x *ReactRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *ReactRequest) GetAction() string {
	if x != nil {
		return x.Action
	}
	return ""
}

// ReactionResult is returned by every write.
type ReactionResult struct {
	Action    string `json:"action"`
	EntryId   uint64 `json:"entry_id"`
	EntryType string `json:"entry_type"`
	Likes     int64  `json:"likes"`
	Dislikes  int64  `json:"dislikes"`
}

type GetReactionSummaryRequest struct {
	EntryId   uint64 `json:"entry_id"`
	EntryType string `json:"entry_type"`
	ViewerId  string `json:"viewer_id,omitempty"`
}

func (x *GetReactionSummaryRequest) GetEntryId() uint64 {
	if x != nil {
		return x.EntryId
	}
	return 0
}

func (x *GetReactionSummaryRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

func (x *GetReactionSummaryRequest) GetViewerId() string {
	if x != nil {
		return x.ViewerId
	}
	return ""
}

// ReactionSummary omits ViewerStatus when the viewer has no reaction.
type ReactionSummary struct {
	EntryId      uint64 `json:"entry_id"`
	EntryType    string `json:"entry_type"`
	Likes        int64  `json:"likes"`
	Dislikes     int64  `json:"dislikes"`
	ViewerStatus string `json:"viewer_status,omitempty"`
}

type GetBatchReactionSummaryRequest struct {
	EntryIds  []uint64 `json:"entry_ids"`
	EntryType string   `json:"entry_type"`
	ViewerId  string   `json:"viewer_id,omitempty"`
}

func (x *GetBatchReactionSummaryRequest) GetEntryIds() []uint64 {
	if x != nil {
		return x.EntryIds
	}
	return nil
}

func (x *GetBatchReactionSummaryRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

func (x *GetBatchReactionSummaryRequest) GetViewerId() string {
	if x != nil {
		return x.ViewerId
	}
	return ""
}

// GetBatchReactionSummaryResponse has one summary per distinct requested id,
// in request order.
type GetBatchReactionSummaryResponse struct {
	Summaries []*ReactionSummary `json:"summaries"`
}

type RemoveEntryReactionsRequest struct {
	EntryId   uint64 `json:"entry_id"`
	EntryType string `json:"entry_type"`
}

func (x *RemoveEntryReactionsRequest) GetEntryId() uint64 {
	if x != nil {
		return x.EntryId
	}
	return 0
}

func (x *RemoveEntryReactionsRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

type RemoveEntryReactionsResponse struct {
	Removed int64 `json:"removed"`
}

type GetOwnerStatsRequest struct {
	OwnerId string `json:"owner_id"`
}

func (x *GetOwnerStatsRequest) GetOwnerId() string {
	if x != nil {
		return x.OwnerId
	}
	return ""
}

type OwnerStats struct {
	OwnerId               string  `json:"owner_id"`
	TotalLikesReceived    int64   `json:"total_likes_received"`
	TotalDislikesReceived int64   `json:"total_dislikes_received"`
	LikeRatio             float64 `json:"like_ratio"`
}

type KindStats struct {
	EntryType string `json:"entry_type"`
	Likes     int64  `json:"likes"`
	Dislikes  int64  `json:"dislikes"`
}

type GetOwnerStatsByKindResponse struct {
	OwnerId string       `json:"owner_id"`
	Kinds   []*KindStats `json:"kinds"`
}

type GetTrendingRequest struct {
	EntryType string `json:"entry_type"`
	Limit     int32  `json:"limit,omitempty"`
}

func (x *GetTrendingRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

func (x *GetTrendingRequest) GetLimit() int32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

type TrendingEntry struct {
	EntryId    uint64 `json:"entry_id"`
	EntryType  string `json:"entry_type"`
	LikeCount  int64  `json:"like_count"`
	OwnerId    string `json:"owner_id,omitempty"`
	MovieId    int64  `json:"movie_id,omitempty"`
	MovieTitle string `json:"movie_title,omitempty"`
	PosterPath string `json:"poster_path,omitempty"`
}

type GetTrendingResponse struct {
	Entries []*TrendingEntry `json:"entries"`
}

type ListUsersWhoLikedRequest struct {
	EntryId   uint64 `json:"entry_id"`
	EntryType string `json:"entry_type"`
}

func (x *ListUsersWhoLikedRequest) GetEntryId() uint64 {
	if x != nil {
		return x.EntryId
	}
	return 0
}

func (x *ListUsersWhoLikedRequest) GetEntryType() string {
	if x != nil {
		return x.EntryType
	}
	return ""
}

type ListUsersWhoLikedResponse struct {
	UserIds []string `json:"user_ids"`
}

type ListSimilarUsersRequest struct {
	UserId string `json:"user_id"`
	Limit  int32  `json:"limit,omitempty"`
}

func (x *ListSimilarUsersRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *ListSimilarUsersRequest) GetLimit() int32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

type SimilarUser struct {
	UserId      string `json:"user_id"`
	CommonLikes int64  `json:"common_likes"`
}

type ListSimilarUsersResponse struct {
	Users []*SimilarUser `json:"users"`
}

type ListOwnerActivityRequest struct {
	OwnerId         string  `json:"owner_id"`
	Limit           int32   `json:"limit,omitempty"`
	PaginationToken *string `json:"pagination_token,omitempty"`
}

func (x *ListOwnerActivityRequest) GetOwnerId() string {
	if x != nil {
		return x.OwnerId
	}
	return ""
}

func (x *ListOwnerActivityRequest) GetLimit() int32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

func (x *ListOwnerActivityRequest) GetPaginationToken() string {
	if x != nil && x.PaginationToken != nil {
		return *x.PaginationToken
	}
	return ""
}

type Activity struct {
	UserId        string `json:"user_id"`
	EntryId       uint64 `json:"entry_id"`
	EntryType     string `json:"entry_type"`
	Status        string `json:"status"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

type ListOwnerActivityResponse struct {
	Items               []*Activity `json:"items"`
	NextPaginationToken *string     `json:"next_pagination_token,omitempty"`
}

func (x *ListOwnerActivityResponse) GetNextPaginationToken() string {
	if x != nil && x.NextPaginationToken != nil {
		return *x.NextPaginationToken
	}
	return ""
}
