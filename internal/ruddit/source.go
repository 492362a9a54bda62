package ruddit

import (
	"context"

	"ruddit-go/internal/model"
)

// ListingRequest asks for one page of a community listing under a sort facet.
type ListingRequest struct {
	Community string
	Sort      string
	Limit     int
	After     string
}

// SearchRequest asks for one page of full-text search results.
// A non-empty Community restricts the search to that community.
type SearchRequest struct {
	Query     string
	Sort      string
	Limit     int
	After     string
	Community string
	Time      string
	Type      string
}

// Page is one normalized page of posts. Rejected holds the raw ids of items whose
// identity could not be parsed; they never appear in Posts.
type Page struct {
	Posts    []model.Post
	Rejected []string
	After    string
}

// CommentRequest identifies a thread to fetch.
type CommentRequest struct {
	PostID string // base-36 id
	Sort   string
	Limit  int
}

// FlattenStats counts what the flattener dropped.
type FlattenStats struct {
	Duplicates int // nodes whose id was already emitted in this traversal
	Truncated  int // nodes deeper than the depth bound
	Malformed  int // children that could not be decoded
}

// Thread is a flattened comment tree. PostID is the id resolved from the response,
// falling back to the requested id; every comment carries it.
type Thread struct {
	PostID   string
	Post     *model.Post
	Comments []model.Comment
	Stats    FlattenStats
}

// Source is the upstream content API.
type Source interface {
	Listing(ctx context.Context, token string, req ListingRequest) (*Page, error)
	Search(ctx context.Context, token string, req SearchRequest) (*Page, error)
	Comments(ctx context.Context, token string, req CommentRequest) (*Thread, error)
	PostComment(ctx context.Context, token string, thingID string, text string) (*model.Comment, error)
}

// TokenProvider hands out bearer tokens. ServiceToken is app-only access;
// UserToken acts as the configured account and is needed for replies.
type TokenProvider interface {
	ServiceToken(ctx context.Context) (string, error)
	UserToken(ctx context.Context) (string, error)
}
