package ruddit

import (
	"ruddit-go/internal/database/sqlc"
	"ruddit-go/internal/model"
)

// FacetCount is the number of saved posts observed under one facet.
type FacetCount struct {
	Facet string
	Count int64
}

// Database is the local store. Every multi-row write runs in one transaction.
type Database interface {
	// Saved posts

	// UpsertSaved inserts posts whose identity is not yet saved and returns how many
	// were inserted. Existing rows, including their notes/assignee/engaged, are untouched.
	UpsertSaved(posts []model.Post) (int, error)

	// FindSaved returns nil when the id is not saved.
	FindSaved(id model.PostID) (*model.Post, error)

	RemoveSaved(id model.PostID) error
	ClearSaved() error

	// UpdateNotes, UpdateAssignee and UpdateEngaged are no-ops for unknown ids.
	UpdateNotes(id model.PostID, notes string) error
	UpdateAssignee(id model.PostID, assignee string) error
	UpdateEngaged(id model.PostID, engaged bool) error

	RecentSaved(limit int) ([]model.Post, error)
	SavedByFacet(facet string) ([]model.Post, error)
	SavedByCommunity(community string) ([]model.Post, error)
	// SearchSaved matches term case-sensitively against title, community and facets.
	SearchSaved(term string) ([]model.Post, error)
	AllSaved() ([]model.Post, error)
	FacetCounts() ([]FacetCount, error)

	// Current search

	// ReplaceSearchResults clears the current search and inserts posts in one transaction.
	ReplaceSearchResults(posts []model.Post) error
	AppendSearchResults(posts []model.Post) error
	FindSearchResult(id model.PostID) (*model.Post, error)
	AllSearchResults() ([]model.Post, error)
	ClearSearchResults() error

	// AllPosts returns saved posts followed by current-search posts not already saved.
	AllPosts() ([]model.Post, error)

	// Comments

	// AppendComments inserts comments whose id is not yet stored and returns how many were inserted.
	AppendComments(comments []model.Comment) (int, error)
	AllComments() ([]model.Comment, error)
	CommentsForPost(postID string) ([]model.Comment, error)
	ClearComments() error
	UpdateCommentNotes(id string, notes string) error
	UpdateCommentAssignee(id string, assignee string) error
	UpdateCommentEngaged(id string, engaged bool) error

	// Counts returns the row counts of saved posts, current search and comments.
	Counts() (saved, search, comments int64, err error)

	// Operation history

	CreateOperation(operation string, parameters string) (*sqlc.Operation, error)
	FinishOperation(id int64, status string) error
	ListOperations(limit int) ([]*sqlc.Operation, error)
	MaxOperationID() (int64, error)

	// CheckMigrations verifies the schema is current.
	CheckMigrations() error
	// BackupTo writes a consistent copy of the database to destPath.
	BackupTo(destPath string) error
	Close() error
}
