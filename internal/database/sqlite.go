package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"ruddit-go/internal/database/migrations"
	"ruddit-go/internal/database/sqlc"
	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the Database interface using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase opens path (or ":memory:") and migrates the schema to the latest version.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing, already configured connection.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
	}
}

// OpenConnection opens and configures a SQLite connection.
// An in-memory database is limited to one connection so every query sees the same data.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", p, err)
		}
	}

	return db, nil
}

// inTx runs fn against a transaction-scoped Queries and commits if fn succeeds.
func (s *SQLiteDatabase) inTx(fn func(ctx context.Context, q *sqlc.Queries) error) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Saved posts

func (s *SQLiteDatabase) UpsertSaved(posts []model.Post) (int, error) {
	inserted := 0
	err := s.inTx(func(ctx context.Context, q *sqlc.Queries) error {
		for i := range posts {
			n, err := q.InsertSavedPost(ctx, sqlc.InsertSavedPostParams(postParams(&posts[i])))
			if err != nil {
				return fmt.Errorf("inserting saved post %s: %w", posts[i].ID, err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLiteDatabase) FindSaved(id model.PostID) (*model.Post, error) {
	row, err := s.queries.GetSavedPost(context.Background(), int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding saved post: %w", err)
	}
	p := savedToModel(row)
	return &p, nil
}

func (s *SQLiteDatabase) RemoveSaved(id model.PostID) error {
	if err := s.queries.DeleteSavedPost(context.Background(), int64(id)); err != nil {
		return fmt.Errorf("removing saved post: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ClearSaved() error {
	if err := s.queries.DeleteAllSavedPosts(context.Background()); err != nil {
		return fmt.Errorf("clearing saved posts: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateNotes(id model.PostID, notes string) error {
	err := s.queries.UpdateSavedPostNotes(context.Background(), sqlc.UpdateSavedPostNotesParams{
		Notes: notes,
		ID:    int64(id),
	})
	if err != nil {
		return fmt.Errorf("updating notes: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateAssignee(id model.PostID, assignee string) error {
	err := s.queries.UpdateSavedPostAssignee(context.Background(), sqlc.UpdateSavedPostAssigneeParams{
		Assignee: assignee,
		ID:       int64(id),
	})
	if err != nil {
		return fmt.Errorf("updating assignee: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateEngaged(id model.PostID, engaged bool) error {
	err := s.queries.UpdateSavedPostEngaged(context.Background(), sqlc.UpdateSavedPostEngagedParams{
		Engaged: engaged,
		ID:      int64(id),
	})
	if err != nil {
		return fmt.Errorf("updating engaged: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) RecentSaved(limit int) ([]model.Post, error) {
	rows, err := s.queries.ListRecentSavedPosts(context.Background(), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing recent saved posts: %w", err)
	}
	return savedRowsToModel(rows), nil
}

func (s *SQLiteDatabase) SavedByFacet(facet string) ([]model.Post, error) {
	rows, err := s.queries.ListSavedPostsByFacet(context.Background(), facet)
	if err != nil {
		return nil, fmt.Errorf("listing saved posts by facet: %w", err)
	}
	return savedRowsToModel(rows), nil
}

func (s *SQLiteDatabase) SavedByCommunity(community string) ([]model.Post, error) {
	rows, err := s.queries.ListSavedPostsBySubreddit(context.Background(), community)
	if err != nil {
		return nil, fmt.Errorf("listing saved posts by community: %w", err)
	}
	return savedRowsToModel(rows), nil
}

func (s *SQLiteDatabase) SearchSaved(term string) ([]model.Post, error) {
	rows, err := s.queries.SearchSavedPosts(context.Background(), term)
	if err != nil {
		return nil, fmt.Errorf("searching saved posts: %w", err)
	}
	return savedRowsToModel(rows), nil
}

func (s *SQLiteDatabase) AllSaved() ([]model.Post, error) {
	rows, err := s.queries.ListSavedPosts(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing saved posts: %w", err)
	}
	return savedRowsToModel(rows), nil
}

// FacetCounts splits each saved post's facet set, so a post under "hot,new" counts once for each.
func (s *SQLiteDatabase) FacetCounts() ([]ruddit.FacetCount, error) {
	sortTypes, err := s.queries.ListSavedSortTypes(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing facets: %w", err)
	}

	counts := make(map[string]int64)
	for _, st := range sortTypes {
		for _, f := range model.SplitFacets(st) {
			counts[f]++
		}
	}

	result := make([]ruddit.FacetCount, 0, len(counts))
	for f, n := range counts {
		result = append(result, ruddit.FacetCount{Facet: f, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Facet < result[j].Facet
	})
	return result, nil
}

// Current search

func (s *SQLiteDatabase) ReplaceSearchResults(posts []model.Post) error {
	return s.inTx(func(ctx context.Context, q *sqlc.Queries) error {
		if err := q.DeleteAllSearchResults(ctx); err != nil {
			return fmt.Errorf("clearing search results: %w", err)
		}
		return insertSearchResults(ctx, q, posts)
	})
}

func (s *SQLiteDatabase) AppendSearchResults(posts []model.Post) error {
	return s.inTx(func(ctx context.Context, q *sqlc.Queries) error {
		return insertSearchResults(ctx, q, posts)
	})
}

func insertSearchResults(ctx context.Context, q *sqlc.Queries, posts []model.Post) error {
	for i := range posts {
		if err := q.InsertSearchResult(ctx, sqlc.InsertSearchResultParams(postParams(&posts[i]))); err != nil {
			return fmt.Errorf("inserting search result %s: %w", posts[i].ID, err)
		}
	}
	return nil
}

func (s *SQLiteDatabase) FindSearchResult(id model.PostID) (*model.Post, error) {
	row, err := s.queries.GetSearchResult(context.Background(), int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding search result: %w", err)
	}
	p := searchToModel(row)
	return &p, nil
}

func (s *SQLiteDatabase) AllSearchResults() ([]model.Post, error) {
	rows, err := s.queries.ListSearchResults(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing search results: %w", err)
	}
	result := make([]model.Post, len(rows))
	for i := range rows {
		result[i] = searchToModel(rows[i])
	}
	return result, nil
}

func (s *SQLiteDatabase) ClearSearchResults() error {
	if err := s.queries.DeleteAllSearchResults(context.Background()); err != nil {
		return fmt.Errorf("clearing search results: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) AllPosts() ([]model.Post, error) {
	saved, err := s.AllSaved()
	if err != nil {
		return nil, err
	}
	search, err := s.AllSearchResults()
	if err != nil {
		return nil, err
	}

	seen := make(map[model.PostID]bool, len(saved))
	for _, p := range saved {
		seen[p.ID] = true
	}
	all := saved
	for _, p := range search {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		all = append(all, p)
	}
	return all, nil
}

// Comments

func (s *SQLiteDatabase) AppendComments(comments []model.Comment) (int, error) {
	inserted := 0
	now := time.Now().UTC()
	err := s.inTx(func(ctx context.Context, q *sqlc.Queries) error {
		for _, c := range comments {
			n, err := q.InsertComment(ctx, sqlc.InsertCommentParams{
				ID:            c.ID,
				PostID:        c.PostID,
				ParentID:      c.ParentID,
				Body:          c.Body,
				Author:        c.Author,
				Timestamp:     c.Timestamp,
				FormattedDate: c.FormattedDate,
				Score:         c.Score,
				Permalink:     c.Permalink,
				Subreddit:     c.Subreddit,
				PostTitle:     c.PostTitle,
				Depth:         int64(c.Depth),
				Engaged:       c.Engaged,
				Assignee:      c.Assignee,
				Notes:         c.Notes,
				DateAdded:     now,
			})
			if err != nil {
				return fmt.Errorf("inserting comment %s: %w", c.ID, err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLiteDatabase) AllComments() ([]model.Comment, error) {
	rows, err := s.queries.ListComments(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return commentRowsToModel(rows), nil
}

func (s *SQLiteDatabase) CommentsForPost(postID string) ([]model.Comment, error) {
	rows, err := s.queries.ListCommentsByPost(context.Background(), postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments for post: %w", err)
	}
	return commentRowsToModel(rows), nil
}

func (s *SQLiteDatabase) ClearComments() error {
	if err := s.queries.DeleteAllComments(context.Background()); err != nil {
		return fmt.Errorf("clearing comments: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateCommentNotes(id string, notes string) error {
	err := s.queries.UpdateCommentNotes(context.Background(), sqlc.UpdateCommentNotesParams{Notes: notes, ID: id})
	if err != nil {
		return fmt.Errorf("updating comment notes: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateCommentAssignee(id string, assignee string) error {
	err := s.queries.UpdateCommentAssignee(context.Background(), sqlc.UpdateCommentAssigneeParams{Assignee: assignee, ID: id})
	if err != nil {
		return fmt.Errorf("updating comment assignee: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateCommentEngaged(id string, engaged bool) error {
	err := s.queries.UpdateCommentEngaged(context.Background(), sqlc.UpdateCommentEngagedParams{Engaged: engaged, ID: id})
	if err != nil {
		return fmt.Errorf("updating comment engaged: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) Counts() (saved, search, comments int64, err error) {
	ctx := context.Background()
	if saved, err = s.queries.CountSavedPosts(ctx); err != nil {
		return 0, 0, 0, fmt.Errorf("counting saved posts: %w", err)
	}
	if search, err = s.queries.CountSearchResults(ctx); err != nil {
		return 0, 0, 0, fmt.Errorf("counting search results: %w", err)
	}
	if comments, err = s.queries.CountComments(ctx); err != nil {
		return 0, 0, 0, fmt.Errorf("counting comments: %w", err)
	}
	return saved, search, comments, nil
}

// Operation tracking

func (s *SQLiteDatabase) CreateOperation(operation string, parameters string) (*sqlc.Operation, error) {
	op, err := s.queries.InsertOperation(context.Background(), sqlc.InsertOperationParams{
		StartedAt:  time.Now().UTC(),
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}
	return &op, nil
}

func (s *SQLiteDatabase) FinishOperation(id int64, status string) error {
	err := s.queries.UpdateOperationFinished(context.Background(), sqlc.UpdateOperationFinishedParams{
		FinishedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(limit int) ([]*sqlc.Operation, error) {
	ops, err := s.queries.GetOperations(context.Background(), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}

	result := make([]*sqlc.Operation, len(ops))
	for i := range ops {
		result[i] = &ops[i]
	}
	return result, nil
}

func (s *SQLiteDatabase) MaxOperationID() (int64, error) {
	id, err := s.queries.GetMaxOperationID(context.Background())
	if err != nil {
		return 0, fmt.Errorf("getting max operation ID: %w", err)
	}
	return id, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
// destPath must not exist.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements ruddit.Database interface
var _ ruddit.Database = (*SQLiteDatabase)(nil)
