package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"ruddit-go/internal/auth"
	"ruddit-go/internal/config"
	"ruddit-go/internal/database"
	"ruddit-go/internal/database/sqlc"
	"ruddit-go/internal/encryption"
	"ruddit-go/internal/model"
	"ruddit-go/internal/reddit"
	"ruddit-go/internal/ruddit"
	"ruddit-go/internal/vault"
)

// closeTimeout bounds the snapshot upload done by Close.
const closeTimeout = 2 * time.Minute

// RudditApp is the application layer between the CLI and ruddit.Service.
// It constructs all dependencies from config, tracks the operation being run,
// and snapshots the database to the vault on Close.
type RudditApp struct {
	cfg       *config.Config
	db        ruddit.Database
	vault     ruddit.Vault
	encryptor ruddit.Encryptor
	auth      *auth.Manager
	service   *ruddit.Service
	clock     ruddit.Clock
	op        *Operation
	log       ruddit.Logger
	logFile   *os.File

	snapMu sync.Mutex // one snapshot at a time
}

type settings struct {
	baseURL      string
	tokenURL     string
	authURL      string
	httpClient   *http.Client
	console      io.Writer
	consoleLevel slog.Level
	clock        ruddit.Clock
}

// Option overrides a default used by NewRudditApp.
type Option func(*settings)

// WithEndpoints points the app at a different content API and token endpoints.
// Empty values keep the defaults.
func WithEndpoints(baseURL, tokenURL, authURL string) Option {
	return func(s *settings) {
		s.baseURL, s.tokenURL, s.authURL = baseURL, tokenURL, authURL
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithConsole sets where log records at level or above are echoed. Default: stderr at WARN.
func WithConsole(w io.Writer, level slog.Level) Option {
	return func(s *settings) { s.console, s.consoleLevel = w, level }
}

func WithClock(c ruddit.Clock) Option {
	return func(s *settings) { s.clock = c }
}

// NewRudditApp creates a fully wired RudditApp from cfg. cfgPath is where token
// write-back goes; empty keeps tokens in memory. operation names the CLI command
// (e.g. "Search", "ClearSaved"). The caller must call Close when done.
func NewRudditApp(ctx context.Context, cfg *config.Config, cfgPath, operation string, opts ...Option) (*RudditApp, error) {
	s := settings{console: os.Stderr, consoleLevel: slog.LevelWarn, clock: ruddit.RealClock{}}
	for _, o := range opts {
		o(&s)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}
	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	var v ruddit.Vault
	if len(cfg.Vaults) > 0 {
		v, err = vault.NewVaultFromConfig(ctx, cfg.Vaults[0])
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("creating vault: %w", err)
		}
		if err := checkBehind(ctx, db, v, cfg.InstallID); err != nil {
			db.Close()
			return nil, err
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	opID := s.clock.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID, s.console, s.consoleLevel)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	manager := auth.NewManager(auth.Options{
		TokenURL:    s.tokenURL,
		AuthURL:     s.authURL,
		RedirectURL: cfg.Reddit.RedirectURL,
		UserAgent:   cfg.Reddit.UserAgent,
		HTTPClient:  s.httpClient,
		Cache:       config.NewTokenStore(cfgPath, cfg),
		Clock:       s.clock,
		Logger:      log,
	})
	client := reddit.NewClient(reddit.Options{
		BaseURL:           s.baseURL,
		UserAgent:         cfg.Reddit.UserAgent,
		HTTPClient:        s.httpClient,
		Timeout:           cfg.RequestTimeout(),
		RequestsPerMinute: cfg.Reddit.RequestsPerMinute,
		Rules:             cfg.IntentRules(),
		MaxCommentDepth:   cfg.Query.MaxCommentDepth,
		Logger:            log,
	})
	provider := auth.NewProvider(manager, cfg.ClientCredentials(), cfg.UserCredentials())

	svc := ruddit.NewService(db, client, provider, log, s.clock, ruddit.UUIDGenerator{}, ruddit.Options{
		Facets:       cfg.Query.Facets,
		MaxPages:     cfg.Query.MaxPages,
		PageSize:     cfg.Query.PageSize,
		Concurrency:  cfg.Query.Concurrency,
		CommentSort:  cfg.Query.CommentSort,
		CommentLimit: cfg.Query.CommentLimit,
		Retry:        cfg.RetryPolicy(),
	})

	return &RudditApp{
		cfg:       cfg,
		db:        db,
		vault:     v,
		encryptor: enc,
		auth:      manager,
		service:   svc,
		clock:     s.clock,
		op:        NewOperation(operation, ""),
		log:       log,
		logFile:   logFile,
	}, nil
}

// checkBehind refuses to run against a local database older than the newest snapshot.
func checkBehind(ctx context.Context, db ruddit.Database, v ruddit.Vault, installID string) error {
	remote, err := v.GetSnapshotVersion(ctx, installID, snapshotName)
	if err != nil {
		return fmt.Errorf("checking remote snapshot version: %w", err)
	}
	local, err := db.MaxOperationID()
	if err != nil {
		return fmt.Errorf("checking local database version: %w", err)
	}
	if remote > local {
		return fmt.Errorf("local database is behind the vault snapshot (local=%d, remote=%d): run `ruddit db restore`", local, remote)
	}
	return nil
}

// persistOperation records the operation in the database, giving it an ID.
// Only DB-mutating commands call it.
func (a *RudditApp) persistOperation(params string) error {
	if a.op.Persisted() {
		return nil
	}
	if params != "" {
		a.op.Parameters = params
	}
	dbOp, err := a.db.CreateOperation(a.op.Name, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// Search runs q and replaces the current search, or appends to it when appendOnly is set.
func (a *RudditApp) Search(ctx context.Context, q ruddit.Query, appendOnly bool) (*ruddit.QueryResult, error) {
	if err := a.persistOperation(q.Text); err != nil {
		return nil, err
	}
	if appendOnly {
		res, err := a.service.AppendQuery(ctx, q)
		return res, a.op.Fail(err)
	}
	res, err := a.service.RunQuery(ctx, q)
	return res, a.op.Fail(err)
}

// NextPage fetches one more page of a single facet and appends it to the current search.
func (a *RudditApp) NextPage(ctx context.Context, q ruddit.Query, facet, after string) (*ruddit.Page, error) {
	if err := a.persistOperation(q.Text); err != nil {
		return nil, err
	}
	p, err := a.service.FetchPage(ctx, q, facet, after)
	return p, a.op.Fail(err)
}

// FetchComments fetches and stores the thread for ref (id, fullname or URL).
func (a *RudditApp) FetchComments(ctx context.Context, ref string) (*ruddit.CommentResult, error) {
	if err := a.persistOperation(ref); err != nil {
		return nil, err
	}
	res, err := a.service.FetchComments(ctx, ref)
	return res, a.op.Fail(err)
}

// Save copies posts from the current search into the saved collection.
func (a *RudditApp) Save(rawIDs []string) (int, error) {
	ids := make([]model.PostID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := model.ParsePostID(raw)
		if err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := a.persistOperation(strings.Join(rawIDs, ",")); err != nil {
		return 0, err
	}
	n, err := a.service.SaveFromSearch(ids)
	return n, a.op.Fail(err)
}

func (a *RudditApp) Unsave(rawID string) error {
	id, err := model.ParsePostID(rawID)
	if err != nil {
		return err
	}
	if err := a.persistOperation(rawID); err != nil {
		return err
	}
	return a.op.Fail(a.service.Unsave(id))
}

// Target selects what an annotation applies to: a saved post, or a stored comment.
type Target struct {
	ID      string
	Comment bool
}

func (a *RudditApp) SetNotes(t Target, notes string) error {
	return a.annotate(t, func(id model.PostID) error { return a.service.UpdateNotes(id, notes) },
		func() error { return a.service.UpdateCommentNotes(t.ID, notes) })
}

func (a *RudditApp) SetAssignee(t Target, assignee string) error {
	return a.annotate(t, func(id model.PostID) error { return a.service.UpdateAssignee(id, assignee) },
		func() error { return a.service.UpdateCommentAssignee(t.ID, assignee) })
}

func (a *RudditApp) SetEngaged(t Target, engaged bool) error {
	return a.annotate(t, func(id model.PostID) error { return a.service.UpdateEngaged(id, engaged) },
		func() error { return a.service.UpdateCommentEngaged(t.ID, engaged) })
}

func (a *RudditApp) annotate(t Target, post func(model.PostID) error, comment func() error) error {
	if t.Comment {
		if err := a.persistOperation(t.ID); err != nil {
			return err
		}
		return a.op.Fail(comment())
	}
	id, err := model.ParsePostID(t.ID)
	if err != nil {
		return err
	}
	if err := a.persistOperation(t.ID); err != nil {
		return err
	}
	return a.op.Fail(post(id))
}

// Clear empties one collection: "saved", "search" or "comments".
func (a *RudditApp) Clear(what string) error {
	var fn func() error
	switch what {
	case "saved":
		fn = a.service.ClearSaved
	case "search":
		fn = a.service.ClearSearch
	case "comments":
		fn = a.service.ClearComments
	default:
		return fmt.Errorf("unknown collection %q (want saved, search or comments)", what)
	}
	if err := a.persistOperation(what); err != nil {
		return err
	}
	return a.op.Fail(fn())
}

// Reply posts text under thingID as the configured account. The store is not touched.
func (a *RudditApp) Reply(ctx context.Context, thingID, text string) (*model.Comment, error) {
	return a.service.Reply(ctx, thingID, text)
}

// Backup records an operation so that Close uploads a fresh snapshot.
func (a *RudditApp) Backup() error {
	if a.vault == nil {
		return fmt.Errorf("no vaults configured")
	}
	return a.persistOperation("")
}

func (a *RudditApp) ListSaved(filter ruddit.SavedFilter) ([]model.Post, error) {
	return a.service.ListSaved(filter)
}

func (a *RudditApp) CurrentSearch() ([]model.Post, error) {
	return a.service.CurrentSearch()
}

// Comments returns stored comments for postID, or every comment when postID is empty.
func (a *RudditApp) Comments(postID string) ([]model.Comment, error) {
	if postID == "" {
		return a.service.AllComments()
	}
	if id, ok := model.ResolvePostRef(postID); ok {
		postID = id
	}
	return a.service.CommentsForPost(postID)
}

func (a *RudditApp) FacetCounts() ([]ruddit.FacetCount, error) {
	return a.service.FacetCounts()
}

func (a *RudditApp) Counts() (saved, search, comments int64, err error) {
	return a.service.Counts()
}

func (a *RudditApp) GetHistory(limit int) ([]*sqlc.Operation, error) {
	return a.service.GetHistory(limit)
}

// Close finalizes the operation and closes all resources.
// A persisted operation is finished and, when a vault is configured, the
// database is snapshotted and uploaded with version = operation ID.
func (a *RudditApp) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.op.Persisted() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		keep(a.checkpoint(ctx, a.op))
		cancel()
	}

	if err := a.db.Close(); err != nil {
		keep(fmt.Errorf("closing database: %w", err))
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
