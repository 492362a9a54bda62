package ruddit

import (
	"ruddit-go/internal/retry"
)

// Options tunes the ingestion pipeline. Zero values fall back to defaults.
type Options struct {
	Facets       []string // default facets when a query names none
	MaxPages     int      // pages fetched per facet
	PageSize     int
	Concurrency  int // facet requests in flight at once
	CommentSort  string
	CommentLimit int
	Retry        retry.Policy
}

// DefaultOptions matches what the upstream API allows per request.
func DefaultOptions() Options {
	return Options{
		Facets:       []string{"hot", "new", "top"},
		MaxPages:     1,
		PageSize:     100,
		Concurrency:  4,
		CommentSort:  "best",
		CommentLimit: 500,
		Retry:        retry.Default(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if len(o.Facets) == 0 {
		o.Facets = d.Facets
	}
	if o.MaxPages <= 0 {
		o.MaxPages = d.MaxPages
	}
	if o.PageSize <= 0 || o.PageSize > 100 {
		o.PageSize = d.PageSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = d.Concurrency
	}
	if o.CommentSort == "" {
		o.CommentSort = d.CommentSort
	}
	if o.CommentLimit <= 0 {
		o.CommentLimit = d.CommentLimit
	}
	if o.Retry.MaxAttempts <= 0 {
		o.Retry = d.Retry
	}
	return o
}

// Service is the orchestration layer between the command layer and the
// upstream source, credentials and local store.
type Service struct {
	database Database
	source   Source
	tokens   TokenProvider
	logger   Logger
	clock    Clock
	idgen    IDGenerator
	opts     Options
}

// NewService creates a Service with the provided dependencies.
func NewService(database Database, source Source, tokens TokenProvider, logger Logger, clock Clock, idgen IDGenerator, opts Options) *Service {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	return &Service{
		database: database,
		source:   source,
		tokens:   tokens,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		opts:     opts.withDefaults(),
	}
}

// Options returns the effective options after defaults.
func (s *Service) Options() Options {
	return s.opts
}
