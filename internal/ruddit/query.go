package ruddit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"ruddit-go/internal/model"
)

// Mode selects the upstream endpoint a query runs against.
type Mode int

const (
	// ModeSearch runs a full-text search, optionally scoped to a community.
	ModeSearch Mode = iota
	// ModeCommunity lists a community's posts.
	ModeCommunity
)

func (m Mode) String() string {
	if m == ModeCommunity {
		return "community"
	}
	return "search"
}

// Query describes one ingestion run.
type Query struct {
	Text      string
	Community string
	Mode      Mode
	Facets    []string
	MaxPages  int
}

// ParseQuery turns user input into a Query. Input starting with "r/" lists that community.
func ParseQuery(text string) Query {
	text = strings.TrimSpace(text)
	if len(text) > 2 && strings.EqualFold(text[:2], "r/") {
		return Query{Text: text, Community: text[2:], Mode: ModeCommunity}
	}
	return Query{Text: text, Mode: ModeSearch}
}

func (q Query) validate() error {
	switch q.Mode {
	case ModeCommunity:
		if strings.TrimSpace(strings.TrimPrefix(q.Community, "r/")) == "" {
			return fmt.Errorf("community listing needs a community name")
		}
	case ModeSearch:
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("search needs a query")
		}
	default:
		return fmt.Errorf("unknown query mode %d", q.Mode)
	}
	return nil
}

// QueryResult is the merged output of a run.
type QueryResult struct {
	RunID        string
	Posts        []model.Post // newest first
	Facets       []string
	FailedFacets map[string]error
	Rejected     int // items dropped for a degenerate identity
	// FacetCursors holds the After cursor of each facet that stopped at the
	// page limit with more results upstream. Pass it to FetchPage to continue.
	FacetCursors map[string]string
}

// FacetBatch is everything one facet produced, in upstream order.
type FacetBatch struct {
	Facet string
	Posts []model.Post
}

// Merge unions batches by post identity. A post seen under several facets is
// emitted once, at its first position, with the facets joined in first-seen order.
func Merge(batches []FacetBatch) []model.Post {
	index := make(map[model.PostID]int)
	var merged []model.Post
	for _, b := range batches {
		for _, p := range b.Posts {
			if i, ok := index[p.ID]; ok {
				merged[i].SortType = model.AddFacet(merged[i].SortType, b.Facet)
				continue
			}
			p.SortType = b.Facet
			index[p.ID] = len(merged)
			merged = append(merged, p)
		}
	}
	return merged
}

type facetResult struct {
	batch    FacetBatch
	rejected int
	pages    int
	after    string
	err      error
}

// RunQuery fetches every facet, merges the results by identity and replaces the
// current search with them. Facets that fail are reported in FailedFacets; the
// run only fails as a whole when credentials are rejected, the store fails, or
// every facet failed, in which case the current search is left untouched.
func (s *Service) RunQuery(ctx context.Context, q Query) (*QueryResult, error) {
	return s.runQuery(ctx, q, true)
}

// AppendQuery is RunQuery without clearing the current search first.
func (s *Service) AppendQuery(ctx context.Context, q Query) (*QueryResult, error) {
	return s.runQuery(ctx, q, false)
}

func (s *Service) runQuery(ctx context.Context, q Query, replace bool) (*QueryResult, error) {
	res, err := s.collect(ctx, q)
	if err != nil {
		return nil, err
	}

	stamp(res.Posts, s.clock)
	if replace {
		err = s.database.ReplaceSearchResults(res.Posts)
	} else {
		err = s.database.AppendSearchResults(res.Posts)
	}
	if err != nil {
		return nil, E(ErrPersistence, "storing search results", err)
	}

	s.logger.Info("query stored",
		"run", res.RunID, "query", q.Text, "mode", q.Mode.String(),
		"posts", len(res.Posts), "failed_facets", len(res.FailedFacets), "rejected", res.Rejected)
	return res, nil
}

// collect runs the fetch and merge steps without touching the store.
func (s *Service) collect(ctx context.Context, q Query) (*QueryResult, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	facets := uniqueFacets(q.Facets)
	if len(facets) == 0 {
		facets = uniqueFacets(s.opts.Facets)
	}
	maxPages := q.MaxPages
	if maxPages <= 0 {
		maxPages = s.opts.MaxPages
	}

	runID := s.idgen.New()
	s.logger.Debug("running query", "run", runID, "query", q.Text, "mode", q.Mode.String(), "facets", strings.Join(facets, ","))

	token, err := s.tokens.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]facetResult, len(facets))
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, facet := range facets {
		g.Go(func() error {
			results[i] = s.fetchFacet(ctx, token, q, facet, maxPages)
			return nil
		})
	}
	g.Wait()

	res := &QueryResult{
		RunID:        runID,
		Facets:       facets,
		FailedFacets: make(map[string]error),
		FacetCursors: make(map[string]string),
	}
	batches := make([]FacetBatch, 0, len(results))
	var failures []error
	for _, r := range results {
		res.Rejected += r.rejected
		batches = append(batches, r.batch)
		if r.err == nil {
			if r.after != "" {
				res.FacetCursors[r.batch.Facet] = r.after
			}
			continue
		}
		if IsTerminal(r.err) {
			return nil, r.err
		}
		res.FailedFacets[r.batch.Facet] = r.err
		failures = append(failures, r.err)
		s.logger.Warn("facet failed", "run", runID, "facet", r.batch.Facet, "query", q.Text, "pages", r.pages, "error", r.err)
	}

	if len(failures) == len(facets) {
		return nil, fmt.Errorf("all %d facets failed: %w", len(facets), errors.Join(failures...))
	}

	res.Posts = Merge(batches)
	model.SortPostsByRecency(res.Posts)
	return res, nil
}

// fetchFacet pages through one facet. Pages fetched before a failure are kept.
func (s *Service) fetchFacet(ctx context.Context, token string, q Query, facet string, maxPages int) facetResult {
	r := facetResult{batch: FacetBatch{Facet: facet}}
	after := ""
	for r.pages < maxPages {
		var page *Page
		err := s.opts.Retry.Do(ctx, IsRetryable, func(ctx context.Context) error {
			var err error
			page, err = s.fetchPage(ctx, token, q, facet, after)
			return err
		})
		if err != nil {
			r.err = fmt.Errorf("facet %s page %d: %w", facet, r.pages+1, err)
			return r
		}
		r.pages++
		r.batch.Posts = append(r.batch.Posts, page.Posts...)
		if n := len(page.Rejected); n > 0 {
			r.rejected += n
			s.logger.Warn("items rejected for invalid identity", "facet", facet, "ids", strings.Join(page.Rejected, ","))
		}
		r.after = page.After
		if page.After == "" {
			break
		}
		after = page.After
	}
	return r
}

func (s *Service) fetchPage(ctx context.Context, token string, q Query, facet, after string) (*Page, error) {
	if q.Mode == ModeCommunity {
		return s.source.Listing(ctx, token, ListingRequest{
			Community: q.Community,
			Sort:      facet,
			Limit:     s.opts.PageSize,
			After:     after,
		})
	}
	return s.source.Search(ctx, token, SearchRequest{
		Query:     q.Text,
		Sort:      facet,
		Limit:     s.opts.PageSize,
		After:     after,
		Community: q.Community,
	})
}

// FetchPage fetches a single page of one facet, appends it to the current search
// and returns it. Passing the previous page's After continues the listing.
func (s *Service) FetchPage(ctx context.Context, q Query, facet string, after string) (*Page, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	token, err := s.tokens.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	var page *Page
	err = s.opts.Retry.Do(ctx, IsRetryable, func(ctx context.Context) error {
		var err error
		page, err = s.fetchPage(ctx, token, q, facet, after)
		return err
	})
	if err != nil {
		return nil, err
	}

	posts := Merge([]FacetBatch{{Facet: facet, Posts: page.Posts}})
	stamp(posts, s.clock)
	if err := s.database.AppendSearchResults(posts); err != nil {
		return nil, E(ErrPersistence, "appending search results", err)
	}
	return &Page{Posts: posts, Rejected: page.Rejected, After: page.After}, nil
}

func uniqueFacets(facets []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range facets {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func stamp(posts []model.Post, clock Clock) {
	now := clock.Now().UTC()
	for i := range posts {
		if posts[i].DateAdded.IsZero() {
			posts[i].DateAdded = now
		}
	}
}
