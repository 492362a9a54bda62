package ruddit

import (
	"context"
	"fmt"

	"ruddit-go/internal/model"
)

// Watch is a saved query that is re-run on a schedule. Posts at or above
// MinIntent are saved; with FetchComments their threads are stored too.
type Watch struct {
	Name          string
	Query         string
	Facets        []string
	MaxPages      int
	MinIntent     model.Intent
	FetchComments bool
}

// WatchReport summarizes one watch run.
type WatchReport struct {
	Name          string
	RunID         string
	Fetched       int
	Matched       int
	Saved         int
	Comments      int
	FailedFacets  map[string]error
	FailedThreads map[string]error
}

// RunWatch runs w once. The current search is not modified.
func (s *Service) RunWatch(ctx context.Context, w Watch) (*WatchReport, error) {
	q := ParseQuery(w.Query)
	q.Facets = w.Facets
	q.MaxPages = w.MaxPages

	res, err := s.collect(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.Name, err)
	}

	threshold := w.MinIntent
	if threshold == "" {
		threshold = model.IntentMedium
	}
	var matched []model.Post
	for _, p := range res.Posts {
		if p.Intent.AtLeast(threshold) {
			matched = append(matched, p)
		}
	}

	saved, err := s.SavePosts(matched)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.Name, err)
	}

	report := &WatchReport{
		Name:          w.Name,
		RunID:         res.RunID,
		Fetched:       len(res.Posts),
		Matched:       len(matched),
		Saved:         saved,
		FailedFacets:  res.FailedFacets,
		FailedThreads: make(map[string]error),
	}

	if w.FetchComments {
		for _, p := range matched {
			cr, err := s.FetchComments(ctx, p.ID.String())
			if err != nil {
				if IsTerminal(err) {
					return report, fmt.Errorf("watch %s: %w", w.Name, err)
				}
				report.FailedThreads[p.ID.String()] = err
				s.logger.Warn("thread fetch failed", "watch", w.Name, "post", p.ID.String(), "error", err)
				continue
			}
			report.Comments += cr.Inserted
		}
	}

	s.logger.Info("watch finished",
		"watch", w.Name, "run", res.RunID, "fetched", report.Fetched,
		"matched", report.Matched, "saved", report.Saved, "comments", report.Comments)
	return report, nil
}
