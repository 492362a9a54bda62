package ruddit

import (
	"fmt"

	"ruddit-go/internal/model"
)

// SavePosts adds posts to the saved collection and returns how many were new.
func (s *Service) SavePosts(posts []model.Post) (int, error) {
	stamp(posts, s.clock)
	n, err := s.database.UpsertSaved(posts)
	if err != nil {
		return 0, E(ErrPersistence, "saving posts", err)
	}
	return n, nil
}

// SaveFromSearch copies posts from the current search into the saved collection.
// Every id must be present in the current search.
func (s *Service) SaveFromSearch(ids []model.PostID) (int, error) {
	posts := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		p, err := s.database.FindSearchResult(id)
		if err != nil {
			return 0, E(ErrPersistence, "reading current search", err)
		}
		if p == nil {
			return 0, fmt.Errorf("post %s is not in the current search", id)
		}
		p.DateAdded = s.clock.Now().UTC()
		posts = append(posts, *p)
	}
	return s.SavePosts(posts)
}

// Unsave removes one saved post.
func (s *Service) Unsave(id model.PostID) error {
	return s.database.RemoveSaved(id)
}

func (s *Service) UpdateNotes(id model.PostID, notes string) error {
	return s.database.UpdateNotes(id, notes)
}

func (s *Service) UpdateAssignee(id model.PostID, assignee string) error {
	return s.database.UpdateAssignee(id, assignee)
}

func (s *Service) UpdateEngaged(id model.PostID, engaged bool) error {
	return s.database.UpdateEngaged(id, engaged)
}

// SavedFilter selects which saved posts ListSaved returns. At most one field is used,
// checked in field order; an empty filter lists everything.
type SavedFilter struct {
	Recent    int
	Facet     string
	Community string
	Term      string
}

// ListSaved returns saved posts matching filter, newest first.
func (s *Service) ListSaved(filter SavedFilter) ([]model.Post, error) {
	switch {
	case filter.Recent > 0:
		return s.database.RecentSaved(filter.Recent)
	case filter.Facet != "":
		return s.database.SavedByFacet(filter.Facet)
	case filter.Community != "":
		return s.database.SavedByCommunity(filter.Community)
	case filter.Term != "":
		return s.database.SearchSaved(filter.Term)
	default:
		return s.database.AllSaved()
	}
}

// CurrentSearch returns the posts stored by the latest query.
func (s *Service) CurrentSearch() ([]model.Post, error) {
	return s.database.AllSearchResults()
}

// AllPosts returns saved and current-search posts, each identity once.
func (s *Service) AllPosts() ([]model.Post, error) {
	return s.database.AllPosts()
}

// FacetCounts returns how many saved posts were seen under each facet.
func (s *Service) FacetCounts() ([]FacetCount, error) {
	return s.database.FacetCounts()
}

// Counts returns the size of each collection.
func (s *Service) Counts() (saved, search, comments int64, err error) {
	return s.database.Counts()
}

// ClearSaved deletes every saved post.
func (s *Service) ClearSaved() error {
	return s.database.ClearSaved()
}

// ClearSearch deletes the current search.
func (s *Service) ClearSearch() error {
	return s.database.ClearSearchResults()
}
