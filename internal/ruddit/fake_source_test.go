package ruddit_test

import (
	"context"
	"fmt"
	"sync"

	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"
)

// fakeSource serves canned pages keyed by facet. pages[facet][i] answers the
// i-th request for that facet; errs[facet] fails every request for it.
type fakeSource struct {
	mu       sync.Mutex
	pages    map[string][]*ruddit.Page
	errs     map[string]error
	threads  map[string]*ruddit.Thread
	replyErr error
	replyNil bool // answer a reply with no comment and no error

	calls    map[string]int
	afters   map[string][]string
	listings []ruddit.ListingRequest
	searches []ruddit.SearchRequest
	tokens   []string
	replies  []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:   make(map[string][]*ruddit.Page),
		errs:    make(map[string]error),
		threads: make(map[string]*ruddit.Thread),
		calls:   make(map[string]int),
		afters:  make(map[string][]string),
	}
}

func (f *fakeSource) serve(token, facet, after string) (*ruddit.Page, error) {
	f.tokens = append(f.tokens, token)
	f.afters[facet] = append(f.afters[facet], after)
	n := f.calls[facet]
	f.calls[facet]++
	if err := f.errs[facet]; err != nil {
		return nil, err
	}
	pages := f.pages[facet]
	if n >= len(pages) {
		return &ruddit.Page{}, nil
	}
	return pages[n], nil
}

func (f *fakeSource) Listing(ctx context.Context, token string, req ruddit.ListingRequest) (*ruddit.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings = append(f.listings, req)
	return f.serve(token, req.Sort, req.After)
}

func (f *fakeSource) Search(ctx context.Context, token string, req ruddit.SearchRequest) (*ruddit.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, req)
	return f.serve(token, req.Sort, req.After)
}

func (f *fakeSource) Comments(ctx context.Context, token string, req ruddit.CommentRequest) (*ruddit.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if err := f.errs["comments:"+req.PostID]; err != nil {
		return nil, err
	}
	th, ok := f.threads[req.PostID]
	if !ok {
		return &ruddit.Thread{PostID: req.PostID}, nil
	}
	return th, nil
}

func (f *fakeSource) PostComment(ctx context.Context, token string, thingID string, text string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.replies = append(f.replies, thingID)
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	if f.replyNil {
		return nil, nil
	}
	return &model.Comment{ID: "r1", ParentID: thingID, Body: text}, nil
}

func (f *fakeSource) callCount(facet string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[facet]
}

func testPost(id int64, title string, intent model.Intent) model.Post {
	ts := 1718000000 + id
	return model.Post{
		ID:            model.PostID(id),
		Timestamp:     ts,
		FormattedDate: model.FormatTimestamp(ts),
		Title:         title,
		URL:           fmt.Sprintf("https://example.com/%d", id),
		Permalink:     fmt.Sprintf("https://reddit.com/r/golang/comments/%s/x/", model.PostID(id)),
		Subreddit:     "golang",
		Intent:        intent,
		Name:          model.PostID(id).Fullname(),
	}
}

func page(after string, posts ...model.Post) *ruddit.Page {
	return &ruddit.Page{Posts: posts, After: after}
}
