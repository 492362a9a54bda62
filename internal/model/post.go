package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPostID is returned when an upstream item id cannot serve as a Post identity.
var ErrInvalidPostID = errors.New("invalid post id")

// PostID is the numeric identity of a post, parsed from the upstream base-36 id.
// Zero is never a valid identity.
type PostID int64

// ParsePostID parses a base-36 id such as "1abc2d" or the fullname form "t3_1abc2d".
func ParsePostID(s string) (PostID, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "t3_")
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPostID)
	}
	n, err := strconv.ParseInt(strings.ToLower(raw), 36, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidPostID, s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %q parses to %d", ErrInvalidPostID, s, n)
	}
	return PostID(n), nil
}

// String renders the id back into its base-36 upstream form.
func (id PostID) String() string {
	return strconv.FormatInt(int64(id), 36)
}

// Fullname returns the upstream "thing" name of the post (t3_<id>).
func (id PostID) Fullname() string {
	return "t3_" + id.String()
}

// Post is the canonical record for an upstream link item.
type Post struct {
	ID            PostID
	Timestamp     int64 // epoch seconds
	FormattedDate string
	Title         string
	URL           string
	Permalink     string
	Subreddit     string
	SortType      string // comma-joined facet set
	Score         int64
	Selftext      *string
	Author        string
	Thumbnail     *string
	IsSelf        bool
	NumComments   int64
	Intent        Intent
	Name          string

	// User-editable fields. Re-ingestion never touches these.
	Notes    string
	Assignee string
	Engaged  bool

	DateAdded time.Time
}

// Body returns the self-text, or "" when the post has none.
func (p *Post) Body() string {
	if p.Selftext == nil {
		return ""
	}
	return *p.Selftext
}

// Facets returns the individual facets the post was observed under.
func (p *Post) Facets() []string {
	return SplitFacets(p.SortType)
}

// Comment is the canonical record for a single reply in a thread.
type Comment struct {
	ID            string
	PostID        string // resolved post id of the fetch that produced this comment
	ParentID      string // upstream parent fullname (t1_ or t3_)
	Body          string
	Author        string
	Timestamp     int64
	FormattedDate string
	Score         int64
	Permalink     string
	Subreddit     string
	PostTitle     string
	Depth         int

	Notes    string
	Assignee string
	Engaged  bool
}

// IsTopLevel reports whether the comment replies directly to the post.
func (c *Comment) IsTopLevel() bool {
	return strings.HasPrefix(c.ParentID, "t3_")
}

// FormatTimestamp renders epoch seconds as "2006-01-02 15:04:05" in UTC.
func FormatTimestamp(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04:05")
}

// SortPostsByRecency orders posts newest first. Ties are broken by id so output is stable.
func SortPostsByRecency(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Timestamp != posts[j].Timestamp {
			return posts[i].Timestamp > posts[j].Timestamp
		}
		return posts[i].ID > posts[j].ID
	})
}
