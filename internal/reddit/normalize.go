package reddit

import (
	"encoding/json"
	"fmt"
	"strings"

	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"
)

const permalinkHost = "https://reddit.com"

// Normalizer turns upstream payloads into canonical records.
type Normalizer struct {
	Rules model.IntentRules
}

// NormalizePost decodes a link payload observed under facet.
// An id that cannot be parsed into a positive identity fails with ErrInvalidIdentity.
func (n Normalizer) NormalizePost(raw json.RawMessage, facet string) (model.Post, error) {
	var l link
	if err := json.Unmarshal(raw, &l); err != nil {
		return model.Post{}, ruddit.E(ruddit.ErrParse, "normalizing post", err)
	}
	return n.post(&l, facet)
}

func (n Normalizer) post(l *link, facet string) (model.Post, error) {
	id, err := model.ParsePostID(l.ID)
	if err != nil {
		return model.Post{}, ruddit.E(ruddit.ErrInvalidIdentity, "normalizing post", err)
	}

	ts := int64(l.CreatedUTC)
	p := model.Post{
		ID:            id,
		Timestamp:     ts,
		FormattedDate: model.FormatTimestamp(ts),
		Title:         l.Title,
		URL:           l.URL,
		Permalink:     absolute(l.Permalink),
		Subreddit:     l.Subreddit,
		SortType:      facet,
		Score:         l.Score,
		Selftext:      optional(l.Selftext),
		Author:        l.Author,
		Thumbnail:     optional(l.Thumbnail),
		IsSelf:        l.IsSelf,
		NumComments:   l.NumComments,
		Name:          l.Name,
		Intent:        n.Rules.Classify(l.Title, l.Selftext),
	}
	if p.Name == "" {
		p.Name = id.Fullname()
	}
	return p, nil
}

// NormalizeComment decodes a single comment payload. postID, community and title come
// from the fetch context, not from the payload.
func (n Normalizer) NormalizeComment(raw json.RawMessage, postID, community, title string) (model.Comment, error) {
	var c comment
	if err := json.Unmarshal(raw, &c); err != nil {
		return model.Comment{}, ruddit.E(ruddit.ErrParse, "normalizing comment", err)
	}
	if c.ID == "" {
		return model.Comment{}, ruddit.E(ruddit.ErrInvalidIdentity, "normalizing comment", fmt.Errorf("comment without id"))
	}
	return n.comment(&c, postID, community, title, 0), nil
}

func (n Normalizer) comment(c *comment, postID, community, title string, depth int) model.Comment {
	if community == "" {
		community = c.Subreddit
	}
	ts := int64(c.CreatedUTC)
	return model.Comment{
		ID:            c.ID,
		PostID:        postID,
		ParentID:      c.ParentID,
		Body:          c.Body,
		Author:        c.Author,
		Timestamp:     ts,
		FormattedDate: model.FormatTimestamp(ts),
		Score:         c.Score,
		Permalink:     absolute(c.Permalink),
		Subreddit:     community,
		PostTitle:     title,
		Depth:         depth,
	}
}

func absolute(permalink string) string {
	if permalink == "" || strings.HasPrefix(permalink, "http://") || strings.HasPrefix(permalink, "https://") {
		return permalink
	}
	return permalinkHost + permalink
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
