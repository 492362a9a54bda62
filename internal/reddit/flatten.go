package reddit

import (
	"bytes"
	"encoding/json"

	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"
)

// DefaultMaxDepth bounds how deep the flattener descends into a reply tree.
const DefaultMaxDepth = 64

// Flattener turns a reply tree into a pre-order list of comments.
type Flattener struct {
	Normalizer Normalizer
	MaxDepth   int // levels kept; top-level comments are level 0
}

type flattenState struct {
	Flattener
	postID    string
	community string
	title     string
	seen      map[string]bool
	out       []model.Comment
	stats     ruddit.FlattenStats
}

// Flatten walks children depth first, emitting each comment before its replies.
// Every emitted comment carries postID. Ids already emitted are skipped with their
// subtrees, as are comments deeper than MaxDepth. Malformed reply structures
// count as having no replies.
func (f Flattener) Flatten(children []Thing, postID, community, title string) ([]model.Comment, ruddit.FlattenStats) {
	if f.MaxDepth <= 0 {
		f.MaxDepth = DefaultMaxDepth
	}
	s := &flattenState{
		Flattener: f,
		postID:    postID,
		community: community,
		title:     title,
		seen:      make(map[string]bool),
	}
	s.walk(children, 0)
	return s.out, s.stats
}

func (s *flattenState) walk(children []Thing, depth int) {
	for _, t := range children {
		if t.Kind != KindComment {
			continue
		}

		var c comment
		if err := json.Unmarshal(t.Data, &c); err != nil || c.ID == "" {
			s.stats.Malformed++
			continue
		}
		if depth >= s.MaxDepth {
			s.stats.Truncated++
			continue
		}
		if s.seen[c.ID] {
			s.stats.Duplicates++
			continue
		}
		s.seen[c.ID] = true

		s.out = append(s.out, s.Normalizer.comment(&c, s.postID, s.community, s.title, depth))
		s.walk(s.replies(c.Replies), depth+1)
	}
}

// replies decodes a comment's "replies" field. The upstream sends "" for a leaf.
func (s *flattenState) replies(raw json.RawMessage) []Thing {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) {
		return nil
	}

	var l listing
	if raw[0] != '{' || json.Unmarshal(raw, &l) != nil {
		s.stats.Malformed++
		return nil
	}
	return l.Data.Children
}
