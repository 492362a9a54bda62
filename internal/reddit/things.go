package reddit

import (
	"encoding/json"
)

// Kinds of upstream "things" the client understands.
const (
	KindLink    = "t3"
	KindComment = "t1"
	KindListing = "Listing"
	KindMore    = "more"
)

// Thing is the upstream discriminated union: Kind selects how Data decodes.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []Thing `json:"children"`
		After    *string `json:"after"`
	} `json:"data"`
}

func (l *listing) after() string {
	if l.Data.After == nil {
		return ""
	}
	return *l.Data.After
}

type link struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	CreatedUTC  float64 `json:"created_utc"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Score       int64   `json:"score"`
	Thumbnail   string  `json:"thumbnail"`
	IsSelf      bool    `json:"is_self"`
	NumComments int64   `json:"num_comments"`
}

type comment struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Body       string          `json:"body"`
	Author     string          `json:"author"`
	CreatedUTC float64         `json:"created_utc"`
	Score      int64           `json:"score"`
	Permalink  string          `json:"permalink"`
	ParentID   string          `json:"parent_id"`
	LinkID     string          `json:"link_id"`
	Subreddit  string          `json:"subreddit"`
	Replies    json.RawMessage `json:"replies"`
}

// replyResult is the body of POST /api/comment with api_type=json.
type replyResult struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Things []Thing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}
