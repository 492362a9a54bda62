package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// TokenPath is where Upstream serves its token endpoint.
const TokenPath = "/api/v1/access_token"

// Upstream is a fake content API. Responses are registered per path; any other
// path answers 404. It also serves a token endpoint and records replies.
type Upstream struct {
	*httptest.Server

	mu        sync.Mutex
	bodies    map[string]string
	statuses  map[string]int
	requests  []string
	replies   []url.Values
	replyBody string
	tokens    int
}

func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{
		bodies:   make(map[string]string),
		statuses: make(map[string]int),
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

// TokenURL is the full URL of the fake token endpoint.
func (u *Upstream) TokenURL() string {
	return u.URL + TokenPath
}

// SetJSON makes path answer 200 with body.
func (u *Upstream) SetJSON(path, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bodies[path] = body
}

// SetStatus makes path answer with code and an empty JSON object.
func (u *Upstream) SetStatus(path string, code int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.statuses[path] = code
}

// SetReplyBody overrides the body returned by the reply endpoint.
func (u *Upstream) SetReplyBody(body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.replyBody = body
}

// Requests returns "path?query" for every content request, in arrival order.
func (u *Upstream) Requests() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.requests...)
}

// Replies returns the forms posted to the reply endpoint.
func (u *Upstream) Replies() []url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]url.Values(nil), u.replies...)
}

// TokenRequests returns how many times the token endpoint was hit.
func (u *Upstream) TokenRequests() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tokens
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	u.mu.Lock()
	defer u.mu.Unlock()

	switch r.URL.Path {
	case TokenPath:
		u.tokens++
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"bearer","expires_in":3600}`, u.tokens)
		return
	case "/api/comment":
		r.ParseForm()
		u.replies = append(u.replies, r.PostForm)
		if u.replyBody != "" {
			fmt.Fprint(w, u.replyBody)
			return
		}
		fmt.Fprint(w, `{"json":{"errors":[],"data":{"things":[{"kind":"t1","data":{"id":"r1","body":`+
			quote(r.PostForm.Get("text"))+`,"parent_id":`+quote(r.PostForm.Get("thing_id"))+
			`,"link_id":"t3_abc","author":"me","created_utc":1718000000,"permalink":"/r/golang/comments/abc/x/r1/"}}]}}}`)
		return
	}

	u.requests = append(u.requests, r.URL.Path+"?"+r.URL.RawQuery)
	if code, ok := u.statuses[r.URL.Path]; ok {
		w.WriteHeader(code)
		fmt.Fprint(w, `{}`)
		return
	}
	if body, ok := u.bodies[r.URL.Path]; ok {
		fmt.Fprint(w, body)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"message":"Not Found","error":404}`)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// LinkJSON renders a t3 thing.
func LinkJSON(id, title, subreddit string, created int64) string {
	return fmt.Sprintf(`{"kind":"t3","data":{"id":%s,"name":%s,"title":%s,"url":%s,"created_utc":%d.0,`+
		`"subreddit":%s,"permalink":%s,"selftext":"","author":"gopher","score":42,"thumbnail":"self","is_self":true,"num_comments":3}}`,
		quote(id), quote("t3_"+id), quote(title), quote("https://example.com/"+id), created,
		quote(subreddit), quote("/r/"+subreddit+"/comments/"+id+"/x/"))
}

// ListingJSON renders a Listing of children. An empty after renders as null.
func ListingJSON(after string, children ...string) string {
	a := "null"
	if after != "" {
		a = quote(after)
	}
	return fmt.Sprintf(`{"kind":"Listing","data":{"after":%s,"children":[%s]}}`, a, strings.Join(children, ","))
}

// CommentJSON renders a t1 thing whose replies are the given children.
func CommentJSON(id, parentID string, replies ...string) string {
	r := `""`
	if len(replies) > 0 {
		r = ListingJSON("", replies...)
	}
	return fmt.Sprintf(`{"kind":"t1","data":{"id":%s,"name":%s,"parent_id":%s,"link_id":"t3_abc","body":%s,`+
		`"author":"gopher","created_utc":1718000000.0,"score":1,"permalink":%s,"subreddit":"golang","replies":%s}}`,
		quote(id), quote("t1_"+id), quote(parentID), quote("body "+id), quote("/r/golang/comments/abc/x/"+id+"/"), r)
}

// ThreadJSON renders the two-element comment endpoint response.
func ThreadJSON(post string, comments ...string) string {
	return "[" + ListingJSON("", post) + "," + ListingJSON("", comments...) + "]"
}
