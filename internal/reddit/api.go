package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"
)

var _ ruddit.Source = (*Client)(nil)

// Listing fetches one page of /r/{community}/{sort}.
func (c *Client) Listing(ctx context.Context, token string, req ruddit.ListingRequest) (*ruddit.Page, error) {
	const op = "reddit.Listing"
	community := strings.TrimPrefix(strings.TrimSpace(req.Community), "r/")
	if community == "" {
		return nil, ruddit.E(ruddit.ErrInvalidIdentity, op, errors.New("community is required"))
	}
	sort := req.Sort
	if sort == "" {
		sort = "hot"
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageLimit(req.Limit)))
	if req.After != "" {
		q.Set("after", req.After)
	}

	body, err := c.get(ctx, op, token, "/r/"+url.PathEscape(community)+"/"+url.PathEscape(sort), q)
	if err != nil {
		return nil, err
	}
	return c.page(op, body, sort)
}

// Search fetches one page of full-text search results. A non-empty Community
// restricts the search to that community.
func (c *Client) Search(ctx context.Context, token string, req ruddit.SearchRequest) (*ruddit.Page, error) {
	const op = "reddit.Search"

	q := url.Values{}
	q.Set("q", req.Query)
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	q.Set("limit", strconv.Itoa(pageLimit(req.Limit)))
	q.Set("t", orDefault(req.Time, "all"))
	q.Set("type", orDefault(req.Type, "link"))
	if req.After != "" {
		q.Set("after", req.After)
	}

	path := "/search"
	if community := strings.TrimPrefix(strings.TrimSpace(req.Community), "r/"); community != "" {
		path = "/r/" + url.PathEscape(community) + "/search"
		q.Set("restrict_sr", "1")
	}

	body, err := c.get(ctx, op, token, path, q)
	if err != nil {
		return nil, err
	}
	return c.page(op, body, req.Sort)
}

// page decodes a listing of links. Non-link children are skipped; links whose
// id is not a valid identity are reported in Rejected.
func (c *Client) page(op string, body []byte, facet string) (*ruddit.Page, error) {
	var l listing
	if err := c.decode(op, body, &l); err != nil {
		return nil, err
	}

	p := &ruddit.Page{After: l.after()}
	for _, t := range l.Data.Children {
		if t.Kind != KindLink {
			continue
		}
		var raw link
		if err := c.decode(op, t.Data, &raw); err != nil {
			continue
		}
		post, err := c.normalizer.post(&raw, facet)
		if err != nil {
			p.Rejected = append(p.Rejected, raw.ID)
			continue
		}
		p.Posts = append(p.Posts, post)
	}
	return p, nil
}

// Comments fetches and flattens the thread of req.PostID. The upstream answers
// with [post listing, comment listing]; a shorter answer is an empty thread.
func (c *Client) Comments(ctx context.Context, token string, req ruddit.CommentRequest) (*ruddit.Thread, error) {
	const op = "reddit.Comments"

	postID := strings.TrimPrefix(strings.TrimSpace(req.PostID), "t3_")
	if postID == "" {
		return nil, ruddit.E(ruddit.ErrInvalidIdentity, op, errors.New("post id is required"))
	}

	q := url.Values{}
	q.Set("sort", orDefault(req.Sort, "best"))
	q.Set("limit", strconv.Itoa(commentLimit(req.Limit)))

	body, err := c.get(ctx, op, token, "/comments/"+url.PathEscape(postID), q)
	if err != nil {
		return nil, err
	}

	var parts []listing
	if err := c.decode(op, body, &parts); err != nil {
		return nil, err
	}

	thread := &ruddit.Thread{PostID: postID}
	if len(parts) < 2 {
		c.logger.Warn("comment response has fewer than two listings", "post", postID, "listings", len(parts))
		return thread, nil
	}

	title, community := "", ""
	if post := c.echoPost(parts[0]); post != nil {
		thread.Post = post
		thread.PostID = post.ID.String()
		title, community = post.Title, post.Subreddit
	}

	thread.Comments, thread.Stats = c.flattener.Flatten(parts[1].Data.Children, thread.PostID, community, title)
	return thread, nil
}

// echoPost returns the post the comment endpoint echoes back, if it is usable.
func (c *Client) echoPost(l listing) *model.Post {
	for _, t := range l.Data.Children {
		if t.Kind != KindLink {
			continue
		}
		p, err := c.normalizer.NormalizePost(t.Data, "")
		if err != nil {
			c.logger.Warn("ignoring echoed post", "error", err)
			return nil
		}
		return &p
	}
	return nil
}

// PostComment replies to thingID (a t3_ post or t1_ comment fullname) as the token's user.
// Errors reported in the response body are rejections.
func (c *Client) PostComment(ctx context.Context, token, thingID, text string) (*model.Comment, error) {
	const op = "reddit.PostComment"

	form := url.Values{}
	form.Set("thing_id", thingID)
	form.Set("text", text)
	form.Set("api_type", "json")

	body, err := c.postForm(ctx, op, token, "/api/comment", form)
	if err != nil {
		return nil, err
	}

	var res replyResult
	if err := c.decode(op, body, &res); err != nil {
		return nil, err
	}
	if errs := res.JSON.Errors; len(errs) > 0 {
		codes := make([]string, 0, len(errs))
		for _, e := range errs {
			parts := make([]string, 0, len(e))
			for _, v := range e {
				if v != nil {
					parts = append(parts, fmt.Sprint(v))
				}
			}
			codes = append(codes, strings.Join(parts, ": "))
		}
		return nil, ruddit.E(ruddit.ErrAuthRejected, op, fmt.Errorf("upstream refused reply: %s", strings.Join(codes, "; ")))
	}

	for _, t := range res.JSON.Data.Things {
		if t.Kind != KindComment {
			continue
		}
		var raw comment
		if err := c.decode(op, t.Data, &raw); err != nil {
			return nil, err
		}
		cm := c.normalizer.comment(&raw, strings.TrimPrefix(raw.LinkID, "t3_"), "", "", 0)
		return &cm, nil
	}
	return nil, ruddit.E(ruddit.ErrParse, op, errors.New("reply response carried no comment"))
}

func pageLimit(n int) int {
	if n <= 0 || n > 100 {
		return 100
	}
	return n
}

func commentLimit(n int) int {
	if n <= 0 || n > 500 {
		return 500
	}
	return n
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
