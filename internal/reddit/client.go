package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL           = "https://oauth.reddit.com"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerMinute = 60

	// excerptLen bounds how much of an unexpected payload is logged and attached to errors.
	excerptLen = 512
	// maxBodySize caps how much of a response is read.
	maxBodySize = 16 << 20
)

// Options configures a Client. Zero values use the defaults above.
type Options struct {
	BaseURL           string
	UserAgent         string
	HTTPClient        *http.Client
	Timeout           time.Duration // applied to every request
	RequestsPerMinute int
	Rules             model.IntentRules
	MaxCommentDepth   int
	Logger            ruddit.Logger
}

// Client talks to the upstream content API and returns normalized records.
type Client struct {
	baseURL    string
	userAgent  string
	http       *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	normalizer Normalizer
	flattener  Flattener
	logger     ruddit.Logger
}

func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = "ruddit-go/0.1"
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.logger == nil {
		c.logger = ruddit.NewNopLogger()
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = DefaultRequestsPerMinute
	}
	c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), min(rpm, 10))

	c.normalizer = Normalizer{Rules: opts.Rules}
	c.flattener = Flattener{Normalizer: c.normalizer, MaxDepth: opts.MaxCommentDepth}
	return c
}

// get issues an authenticated GET against path and returns the body.
func (c *Client) get(ctx context.Context, op, token, path string, query url.Values) ([]byte, error) {
	query.Set("raw_json", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, ruddit.E(ruddit.ErrTransport, op, err)
	}
	return c.do(op, token, req)
}

// postForm issues an authenticated form POST against path and returns the body.
func (c *Client) postForm(ctx context.Context, op, token, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, ruddit.E(ruddit.ErrTransport, op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(op, token, req)
}

func (c *Client) do(op, token string, req *http.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, ruddit.E(ruddit.ErrTransport, op, fmt.Errorf("waiting for rate limit: %w", err))
	}

	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ruddit.E(ruddit.ErrTransport, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, ruddit.E(ruddit.ErrTransport, op, fmt.Errorf("reading response: %w", err))
	}

	if err := statusError(op, resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

// StatusError is an upstream HTTP failure.
type StatusError struct {
	Code    int
	Excerpt string
}

func (e *StatusError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Excerpt)
}

// statusError maps non-2xx responses: 401 and 403 are rejections, everything
// else is a transport failure. Only 408, 429 and 5xx are worth retrying.
func statusError(op string, code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	se := &StatusError{Code: code, Excerpt: excerpt(body)}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ruddit.E(ruddit.ErrAuthRejected, op, se)
	case code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests:
		return ruddit.E(ruddit.ErrTransport, op, ruddit.Permanent(se))
	}
	return ruddit.E(ruddit.ErrTransport, op, se)
}

// ParseError carries an excerpt of the payload that failed to decode.
type ParseError struct {
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v (payload: %s)", e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (c *Client) decode(op string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		ex := excerpt(body)
		c.logger.Warn("unexpected response shape", "op", op, "error", err, "payload", ex)
		return ruddit.E(ruddit.ErrParse, op, &ParseError{Excerpt: ex, Err: err})
	}
	return nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > excerptLen {
		s = s[:excerptLen] + "..."
	}
	return s
}

// IsStatus reports whether err is an upstream HTTP failure with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
