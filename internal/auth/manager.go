package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"ruddit-go/internal/ruddit"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	DefaultAuthURL  = "https://www.reddit.com/api/v1/authorize"
)

// DefaultScopes are requested by the interactive grant.
var DefaultScopes = []string{"identity", "read", "submit"}

// ClientCredentials identify the registered application. A nil value means unconfigured.
type ClientCredentials struct {
	ID     string
	Secret string
}

func (c *ClientCredentials) complete() bool {
	return c != nil && c.ID != "" && c.Secret != ""
}

// UserCredentials identify the account replies are posted as. A nil value means unconfigured.
type UserCredentials struct {
	Username string
	Password string
}

func (u *UserCredentials) complete() bool {
	return u != nil && u.Username != "" && u.Password != ""
}

// Options configures a Manager. Zero values fall back to the public endpoints,
// an in-memory cache, the real clock and a discarding logger.
type Options struct {
	TokenURL    string
	AuthURL     string
	RedirectURL string
	Scopes      []string
	UserAgent   string
	HTTPClient  *http.Client
	Cache       TokenCache
	Clock       ruddit.Clock
	Logger      ruddit.Logger
}

// Manager obtains, caches and refreshes access tokens.
type Manager struct {
	tokenURL    string
	authURL     string
	redirectURL string
	scopes      []string
	httpClient  *http.Client
	cache       TokenCache
	clock       ruddit.Clock
	logger      ruddit.Logger

	group singleflight.Group
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		tokenURL:    opts.TokenURL,
		authURL:     opts.AuthURL,
		redirectURL: opts.RedirectURL,
		scopes:      opts.Scopes,
		cache:       opts.Cache,
		clock:       opts.Clock,
		logger:      opts.Logger,
	}
	if m.tokenURL == "" {
		m.tokenURL = DefaultTokenURL
	}
	if m.authURL == "" {
		m.authURL = DefaultAuthURL
	}
	if m.scopes == nil {
		m.scopes = DefaultScopes
	}
	if m.cache == nil {
		m.cache = NewMemoryCache()
	}
	if m.clock == nil {
		m.clock = ruddit.RealClock{}
	}
	if m.logger == nil {
		m.logger = ruddit.NewNopLogger()
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	m.httpClient = WithUserAgent(client, opts.UserAgent)
	return m
}

// ServiceToken performs a client-credentials exchange and returns the token with
// its declared lifetime.
func (m *Manager) ServiceToken(ctx context.Context, creds *ClientCredentials) (string, time.Duration, error) {
	const op = "auth.ServiceToken"
	if !creds.complete() {
		return "", 0, ruddit.E(ruddit.ErrCredential, op, errors.New("client id and secret are required"))
	}

	cfg := &clientcredentials.Config{
		ClientID:     creds.ID,
		ClientSecret: creds.Secret,
		TokenURL:     m.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	tok, err := cfg.Token(m.context(ctx))
	if err != nil {
		return "", 0, classify(op, err)
	}
	return tok.AccessToken, lifetime(tok), nil
}

// Token returns the cached service token when it is still usable, otherwise
// exchanges for a new one and caches it. Concurrent refreshes share one exchange.
func (m *Manager) Token(ctx context.Context, creds *ClientCredentials) (string, error) {
	if t, ok := m.cached(m.cache.Load); ok {
		return t.AccessToken, nil
	}

	v, err, _ := m.group.Do("service", func() (any, error) {
		if t, ok := m.cached(m.cache.Load); ok {
			return t.AccessToken, nil
		}

		t, err := m.RefreshServiceToken(ctx, creds)
		if err != nil {
			return "", err
		}
		return t.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// RefreshServiceToken exchanges for a new service token regardless of the cache and caches it.
func (m *Manager) RefreshServiceToken(ctx context.Context, creds *ClientCredentials) (Token, error) {
	access, ttl, err := m.ServiceToken(ctx, creds)
	if err != nil {
		return Token{}, err
	}
	t := Token{AccessToken: access, Expiry: m.clock.Now().Add(ttl)}
	if err := m.cache.Store(t); err != nil {
		return Token{}, ruddit.E(ruddit.ErrPersistence, "auth.RefreshServiceToken", fmt.Errorf("caching token: %w", err))
	}
	m.logger.Info("service token refreshed", "expires_at", t.Expiry.UTC().Format(time.RFC3339))
	return t, nil
}

// UserToken performs a password exchange for the given account. The result is not cached.
func (m *Manager) UserToken(ctx context.Context, client *ClientCredentials, user *UserCredentials) (string, error) {
	const op = "auth.UserToken"
	if !client.complete() {
		return "", ruddit.E(ruddit.ErrCredential, op, errors.New("client id and secret are required"))
	}
	if !user.complete() {
		return "", ruddit.E(ruddit.ErrCredential, op, errors.New("username and password are required"))
	}

	tok, err := m.oauthConfig(client).PasswordCredentialsToken(m.context(ctx), user.Username, user.Password)
	if err != nil {
		return "", classify(op, err)
	}
	return tok.AccessToken, nil
}

// AuthCodeURL returns the consent page for the interactive grant. The grant is
// requested as permanent so a refresh token is issued.
func (m *Manager) AuthCodeURL(client *ClientCredentials, state string) (string, error) {
	if !client.complete() {
		return "", ruddit.E(ruddit.ErrCredential, "auth.AuthCodeURL", errors.New("client id and secret are required"))
	}
	return m.oauthConfig(client).AuthCodeURL(state, oauth2.SetAuthURLParam("duration", "permanent")), nil
}

// Exchange trades an authorization code for a user token and caches it with its refresh token.
func (m *Manager) Exchange(ctx context.Context, client *ClientCredentials, code string) (Token, error) {
	const op = "auth.Exchange"
	if !client.complete() {
		return Token{}, ruddit.E(ruddit.ErrCredential, op, errors.New("client id and secret are required"))
	}
	if code == "" {
		return Token{}, ruddit.E(ruddit.ErrCredential, op, errors.New("authorization code is empty"))
	}

	tok, err := m.oauthConfig(client).Exchange(m.context(ctx), code)
	if err != nil {
		return Token{}, classify(op, err)
	}

	t := Token{
		AccessToken:  tok.AccessToken,
		Expiry:       m.clock.Now().Add(lifetime(tok)),
		RefreshToken: tok.RefreshToken,
	}
	if err := m.cache.StoreUser(t); err != nil {
		return Token{}, ruddit.E(ruddit.ErrPersistence, op, fmt.Errorf("caching user token: %w", err))
	}
	return t, nil
}

// RefreshUserToken uses the stored refresh token to obtain a new user access token.
func (m *Manager) RefreshUserToken(ctx context.Context, client *ClientCredentials) (string, error) {
	const op = "auth.RefreshUserToken"
	if !client.complete() {
		return "", ruddit.E(ruddit.ErrCredential, op, errors.New("client id and secret are required"))
	}

	stored, err := m.cache.LoadUser()
	if err != nil {
		return "", ruddit.E(ruddit.ErrPersistence, op, fmt.Errorf("reading user token: %w", err))
	}
	if stored.RefreshToken == "" {
		return "", ruddit.E(ruddit.ErrCredential, op, errors.New("no refresh token stored; run `ruddit auth login`"))
	}

	src := m.oauthConfig(client).TokenSource(m.context(ctx), &oauth2.Token{RefreshToken: stored.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return "", classify(op, err)
	}

	t := Token{
		AccessToken:  tok.AccessToken,
		Expiry:       m.clock.Now().Add(lifetime(tok)),
		RefreshToken: tok.RefreshToken,
	}
	if t.RefreshToken == "" {
		t.RefreshToken = stored.RefreshToken
	}
	if err := m.cache.StoreUser(t); err != nil {
		return "", ruddit.E(ruddit.ErrPersistence, op, fmt.Errorf("caching user token: %w", err))
	}
	m.logger.Info("user token refreshed", "expires_at", t.Expiry.UTC().Format(time.RFC3339))
	return t.AccessToken, nil
}

// UserAccessToken returns the cached interactive-grant token, refreshing it with the
// same margin as the service token.
func (m *Manager) UserAccessToken(ctx context.Context, client *ClientCredentials) (string, error) {
	if t, ok := m.cached(m.cache.LoadUser); ok {
		return t.AccessToken, nil
	}

	v, err, _ := m.group.Do("user", func() (any, error) {
		if t, ok := m.cached(m.cache.LoadUser); ok {
			return t.AccessToken, nil
		}
		return m.RefreshUserToken(ctx, client)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// UserTokenStatus returns the cached user token without refreshing it.
func (m *Manager) UserTokenStatus() (Token, error) {
	return m.cache.LoadUser()
}

// ServiceTokenStatus returns the cached service token without refreshing it.
func (m *Manager) ServiceTokenStatus() (Token, error) {
	return m.cache.Load()
}

func (m *Manager) cached(load func() (Token, error)) (Token, bool) {
	t, err := load()
	if err != nil {
		m.logger.Warn("reading cached token", "error", err)
		return Token{}, false
	}
	return t, t.Usable(m.clock.Now())
}

func (m *Manager) oauthConfig(client *ClientCredentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     client.ID,
		ClientSecret: client.Secret,
		RedirectURL:  m.redirectURL,
		Scopes:       m.scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   m.authURL,
			TokenURL:  m.tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

func (m *Manager) context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

// lifetime is the token's declared lifetime, falling back to the library's
// computed expiry when expires_in was not reported.
func lifetime(tok *oauth2.Token) time.Duration {
	if tok.ExpiresIn > 0 {
		return time.Duration(tok.ExpiresIn) * time.Second
	}
	if !tok.Expiry.IsZero() {
		return time.Until(tok.Expiry)
	}
	return 0
}

// classify maps token endpoint failures onto the error taxonomy.
func classify(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		status := 0
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		switch {
		case re.ErrorCode == "unauthorized_client":
			return ruddit.E(ruddit.ErrAuthRejected, op,
				fmt.Errorf("application is not allowed this grant type; check the app type in your app preferences: %w", err))
		case re.ErrorCode != "":
			return ruddit.E(ruddit.ErrAuthRejected, op, fmt.Errorf("%s: %w", re.ErrorCode, err))
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return ruddit.E(ruddit.ErrAuthRejected, op, err)
		default:
			return ruddit.E(ruddit.ErrTransport, op, err)
		}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ruddit.E(ruddit.ErrTransport, op, err)
	}
	return ruddit.E(ruddit.ErrParse, op, err)
}
