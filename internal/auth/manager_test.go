package auth_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ruddit-go/internal/auth"
	"ruddit-go/internal/ruddit"
	"ruddit-go/internal/testutil"
)

// tokenServer is a fake token endpoint. respond decides the reply for each request.
type tokenServer struct {
	*httptest.Server
	requests atomic.Int32
	mu       sync.Mutex
	last     url.Values
	agent    string
	basic    [2]string
}

func newTokenServer(t *testing.T, respond func(w http.ResponseWriter, form url.Values)) *tokenServer {
	t.Helper()
	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.requests.Add(1)
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user, pass, _ := r.BasicAuth()
		ts.mu.Lock()
		ts.last = r.PostForm
		ts.agent = r.UserAgent()
		ts.basic = [2]string{user, pass}
		ts.mu.Unlock()
		respond(w, r.PostForm)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// seen returns the form, User-Agent and basic auth pair of the most recent request.
func (ts *tokenServer) seen() (url.Values, string, [2]string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.last, ts.agent, ts.basic
}

func jsonToken(access string, expiresIn int) func(http.ResponseWriter, url.Values) {
	return func(w http.ResponseWriter, _ url.Values) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"token_type":"bearer","expires_in":%d,"scope":"*"}`, access, expiresIn)
	}
}

func jsonError(status int, code string) func(http.ResponseWriter, url.Values) {
	return func(w http.ResponseWriter, _ url.Values) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":%q}`, code)
	}
}

var testClient = &auth.ClientCredentials{ID: "client-id", Secret: "client-secret"}

func newTestManager(ts *tokenServer, cache auth.TokenCache, clock ruddit.Clock) *auth.Manager {
	return auth.NewManager(auth.Options{
		TokenURL:  ts.URL,
		AuthURL:   ts.URL + "/authorize",
		UserAgent: "ruddit-test/1.0",
		Cache:     cache,
		Clock:     clock,
	})
}

func TestManager_ServiceToken(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("unused", 3600))
		m := newTestManager(ts, nil, testutil.FixedClock())

		for _, creds := range []*auth.ClientCredentials{nil, {ID: "id"}, {Secret: "secret"}} {
			_, _, err := m.ServiceToken(context.Background(), creds)
			if !errors.Is(err, ruddit.ErrCredential) {
				t.Errorf("ServiceToken(%v) error = %v, want ErrCredential", creds, err)
			}
		}
		if n := ts.requests.Load(); n != 0 {
			t.Errorf("requests = %d, want 0", n)
		}
	})

	t.Run("client credentials exchange", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("svc-token", 86400))
		m := newTestManager(ts, nil, testutil.FixedClock())

		token, ttl, err := m.ServiceToken(context.Background(), testClient)
		if err != nil {
			t.Fatalf("ServiceToken() error = %v", err)
		}
		if token != "svc-token" {
			t.Errorf("token = %q, want %q", token, "svc-token")
		}
		if ttl != 86400*time.Second {
			t.Errorf("ttl = %v, want %v", ttl, 86400*time.Second)
		}
		form, agent, basic := ts.seen()
		if got := form.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want %q", got, "client_credentials")
		}
		if basic != [2]string{"client-id", "client-secret"} {
			t.Errorf("basic auth = %v, want client-id/client-secret", basic)
		}
		if agent != "ruddit-test/1.0" {
			t.Errorf("User-Agent = %q, want %q", agent, "ruddit-test/1.0")
		}
	})

	t.Run("upstream failures", func(t *testing.T) {
		tests := []struct {
			name    string
			respond func(http.ResponseWriter, url.Values)
			want    error
		}{
			{"unauthorized status", jsonError(http.StatusUnauthorized, "invalid_client"), ruddit.ErrAuthRejected},
			{"server error", func(w http.ResponseWriter, _ url.Values) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}, ruddit.ErrTransport},
			{"missing access token", func(w http.ResponseWriter, _ url.Values) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"token_type":"bearer"}`)
			}, ruddit.ErrParse},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ts := newTokenServer(t, tt.respond)
				m := newTestManager(ts, nil, testutil.FixedClock())

				_, _, err := m.ServiceToken(context.Background(), testClient)
				if !errors.Is(err, tt.want) {
					t.Errorf("ServiceToken() error = %v, want %v", err, tt.want)
				}
			})
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("x", 1))
		m := newTestManager(ts, nil, testutil.FixedClock())
		ts.Close()

		_, _, err := m.ServiceToken(context.Background(), testClient)
		if !errors.Is(err, ruddit.ErrTransport) {
			t.Errorf("ServiceToken() error = %v, want ErrTransport", err)
		}
	})
}

func TestManager_Token(t *testing.T) {
	tests := []struct {
		name         string
		cached       string
		expiresIn    time.Duration
		wantToken    string
		wantRequests int32
	}{
		{"empty cache", "", 0, "fresh", 1},
		{"expires in 30s", "old", 30 * time.Second, "fresh", 1},
		{"expires in exactly 60s", "old", 60 * time.Second, "fresh", 1},
		{"expires in 61s", "old", 61 * time.Second, "old", 0},
		{"expires in an hour", "old", time.Hour, "old", 0},
		{"already expired", "old", -time.Minute, "fresh", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTokenServer(t, jsonToken("fresh", 3600))
			clock := testutil.FixedClock()
			cache := auth.NewMemoryCache()
			cache.Store(auth.Token{AccessToken: tt.cached, Expiry: clock.Now().Add(tt.expiresIn)})
			m := newTestManager(ts, cache, clock)

			got, err := m.Token(context.Background(), testClient)
			if err != nil {
				t.Fatalf("Token() error = %v", err)
			}
			if got != tt.wantToken {
				t.Errorf("Token() = %q, want %q", got, tt.wantToken)
			}
			if n := ts.requests.Load(); n != tt.wantRequests {
				t.Errorf("requests = %d, want %d", n, tt.wantRequests)
			}
		})
	}

	t.Run("persists absolute expiry", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("fresh", 3600))
		clock := testutil.FixedClock()
		cache := auth.NewMemoryCache()
		m := newTestManager(ts, cache, clock)

		if _, err := m.Token(context.Background(), testClient); err != nil {
			t.Fatalf("Token() error = %v", err)
		}
		stored, _ := cache.Load()
		want := clock.Now().Add(time.Hour)
		if !stored.Expiry.Equal(want) {
			t.Errorf("stored expiry = %v, want %v", stored.Expiry, want)
		}
		if stored.AccessToken != "fresh" {
			t.Errorf("stored token = %q, want %q", stored.AccessToken, "fresh")
		}
	})

	t.Run("valid cache needs no credentials", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("fresh", 3600))
		clock := testutil.FixedClock()
		cache := auth.NewMemoryCache()
		cache.Store(auth.Token{AccessToken: "cached", Expiry: clock.Now().Add(time.Hour)})
		m := newTestManager(ts, cache, clock)

		got, err := m.Token(context.Background(), nil)
		if err != nil {
			t.Fatalf("Token() error = %v", err)
		}
		if got != "cached" {
			t.Errorf("Token() = %q, want %q", got, "cached")
		}
	})

	t.Run("concurrent callers share one exchange", func(t *testing.T) {
		ts := newTokenServer(t, func(w http.ResponseWriter, form url.Values) {
			time.Sleep(20 * time.Millisecond)
			jsonToken("shared", 3600)(w, form)
		})
		m := newTestManager(ts, auth.NewMemoryCache(), testutil.FixedClock())

		var wg sync.WaitGroup
		tokens := make([]string, 8)
		errs := make([]error, 8)
		for i := range tokens {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tokens[i], errs[i] = m.Token(context.Background(), testClient)
			}(i)
		}
		wg.Wait()

		for i := range tokens {
			if errs[i] != nil {
				t.Errorf("Token() error = %v", errs[i])
			}
			if tokens[i] != "shared" {
				t.Errorf("Token() = %q, want %q", tokens[i], "shared")
			}
		}
		if n := ts.requests.Load(); n != 1 {
			t.Errorf("requests = %d, want 1", n)
		}
	})
}

func TestManager_RefreshServiceToken(t *testing.T) {
	ts := newTokenServer(t, jsonToken("fresh", 3600))
	clock := testutil.FixedClock()
	cache := auth.NewMemoryCache()
	cache.Store(auth.Token{AccessToken: "old", Expiry: clock.Now().Add(time.Hour)})
	m := newTestManager(ts, cache, clock)

	got, err := m.RefreshServiceToken(context.Background(), testClient)
	if err != nil {
		t.Fatalf("RefreshServiceToken() error = %v", err)
	}
	if got.AccessToken != "fresh" {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, "fresh")
	}
	if want := clock.Now().Add(time.Hour); !got.Expiry.Equal(want) {
		t.Errorf("Expiry = %v, want %v", got.Expiry, want)
	}
	if stored, _ := cache.Load(); stored.AccessToken != "fresh" {
		t.Errorf("cached token = %q, want %q", stored.AccessToken, "fresh")
	}
	if n := ts.requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestManager_UserToken(t *testing.T) {
	t.Run("missing inputs", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("unused", 3600))
		m := newTestManager(ts, nil, testutil.FixedClock())

		tests := []struct {
			name   string
			client *auth.ClientCredentials
			user   *auth.UserCredentials
		}{
			{"no client", nil, &auth.UserCredentials{Username: "u", Password: "p"}},
			{"no user", testClient, nil},
			{"empty password", testClient, &auth.UserCredentials{Username: "u"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := m.UserToken(context.Background(), tt.client, tt.user)
				if !errors.Is(err, ruddit.ErrCredential) {
					t.Errorf("UserToken() error = %v, want ErrCredential", err)
				}
			})
		}
	})

	t.Run("password grant", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("user-token", 3600))
		m := newTestManager(ts, nil, testutil.FixedClock())

		got, err := m.UserToken(context.Background(), testClient, &auth.UserCredentials{Username: "alice", Password: "hunter2"})
		if err != nil {
			t.Fatalf("UserToken() error = %v", err)
		}
		if got != "user-token" {
			t.Errorf("UserToken() = %q, want %q", got, "user-token")
		}
		form, _, _ := ts.seen()
		if form.Get("grant_type") != "password" || form.Get("username") != "alice" || form.Get("password") != "hunter2" {
			t.Errorf("form = %v, want password grant for alice", form)
		}
	})

	t.Run("unauthorized client is rejected", func(t *testing.T) {
		ts := newTokenServer(t, jsonError(http.StatusBadRequest, "unauthorized_client"))
		m := newTestManager(ts, nil, testutil.FixedClock())

		_, err := m.UserToken(context.Background(), testClient, &auth.UserCredentials{Username: "u", Password: "p"})
		if !errors.Is(err, ruddit.ErrAuthRejected) {
			t.Fatalf("UserToken() error = %v, want ErrAuthRejected", err)
		}
		if !strings.Contains(err.Error(), "app type") {
			t.Errorf("error %q does not explain the configuration mistake", err)
		}
	})

	t.Run("error body with 200 status is rejected", func(t *testing.T) {
		ts := newTokenServer(t, jsonError(http.StatusOK, "invalid_grant"))
		m := newTestManager(ts, nil, testutil.FixedClock())

		_, err := m.UserToken(context.Background(), testClient, &auth.UserCredentials{Username: "u", Password: "wrong"})
		if !errors.Is(err, ruddit.ErrAuthRejected) {
			t.Errorf("UserToken() error = %v, want ErrAuthRejected", err)
		}
	})
}

func TestManager_InteractiveGrant(t *testing.T) {
	t.Run("consent url", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("unused", 3600))
		m := auth.NewManager(auth.Options{
			TokenURL:    ts.URL,
			AuthURL:     "https://auth.example/authorize",
			RedirectURL: "http://localhost:8765/callback",
		})

		raw, err := m.AuthCodeURL(testClient, "state-1")
		if err != nil {
			t.Fatalf("AuthCodeURL() error = %v", err)
		}
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("url.Parse() error = %v", err)
		}
		q := u.Query()
		checks := map[string]string{
			"client_id":     "client-id",
			"state":         "state-1",
			"duration":      "permanent",
			"response_type": "code",
			"scope":         "identity read submit",
			"redirect_uri":  "http://localhost:8765/callback",
		}
		for k, want := range checks {
			if got := q.Get(k); got != want {
				t.Errorf("%s = %q, want %q", k, got, want)
			}
		}

		if _, err := m.AuthCodeURL(nil, "s"); !errors.Is(err, ruddit.ErrCredential) {
			t.Errorf("AuthCodeURL(nil) error = %v, want ErrCredential", err)
		}
	})

	t.Run("exchange then refresh", func(t *testing.T) {
		ts := newTokenServer(t, func(w http.ResponseWriter, form url.Values) {
			w.Header().Set("Content-Type", "application/json")
			switch form.Get("grant_type") {
			case "authorization_code":
				fmt.Fprint(w, `{"access_token":"first","refresh_token":"refresh-1","token_type":"bearer","expires_in":3600}`)
			case "refresh_token":
				if form.Get("refresh_token") != "refresh-1" {
					w.WriteHeader(http.StatusBadRequest)
					fmt.Fprint(w, `{"error":"invalid_grant"}`)
					return
				}
				fmt.Fprint(w, `{"access_token":"second","token_type":"bearer","expires_in":3600}`)
			}
		})
		clock := testutil.FixedClock()
		cache := auth.NewMemoryCache()
		m := newTestManager(ts, cache, clock)

		tok, err := m.Exchange(context.Background(), testClient, "code-xyz")
		if err != nil {
			t.Fatalf("Exchange() error = %v", err)
		}
		if tok.RefreshToken != "refresh-1" {
			t.Errorf("RefreshToken = %q, want %q", tok.RefreshToken, "refresh-1")
		}

		got, err := m.UserAccessToken(context.Background(), testClient)
		if err != nil {
			t.Fatalf("UserAccessToken() error = %v", err)
		}
		if got != "first" {
			t.Errorf("UserAccessToken() = %q, want %q", got, "first")
		}

		clock.Advance(time.Hour)
		got, err = m.UserAccessToken(context.Background(), testClient)
		if err != nil {
			t.Fatalf("UserAccessToken() after expiry error = %v", err)
		}
		if got != "second" {
			t.Errorf("UserAccessToken() = %q, want %q", got, "second")
		}

		stored, _ := cache.LoadUser()
		if stored.RefreshToken != "refresh-1" {
			t.Errorf("refresh token after refresh = %q, want it kept", stored.RefreshToken)
		}
	})

	t.Run("refresh without stored token", func(t *testing.T) {
		ts := newTokenServer(t, jsonToken("unused", 3600))
		m := newTestManager(ts, auth.NewMemoryCache(), testutil.FixedClock())

		_, err := m.RefreshUserToken(context.Background(), testClient)
		if !errors.Is(err, ruddit.ErrCredential) {
			t.Errorf("RefreshUserToken() error = %v, want ErrCredential", err)
		}
	})
}

func TestProvider(t *testing.T) {
	ts := newTokenServer(t, func(w http.ResponseWriter, form url.Values) {
		jsonToken(form.Get("grant_type"), 3600)(w, form)
	})
	m := newTestManager(ts, auth.NewMemoryCache(), testutil.FixedClock())

	p := auth.NewProvider(m, testClient, &auth.UserCredentials{Username: "u", Password: "p"})

	svc, err := p.ServiceToken(context.Background())
	if err != nil {
		t.Fatalf("ServiceToken() error = %v", err)
	}
	if svc != "client_credentials" {
		t.Errorf("ServiceToken() = %q, want client credentials grant", svc)
	}

	user, err := p.UserToken(context.Background())
	if err != nil {
		t.Fatalf("UserToken() error = %v", err)
	}
	if user != "password" {
		t.Errorf("UserToken() = %q, want password grant", user)
	}

	noUser := auth.NewProvider(m, testClient, nil)
	if _, err := noUser.UserToken(context.Background()); !errors.Is(err, ruddit.ErrCredential) {
		t.Errorf("UserToken() without account or refresh token error = %v, want ErrCredential", err)
	}
}
