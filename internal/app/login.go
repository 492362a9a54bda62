package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"ruddit-go/internal/auth"
	"ruddit-go/internal/ruddit"
)

// TokenStatus describes one cached token for `ruddit auth status`.
type TokenStatus struct {
	Kind    string // "service" or "user"
	Present bool
	Expiry  time.Time
	Refresh bool // a refresh token is stored
	Usable  bool
}

// AuthStatus reports the cached tokens without contacting the server.
func (a *RudditApp) AuthStatus() ([]TokenStatus, error) {
	now := a.clock.Now()
	svc, err := a.auth.ServiceTokenStatus()
	if err != nil {
		return nil, err
	}
	user, err := a.auth.UserTokenStatus()
	if err != nil {
		return nil, err
	}
	return []TokenStatus{
		{Kind: "service", Present: svc.AccessToken != "", Expiry: svc.Expiry, Usable: svc.Usable(now)},
		{Kind: "user", Present: user.AccessToken != "", Expiry: user.Expiry, Refresh: user.RefreshToken != "", Usable: user.Usable(now)},
	}, nil
}

// RefreshServiceToken forces a new client-credentials token and caches it.
func (a *RudditApp) RefreshServiceToken(ctx context.Context) (time.Duration, error) {
	t, err := a.auth.RefreshServiceToken(ctx, a.cfg.ClientCredentials())
	if err != nil {
		return 0, err
	}
	return t.Expiry.Sub(a.clock.Now()), nil
}

// CheckUserToken verifies the configured account credentials with a password exchange.
func (a *RudditApp) CheckUserToken(ctx context.Context) error {
	_, err := a.auth.UserToken(ctx, a.cfg.ClientCredentials(), a.cfg.UserCredentials())
	return err
}

// Login runs the interactive authorization-code grant. It listens on the
// configured redirect URL, hands the consent URL to open, and waits for the
// browser to come back with a code.
func (a *RudditApp) Login(ctx context.Context, open func(consentURL string)) (auth.Token, error) {
	const op = "app.Login"
	if a.cfg.Reddit.RedirectURL == "" {
		return auth.Token{}, ruddit.E(ruddit.ErrCredential, op, errors.New("reddit.redirect_url is not configured"))
	}
	redirect, err := url.Parse(a.cfg.Reddit.RedirectURL)
	if err != nil {
		return auth.Token{}, fmt.Errorf("parsing redirect url: %w", err)
	}

	state := ruddit.UUIDGenerator{}.New()
	consent, err := a.auth.AuthCodeURL(a.cfg.ClientCredentials(), state)
	if err != nil {
		return auth.Token{}, err
	}

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return auth.Token{}, fmt.Errorf("listening on %s: %w", redirect.Host, err)
	}

	codes := make(chan string, 1)
	errs := make(chan error, 1)
	mux := http.NewServeMux()
	path := redirect.Path
	if path == "" {
		path = "/"
	}
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("error") != "":
			http.Error(w, "authorization denied", http.StatusForbidden)
			sendErr(errs, ruddit.E(ruddit.ErrAuthRejected, op, fmt.Errorf("authorization denied: %s", q.Get("error"))))
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			sendErr(errs, ruddit.E(ruddit.ErrCredential, op, errors.New("state mismatch in redirect")))
		default:
			fmt.Fprintln(w, "ruddit is authorized. You can close this window.")
			select {
			case codes <- q.Get("code"):
			default:
			}
		}
	})
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(ln)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	a.log.Info("waiting for authorization", "redirect", a.cfg.Reddit.RedirectURL)
	open(consent)

	select {
	case <-ctx.Done():
		return auth.Token{}, ctx.Err()
	case err := <-errs:
		return auth.Token{}, err
	case code := <-codes:
		return a.auth.Exchange(ctx, a.cfg.ClientCredentials(), code)
	}
}

func sendErr(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
	}
}
