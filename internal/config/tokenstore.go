package config

import (
	"fmt"
	"sync"
	"time"

	"ruddit-go/internal/auth"
)

// TokenStore is an auth.TokenCache backed by the [reddit] section of the config file.
// Writes re-read the file and touch only the token fields, so values that came from
// the environment are never persisted.
type TokenStore struct {
	mu   sync.Mutex
	path string
	cfg  *Config
}

// NewTokenStore caches tokens in cfg and, when path is non-empty, writes them back to path.
func NewTokenStore(path string, cfg *Config) *TokenStore {
	return &TokenStore{path: path, cfg: cfg}
}

func (s *TokenStore) Load() (auth.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return auth.Token{
		AccessToken: s.cfg.Reddit.AccessToken,
		Expiry:      fromUnix(s.cfg.Reddit.TokenExpiresAt),
	}, nil
}

func (s *TokenStore) Store(t auth.Token) error {
	return s.update(func(r *RedditConfig) {
		r.AccessToken = t.AccessToken
		r.TokenExpiresAt = t.Expiry.Unix()
	})
}

func (s *TokenStore) LoadUser() (auth.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return auth.Token{
		AccessToken:  s.cfg.Reddit.UserAccessToken,
		Expiry:       fromUnix(s.cfg.Reddit.UserTokenExpiresAt),
		RefreshToken: s.cfg.Reddit.RefreshToken,
	}, nil
}

func (s *TokenStore) StoreUser(t auth.Token) error {
	return s.update(func(r *RedditConfig) {
		r.UserAccessToken = t.AccessToken
		r.UserTokenExpiresAt = t.Expiry.Unix()
		r.RefreshToken = t.RefreshToken
	})
}

func (s *TokenStore) update(apply func(*RedditConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.cfg.Reddit)
	if s.path == "" {
		return nil
	}

	if err := Update(s.path, func(c *Config) { apply(&c.Reddit) }); err != nil {
		return fmt.Errorf("token write-back: %w", err)
	}
	return nil
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

var _ auth.TokenCache = (*TokenStore)(nil)
