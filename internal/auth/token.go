package auth

import (
	"sync"
	"time"
)

// RefreshMargin is how close to expiry a cached token may get before it is replaced.
// A token expiring in exactly RefreshMargin is refreshed.
const RefreshMargin = 60 * time.Second

// Token is an access token with its absolute expiry. RefreshToken is only set for
// tokens obtained through the interactive grant.
type Token struct {
	AccessToken  string
	Expiry       time.Time
	RefreshToken string
}

// Usable reports whether the token can be used at now without a refresh.
func (t Token) Usable(now time.Time) bool {
	return t.AccessToken != "" && t.Expiry.Sub(now) > RefreshMargin
}

// TokenCache persists tokens between runs. Load on an empty cache returns a zero Token.
type TokenCache interface {
	Load() (Token, error)
	Store(Token) error
	LoadUser() (Token, error)
	StoreUser(Token) error
}

// MemoryCache keeps tokens for the life of the process.
type MemoryCache struct {
	mu      sync.Mutex
	service Token
	user    Token
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Load() (Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.service, nil
}

func (c *MemoryCache) Store(t Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.service = t
	return nil
}

func (c *MemoryCache) LoadUser() (Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, nil
}

func (c *MemoryCache) StoreUser(t Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = t
	return nil
}

var _ TokenCache = (*MemoryCache)(nil)
