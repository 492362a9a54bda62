package testutil

import (
	"context"
	"sync"

	"ruddit-go/internal/ruddit"
)

// StubTokens is a ruddit.TokenProvider that hands out fixed tokens.
// Setting Err makes both methods fail with it.
type StubTokens struct {
	Service string
	User    string
	Err     error

	mu           sync.Mutex
	serviceCalls int
	userCalls    int
}

var _ ruddit.TokenProvider = (*StubTokens)(nil)

// NewStubTokens returns a provider handing out "service-token" and "user-token".
func NewStubTokens() *StubTokens {
	return &StubTokens{Service: "service-token", User: "user-token"}
}

func (s *StubTokens) ServiceToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serviceCalls++
	return s.Service, s.Err
}

func (s *StubTokens) UserToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userCalls++
	return s.User, s.Err
}

// Calls returns how often each token was requested.
func (s *StubTokens) Calls() (service, user int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serviceCalls, s.userCalls
}
