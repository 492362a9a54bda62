package auth

import (
	"context"

	"ruddit-go/internal/ruddit"
)

// Provider binds a Manager to configured credentials so the service layer can ask
// for tokens without handling secrets.
type Provider struct {
	manager *Manager
	client  *ClientCredentials
	user    *UserCredentials
}

func NewProvider(manager *Manager, client *ClientCredentials, user *UserCredentials) *Provider {
	return &Provider{manager: manager, client: client, user: user}
}

func (p *Provider) ServiceToken(ctx context.Context) (string, error) {
	return p.manager.Token(ctx, p.client)
}

// UserToken uses the password grant when account credentials are configured and
// the interactive grant's cached token otherwise.
func (p *Provider) UserToken(ctx context.Context) (string, error) {
	if p.user != nil {
		return p.manager.UserToken(ctx, p.client, p.user)
	}
	return p.manager.UserAccessToken(ctx, p.client)
}

var _ ruddit.TokenProvider = (*Provider)(nil)
