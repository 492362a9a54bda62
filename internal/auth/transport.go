package auth

import "net/http"

// userAgentTransport stamps every outgoing request with a fixed User-Agent.
// The token endpoint throttles requests that use a generic one.
type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}

// WithUserAgent returns a copy of client whose requests carry agent.
// A nil client is treated as a zero http.Client.
func WithUserAgent(client *http.Client, agent string) *http.Client {
	var c http.Client
	if client != nil {
		c = *client
	}
	if agent == "" {
		return &c
	}
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.Transport = &userAgentTransport{base: base, agent: agent}
	return &c
}
