package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/inventoryhub/backend/internal/domain/connector"
)

// Token is the provider-neutral result of a code exchange or refresh
type Token struct {
	AccessToken  string
	RefreshToken string
	// InstanceURL is only set by providers that route API calls to a
	// per-account host (Salesforce).
	InstanceURL string
	ExpiresAt   time.Time
}

// Flow drives the authorization-code dance for one provider. Every provider
// goes through the same three steps; only endpoints, scopes and response
// extras differ.
type Flow interface {
	Provider() connector.Provider

	// AuthCodeURL builds the provider's consent page URL carrying the
	// CSRF state token.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for tokens
	Exchange(ctx context.Context, code string) (*Token, error)

	// Refresh obtains a fresh access token. When the provider omits a new
	// refresh token, the one passed in is carried over.
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}

// Registry holds the configured provider flows
type Registry struct {
	flows map[connector.Provider]Flow
}

// NewRegistry creates a registry from the given flows
func NewRegistry(flows ...Flow) *Registry {
	r := &Registry{flows: make(map[connector.Provider]Flow, len(flows))}
	for _, f := range flows {
		r.flows[f.Provider()] = f
	}
	return r
}

// Get returns the flow for a provider
func (r *Registry) Get(provider connector.Provider) (Flow, bool) {
	f, ok := r.flows[provider]
	return f, ok
}

// GenerateState produces an unguessable CSRF state token
func GenerateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
