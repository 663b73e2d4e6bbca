package oauth

import (
	"context"
	"fmt"

	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/infrastructure/config"
	"golang.org/x/oauth2"
)

// Microsoft identity platform endpoints (common tenant)
const (
	microsoftAuthURL = "https://login.microsoftonline.com/common/oauth2/v2.0/authorize"
	//nolint:gosec // OAuth endpoint URL, not a credential
	microsoftTokenURL = "https://login.microsoftonline.com/common/oauth2/v2.0/token"
)

// microsoftScopes requests Graph file access for ticket uploads plus
// offline_access so a refresh token is issued.
var microsoftScopes = []string{
	"offline_access",
	"User.Read",
	"Files.ReadWrite",
}

// MicrosoftFlow implements the authorization-code flow against the
// Microsoft identity platform
type MicrosoftFlow struct {
	config *oauth2.Config
}

// NewMicrosoftFlow creates the Microsoft flow from app credentials
func NewMicrosoftFlow(cfg config.OAuthProviderConfig) *MicrosoftFlow {
	return newMicrosoftFlow(cfg, oauth2.Endpoint{
		AuthURL:  microsoftAuthURL,
		TokenURL: microsoftTokenURL,
	})
}

func newMicrosoftFlow(cfg config.OAuthProviderConfig, endpoint oauth2.Endpoint) *MicrosoftFlow {
	return &MicrosoftFlow{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       microsoftScopes,
			Endpoint:     endpoint,
		},
	}
}

// Provider identifies this flow
func (f *MicrosoftFlow) Provider() connector.Provider {
	return connector.ProviderMicrosoft
}

// AuthCodeURL builds the consent URL. response_mode=query makes Microsoft
// return the code as a query parameter on the redirect.
func (f *MicrosoftFlow) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_mode", "query"),
	)
}

// Exchange trades an authorization code for tokens
func (f *MicrosoftFlow) Exchange(ctx context.Context, code string) (*Token, error) {
	tok, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("microsoft token exchange: %w", err)
	}
	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}, nil
}

// Refresh obtains a fresh access token. Microsoft rotates refresh tokens
// but may omit one; the previous token is kept in that case.
func (f *MicrosoftFlow) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	tok, err := f.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("microsoft token refresh: %w", err)
	}

	newRefreshToken := tok.RefreshToken
	if newRefreshToken == "" {
		newRefreshToken = refreshToken
	}
	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    tok.Expiry,
	}, nil
}

// Ensure MicrosoftFlow implements Flow
var _ Flow = (*MicrosoftFlow)(nil)
