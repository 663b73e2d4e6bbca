package oauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/infrastructure/config"
	"golang.org/x/oauth2"
)

// salesforceScopes: api for REST calls, refresh_token for offline access
var salesforceScopes = []string{
	"api",
	"refresh_token",
}

// SalesforceFlow implements the authorization-code flow against Salesforce.
// The login host is configurable so sandboxes (test.salesforce.com) work.
type SalesforceFlow struct {
	config *oauth2.Config
}

// NewSalesforceFlow creates the Salesforce flow from app credentials and
// the login host
func NewSalesforceFlow(cfg config.OAuthProviderConfig, loginURL string) *SalesforceFlow {
	base := strings.TrimRight(loginURL, "/")
	return &SalesforceFlow{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       salesforceScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + "/services/oauth2/authorize",
				TokenURL: base + "/services/oauth2/token",
			},
		},
	}
}

// Provider identifies this flow
func (f *SalesforceFlow) Provider() connector.Provider {
	return connector.ProviderSalesforce
}

// AuthCodeURL builds the consent URL carrying the CSRF state token
func (f *SalesforceFlow) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens. Salesforce returns the
// per-org API host as instance_url alongside the tokens.
func (f *SalesforceFlow) Exchange(ctx context.Context, code string) (*Token, error) {
	tok, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("salesforce token exchange: %w", err)
	}
	return f.buildToken(tok, ""), nil
}

// Refresh obtains a fresh access token. Salesforce does not rotate refresh
// tokens, so the one passed in is carried over.
func (f *SalesforceFlow) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	tok, err := f.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("salesforce token refresh: %w", err)
	}
	return f.buildToken(tok, refreshToken), nil
}

func (f *SalesforceFlow) buildToken(tok *oauth2.Token, previousRefreshToken string) *Token {
	refreshToken := tok.RefreshToken
	if refreshToken == "" {
		refreshToken = previousRefreshToken
	}

	instanceURL := ""
	if v, ok := tok.Extra("instance_url").(string); ok {
		instanceURL = v
	}

	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: refreshToken,
		InstanceURL:  instanceURL,
		ExpiresAt:    tok.Expiry,
	}
}

// Ensure SalesforceFlow implements Flow
var _ Flow = (*SalesforceFlow)(nil)
