package connector

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/inventoryhub/backend/internal/infrastructure/oauth"
	"go.uber.org/zap"
)

// ConnectService manages per-user OAuth2 connections to external providers.
// Tokens live in the database, one row per (user, provider).
type ConnectService struct {
	flows          *oauth.Registry
	credentialRepo connector.CredentialRepository
	logger         *zap.Logger
}

// NewConnectService creates a new connect service
func NewConnectService(
	flows *oauth.Registry,
	credentialRepo connector.CredentialRepository,
	logger *zap.Logger,
) *ConnectService {
	return &ConnectService{
		flows:          flows,
		credentialRepo: credentialRepo,
		logger:         logger,
	}
}

// BeginConnect starts the authorization-code flow for a provider
func (s *ConnectService) BeginConnect(ctx context.Context, provider connector.Provider) (*BeginConnectResult, error) {
	flow, ok := s.flows.Get(provider)
	if !ok {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Unknown provider")
	}

	state, err := oauth.GenerateState()
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start connection")
	}

	return &BeginConnectResult{
		AuthURL: flow.AuthCodeURL(state),
		State:   state,
	}, nil
}

// CompleteConnect exchanges the authorization code and stores the tokens.
// Reconnecting an already connected provider replaces the stored tokens.
func (s *ConnectService) CompleteConnect(ctx context.Context, input CompleteConnectInput) error {
	flow, ok := s.flows.Get(input.Provider)
	if !ok {
		return shared.NewDomainError("INVALID_PROVIDER", "Unknown provider")
	}

	token, err := flow.Exchange(ctx, input.Code)
	if err != nil {
		s.logger.Warn("Token exchange failed",
			zap.String("provider", string(input.Provider)),
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return shared.NewDomainError("UPSTREAM_ERROR", "Token exchange with the provider failed")
	}

	credential, err := s.credentialRepo.FindByUserAndProvider(ctx, input.UserID, input.Provider)
	switch {
	case err == nil:
		if err := credential.UpdateTokens(token.AccessToken, token.RefreshToken, token.InstanceURL, token.ExpiresAt); err != nil {
			return err
		}
	default:
		credential, err = connector.NewCredential(input.UserID, input.Provider,
			token.AccessToken, token.RefreshToken, token.InstanceURL, token.ExpiresAt)
		if err != nil {
			return err
		}
	}

	if err := s.credentialRepo.Save(ctx, credential); err != nil {
		s.logger.Error("Failed to store provider credential", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to store connection")
	}

	s.logger.Info("Provider connected",
		zap.String("provider", string(input.Provider)),
		zap.String("user_id", input.UserID.String()))
	return nil
}

// Status reports the user's connection state for every supported provider
func (s *ConnectService) Status(ctx context.Context, userID uuid.UUID) ([]ConnectionStatus, error) {
	providers := []connector.Provider{connector.ProviderMicrosoft, connector.ProviderSalesforce}

	statuses := make([]ConnectionStatus, 0, len(providers))
	for _, provider := range providers {
		status := ConnectionStatus{Provider: provider}

		credential, err := s.credentialRepo.FindByUserAndProvider(ctx, userID, provider)
		if err == nil {
			status.Connected = true
			status.InstanceURL = credential.InstanceURL
			if !credential.ExpiresAt.IsZero() {
				expiresAt := credential.ExpiresAt
				status.ExpiresAt = &expiresAt
			}
			updatedAt := credential.UpdatedAt
			status.UpdatedAt = &updatedAt
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Disconnect drops the stored tokens for a provider. Disconnecting a
// provider that was never connected succeeds silently.
func (s *ConnectService) Disconnect(ctx context.Context, userID uuid.UUID, provider connector.Provider) error {
	if !provider.Valid() {
		return shared.NewDomainError("INVALID_PROVIDER", "Unknown provider")
	}

	if err := s.credentialRepo.DeleteByUserAndProvider(ctx, userID, provider); err != nil {
		s.logger.Error("Failed to delete provider credential", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to disconnect provider")
	}

	s.logger.Info("Provider disconnected",
		zap.String("provider", string(provider)),
		zap.String("user_id", userID.String()))
	return nil
}

// EnsureAccessToken returns a credential with a usable access token,
// refreshing it first when it is about to expire. Callers that still get a
// provider-side 401 should treat the session as expired.
func (s *ConnectService) EnsureAccessToken(ctx context.Context, userID uuid.UUID, provider connector.Provider) (*connector.Credential, error) {
	credential, err := s.credentialRepo.FindByUserAndProvider(ctx, userID, provider)
	if err != nil {
		return nil, shared.NewDomainError("NOT_CONNECTED", "Provider is not connected")
	}

	if !credential.IsExpired(time.Now()) {
		return credential, nil
	}
	if !credential.CanRefresh() {
		return nil, shared.ErrSessionExpired
	}

	flow, ok := s.flows.Get(provider)
	if !ok {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Unknown provider")
	}

	token, err := flow.Refresh(ctx, credential.RefreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed",
			zap.String("provider", string(provider)),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.ErrSessionExpired
	}

	if err := credential.UpdateTokens(token.AccessToken, token.RefreshToken, token.InstanceURL, token.ExpiresAt); err != nil {
		return nil, err
	}
	if err := s.credentialRepo.Save(ctx, credential); err != nil {
		s.logger.Error("Failed to store refreshed tokens", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh provider tokens")
	}

	return credential, nil
}
