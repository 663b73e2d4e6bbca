package connector

import (
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/shared"
)

// Provider identifies an external OAuth2 provider
type Provider string

const (
	ProviderMicrosoft  Provider = "microsoft"
	ProviderSalesforce Provider = "salesforce"
)

// Valid reports whether the provider is one we support
func (p Provider) Valid() bool {
	return p == ProviderMicrosoft || p == ProviderSalesforce
}

// expirySafetyMargin treats tokens about to expire as already expired so an
// API call started now does not die mid-flight with a stale token.
const expirySafetyMargin = 60 * time.Second

// Credential holds a user's OAuth2 tokens for one provider. One row per
// (user, provider); reconnecting replaces the tokens in place.
type Credential struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_credentials_user_provider"`
	Provider     Provider  `gorm:"size:50;not null;uniqueIndex:idx_credentials_user_provider"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text"`
	// InstanceURL is the per-org API host Salesforce returns with its tokens
	InstanceURL string `gorm:"size:500"`
	ExpiresAt   time.Time
}

// TableName overrides the gorm table name
func (Credential) TableName() string {
	return "provider_credentials"
}

// NewCredential creates a credential from a completed token exchange
func NewCredential(userID uuid.UUID, provider Provider, accessToken, refreshToken, instanceURL string, expiresAt time.Time) (*Credential, error) {
	if !provider.Valid() {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Unknown provider")
	}
	if accessToken == "" {
		return nil, shared.NewDomainError("INVALID_CREDENTIAL", "Access token cannot be empty")
	}

	return &Credential{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Provider:          provider,
		AccessToken:       accessToken,
		RefreshToken:      refreshToken,
		InstanceURL:       instanceURL,
		ExpiresAt:         expiresAt,
	}, nil
}

// IsExpired reports whether the access token needs refreshing
func (c *Credential) IsExpired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(expirySafetyMargin).Before(c.ExpiresAt)
}

// CanRefresh reports whether a refresh attempt is possible at all
func (c *Credential) CanRefresh() bool {
	return c.RefreshToken != ""
}

// UpdateTokens stores rotated tokens after a refresh or reconnect. Providers
// may omit a new refresh token; the previous one is kept in that case.
func (c *Credential) UpdateTokens(accessToken, refreshToken, instanceURL string, expiresAt time.Time) error {
	if accessToken == "" {
		return shared.NewDomainError("INVALID_CREDENTIAL", "Access token cannot be empty")
	}

	c.AccessToken = accessToken
	if refreshToken != "" {
		c.RefreshToken = refreshToken
	}
	if instanceURL != "" {
		c.InstanceURL = instanceURL
	}
	c.ExpiresAt = expiresAt
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
