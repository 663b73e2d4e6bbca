package connector

import (
	"context"

	"github.com/google/uuid"
)

// CredentialRepository defines the persistence interface for provider credentials
type CredentialRepository interface {
	// FindByUserAndProvider returns the user's credential for the provider,
	// or shared.ErrNotFound when the user never connected it.
	FindByUserAndProvider(ctx context.Context, userID uuid.UUID, provider Provider) (*Credential, error)

	// Save upserts the credential on its (user, provider) key
	Save(ctx context.Context, credential *Credential) error

	// DeleteByUserAndProvider removes the credential; deleting a missing
	// credential is not an error.
	DeleteByUserAndProvider(ctx context.Context, userID uuid.UUID, provider Provider) error
}
