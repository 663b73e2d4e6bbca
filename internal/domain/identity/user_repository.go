package identity

import (
	"context"

	"github.com/inventoryhub/backend/internal/domain/shared"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	shared.Repository[User]

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether a user with the email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
