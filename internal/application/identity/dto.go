package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the data for creating an account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	UserID       uuid.UUID
	AccessJTI    string
	RemainingTTL time.Duration
}

// ChangePasswordInput contains the data for a password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateProfileInput contains the editable profile fields
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   string
}

// UserInfo is the public view of a user
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AuthResult is returned from register and login
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenResult is returned from a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ProfileStats aggregates a user's activity counts for the profile page
type ProfileStats struct {
	TotalInventories   int64 `json:"total_inventories"`
	PublicInventories  int64 `json:"public_inventories"`
	PrivateInventories int64 `json:"private_inventories"`
	TotalItems         int64 `json:"total_items"`
	TotalComments      int64 `json:"total_comments"`
}
