package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCredentialRepository implements CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// FindByUserAndProvider returns the user's credential for the provider
func (r *GormCredentialRepository) FindByUserAndProvider(ctx context.Context, userID uuid.UUID, provider connector.Provider) (*connector.Credential, error) {
	var credential connector.Credential
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &credential, nil
}

// Save upserts the credential on its (user, provider) key, so reconnecting
// a provider replaces the stored tokens in place
func (r *GormCredentialRepository) Save(ctx context.Context, credential *connector.Credential) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "refresh_token", "instance_url",
				"expires_at", "updated_at", "version",
			}),
		}).
		Create(credential).Error
}

// DeleteByUserAndProvider removes the credential; deleting a missing
// credential is not an error
func (r *GormCredentialRepository) DeleteByUserAndProvider(ctx context.Context, userID uuid.UUID, provider connector.Provider) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		Delete(&connector.Credential{}).Error
}

// Ensure GormCredentialRepository implements CredentialRepository
var _ connector.CredentialRepository = (*GormCredentialRepository)(nil)
