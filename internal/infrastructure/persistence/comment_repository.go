package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/discussion"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*discussion.Comment, error) {
	var comment discussion.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// FindAll finds all comments matching the filter
func (r *GormCommentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]discussion.Comment, error) {
	var comments []discussion.Comment
	query := r.db.WithContext(ctx).Model(&discussion.Comment{})

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, CommentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindByInventory lists an inventory's comments with author details,
// ordered by created_at desc
func (r *GormCommentRepository) FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]discussion.CommentWithAuthor, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&discussion.Comment{}).
		Where("comments.inventory_id = ?", inventoryID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.
		Select("comments.*, users.name AS author_name, users.email AS author_email").
		Joins("JOIN users ON users.id = comments.user_id")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var comments []discussion.CommentWithAuthor
	if err := query.Order("comments.created_at DESC").Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// CountByInventory counts the comments attached to an inventory
func (r *GormCommentRepository) CountByInventory(ctx context.Context, inventoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&discussion.Comment{}).
		Where("inventory_id = ?", inventoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser counts the comments written by a user
func (r *GormCommentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&discussion.Comment{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *discussion.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&discussion.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts comments matching the filter
func (r *GormCommentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&discussion.Comment{})

	for key, value := range filter.Filters {
		switch key {
		case "inventory_id":
			query = query.Where("inventory_id = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		}
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCommentRepository implements CommentRepository
var _ discussion.CommentRepository = (*GormCommentRepository)(nil)
