package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByInventory lists an inventory's items ordered by created_at desc
// unless the filter asks otherwise
func (r *GormItemRepository) FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]inventory.Item, int64, error) {
	base := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&inventory.Item{}).Where("inventory_id = ?", inventoryID),
		filter,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var items []inventory.Item
	if err := query.Order(orderBy + " " + orderDir).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountByInventory counts the items in an inventory
func (r *GormItemRepository) CountByInventory(ctx context.Context, inventoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("inventory_id = ?", inventoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByInventoryOwner counts items across all inventories owned by the user
func (r *GormItemRepository) CountByInventoryOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Joins("JOIN inventories ON inventories.id = items.inventory_id").
		Where("inventories.owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item. A unique-constraint violation on the
// inventory's custom ID surfaces as ErrAlreadyExists.
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	err := r.db.WithContext(ctx).Save(item).Error
	if err != nil && isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Delete deletes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("custom_id ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "inventory_id":
			query = query.Where("inventory_id = ?", value)
		case "created_by_id":
			query = query.Where("created_by_id = ?", value)
		}
	}

	return query
}

// isUniqueViolation reports whether the error is a unique-constraint
// violation, covering both the postgres driver and gorm's translated error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Ensure GormItemRepository implements ItemRepository
var _ inventory.ItemRepository = (*GormItemRepository)(nil)
