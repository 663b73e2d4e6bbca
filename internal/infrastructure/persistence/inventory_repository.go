package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// maxAllocateAttempts bounds the compare-and-swap retry loop for counter allocation
const maxAllocateAttempts = 5

// GormInventoryRepository implements InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory by ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindAll finds all inventories matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Inventory, error) {
	var inventories []inventory.Inventory
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Inventory{}), filter)

	if err := query.Find(&inventories).Error; err != nil {
		return nil, err
	}
	return inventories, nil
}

// FindVisible lists inventories readable by the viewer: public ones plus,
// when viewerID is set, the viewer's own. Ordered by updated_at desc unless
// the filter asks otherwise.
func (r *GormInventoryRepository) FindVisible(ctx context.Context, viewerID *uuid.UUID, filter shared.Filter) ([]inventory.Inventory, int64, error) {
	base := r.db.WithContext(ctx).Model(&inventory.Inventory{})
	if viewerID != nil {
		base = base.Where("is_public = ? OR owner_id = ?", true, *viewerID)
	} else {
		base = base.Where("is_public = ?", true)
	}
	base = r.applyFilterWithoutPagination(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, InventorySortFields, "updated_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var inventories []inventory.Inventory
	if err := query.Order(orderBy + " " + orderDir).Find(&inventories).Error; err != nil {
		return nil, 0, err
	}
	return inventories, total, nil
}

// AllocateCounter atomically claims the next custom-ID counter value.
// A compare-and-swap on next_counter guarantees concurrent inserts never
// receive the same value; the first allocation seeds the counter from the
// most recently issued item ID, falling back to the configured start.
func (r *GormInventoryRepository) AllocateCounter(ctx context.Context, inventoryID uuid.UUID) (int64, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		var inv inventory.Inventory
		if err := r.db.WithContext(ctx).First(&inv, "id = ?", inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, shared.ErrNotFound
			}
			return 0, err
		}

		next := inv.NextCounter
		if next == 0 {
			seeded, err := r.seedCounter(ctx, &inv)
			if err != nil {
				return 0, err
			}
			next = seeded
		}

		// UpdateColumn keeps updated_at untouched: handing out an item ID is
		// not an edit of the inventory itself.
		result := r.db.WithContext(ctx).
			Model(&inventory.Inventory{}).
			Where("id = ? AND next_counter = ?", inventoryID, inv.NextCounter).
			UpdateColumn("next_counter", next+1)
		if result.Error != nil {
			return 0, result.Error
		}
		if result.RowsAffected == 1 {
			return next, nil
		}
		// Another transaction claimed this value first; reload and retry.
	}
	return 0, shared.ErrConcurrencyConflict
}

// seedCounter derives the first counter value for an inventory that has
// never allocated one: the trailing number of the newest item's custom ID
// plus one, or the configured counter start when no items exist.
func (r *GormInventoryRepository) seedCounter(ctx context.Context, inv *inventory.Inventory) (int64, error) {
	var lastIDs []string
	err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("inventory_id = ?", inv.ID).
		Order("created_at DESC").
		Limit(1).
		Pluck("custom_id", &lastIDs).Error
	if err != nil {
		return 0, err
	}

	lastID := ""
	if len(lastIDs) > 0 {
		lastID = lastIDs[0]
	}
	return inventory.CounterFromLastID(lastID, inv.CounterStart), nil
}

// CountByOwner counts inventories owned by the user, optionally restricted
// to public or private ones
func (r *GormInventoryRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, isPublic *bool) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.Inventory{}).
		Where("owner_id = ?", ownerID)
	if isPublic != nil {
		query = query.Where("is_public = ?", *isPublic)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an inventory. The next_counter column is owned by
// AllocateCounter and is never written from the aggregate's loaded copy, so
// a concurrent allocation cannot be lost by a metadata update.
func (r *GormInventoryRepository) Save(ctx context.Context, inv *inventory.Inventory) error {
	return r.db.WithContext(ctx).Omit("next_counter").Save(inv).Error
}

// Delete deletes an inventory
func (r *GormInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Inventory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts inventories matching the filter
func (r *GormInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Inventory{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InventorySortFields, "updated_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInventoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "is_public":
			query = query.Where("is_public = ?", value)
		}
	}

	return query
}

// Ensure GormInventoryRepository implements InventoryRepository
var _ inventory.InventoryRepository = (*GormInventoryRepository)(nil)
