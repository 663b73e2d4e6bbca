package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/shared"
)

// InventoryRepository defines the persistence interface for inventories
type InventoryRepository interface {
	shared.Repository[Inventory]

	// FindVisible lists inventories readable by the viewer: public ones plus,
	// when viewerID is set, the viewer's own. Ordered by updated_at desc.
	FindVisible(ctx context.Context, viewerID *uuid.UUID, filter shared.Filter) ([]Inventory, int64, error)

	// AllocateCounter atomically claims the next custom-ID counter value for
	// the inventory. First allocation seeds from the most recently issued
	// item ID, falling back to the configured counter start.
	AllocateCounter(ctx context.Context, inventoryID uuid.UUID) (int64, error)

	// CountByOwner counts inventories owned by the user, optionally
	// restricted to public or private ones.
	CountByOwner(ctx context.Context, ownerID uuid.UUID, isPublic *bool) (int64, error)
}

// ItemRepository defines the persistence interface for items
type ItemRepository interface {
	shared.Repository[Item]

	// FindByInventory lists an inventory's items ordered by created_at desc
	FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]Item, int64, error)

	// CountByInventory counts the items in an inventory
	CountByInventory(ctx context.Context, inventoryID uuid.UUID) (int64, error)

	// CountByInventoryOwner counts items across all inventories owned by the user
	CountByInventoryOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
