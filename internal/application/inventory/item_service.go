package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// maxCreateAttempts bounds the retries when a generated custom ID collides
// with one issued under an earlier ID scheme.
const maxCreateAttempts = 3

// ItemService handles items inside an inventory
type ItemService struct {
	inventoryRepo inventory.InventoryRepository
	itemRepo      inventory.ItemRepository
	logger        *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(
	inventoryRepo inventory.InventoryRepository,
	itemRepo inventory.ItemRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		logger:        logger,
	}
}

// Create adds an item to an owned inventory. The custom ID is generated
// from the inventory's template and a freshly allocated counter value.
func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*ItemInfo, error) {
	inv, err := s.inventoryRepo.FindByID(ctx, input.InventoryID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}
	if !inv.CanView(&input.UserID) {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}
	if !inv.CanModify(input.UserID) {
		return nil, shared.NewDomainError("PERMISSION_DENIED", "Only the owner can add items")
	}

	values := inventory.FieldValues{
		Text:   input.Values.Text,
		Number: input.Values.Number,
		Bool:   input.Values.Bool,
	}

	// Counter values are unique, but an ID rendered from a fresh counter can
	// still collide with one issued under a previous scheme. Allocate again
	// and move past the taken value.
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		counter, err := s.inventoryRepo.AllocateCounter(ctx, input.InventoryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
			}
			s.logger.Error("Failed to allocate item counter",
				zap.String("inventory_id", input.InventoryID.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate item ID")
		}

		item, err := inventory.NewItem(inv, inv.CustomIDFor(counter), input.UserID, values)
		if err != nil {
			return nil, err
		}

		err = s.itemRepo.Save(ctx, item)
		if err == nil {
			s.logger.Info("Item created",
				zap.String("item_id", item.ID.String()),
				zap.String("inventory_id", inv.ID.String()),
				zap.String("custom_id", item.CustomID))

			info := toItemInfo(inv, item)
			return &info, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Error("Failed to persist item", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create item")
		}

		s.logger.Warn("Generated custom ID already taken, retrying",
			zap.String("inventory_id", inv.ID.String()),
			zap.String("custom_id", item.CustomID))
	}

	return nil, shared.NewDomainError("CONCURRENCY_CONFLICT", "Could not generate a unique item ID, please retry")
}

// Get returns an item if its inventory is readable by the viewer
func (s *ItemService) Get(ctx context.Context, itemID uuid.UUID, viewerID *uuid.UUID) (*ItemInfo, error) {
	item, inv, err := s.loadVisibleItem(ctx, itemID, viewerID)
	if err != nil {
		return nil, err
	}

	info := toItemInfo(inv, item)
	return &info, nil
}

// List returns the items of an inventory readable by the viewer
func (s *ItemService) List(ctx context.Context, input ListItemsInput) (*shared.Paginated[ItemInfo], error) {
	inv, err := s.inventoryRepo.FindByID(ctx, input.InventoryID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}
	if !inv.CanView(input.ViewerID) {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}

	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.OrderBy = input.OrderBy
	filter.OrderDir = input.OrderDir

	items, total, err := s.itemRepo.FindByInventory(ctx, input.InventoryID, filter)
	if err != nil {
		s.logger.Error("Failed to list items", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list items")
	}

	infos := make([]ItemInfo, len(items))
	for i := range items {
		infos[i] = toItemInfo(inv, &items[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces an item's custom field values
func (s *ItemService) Update(ctx context.Context, input UpdateItemInput) (*ItemInfo, error) {
	item, inv, err := s.loadVisibleItem(ctx, input.ItemID, &input.UserID)
	if err != nil {
		return nil, err
	}
	if !inv.CanModify(input.UserID) {
		return nil, shared.NewDomainError("PERMISSION_DENIED", "Only the owner can modify items")
	}

	item.SetFieldValues(inv, inventory.FieldValues{
		Text:   input.Values.Text,
		Number: input.Values.Number,
		Bool:   input.Values.Bool,
	})

	if err := s.itemRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to update item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update item")
	}

	info := toItemInfo(inv, item)
	return &info, nil
}

// Delete removes an item from an owned inventory
func (s *ItemService) Delete(ctx context.Context, itemID, userID uuid.UUID) error {
	item, inv, err := s.loadVisibleItem(ctx, itemID, &userID)
	if err != nil {
		return err
	}
	if !inv.CanModify(userID) {
		return shared.NewDomainError("PERMISSION_DENIED", "Only the owner can delete items")
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		s.logger.Error("Failed to delete item", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete item")
	}

	s.logger.Info("Item deleted",
		zap.String("item_id", item.ID.String()),
		zap.String("inventory_id", inv.ID.String()))
	return nil
}

// loadVisibleItem fetches an item together with its inventory and enforces
// the inventory's read visibility.
func (s *ItemService) loadVisibleItem(ctx context.Context, itemID uuid.UUID, viewerID *uuid.UUID) (*inventory.Item, *inventory.Inventory, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, shared.NewDomainError("NOT_FOUND", "Item not found")
	}

	inv, err := s.inventoryRepo.FindByID(ctx, item.InventoryID)
	if err != nil {
		return nil, nil, shared.NewDomainError("NOT_FOUND", "Item not found")
	}
	if !inv.CanView(viewerID) {
		return nil, nil, shared.NewDomainError("NOT_FOUND", "Item not found")
	}

	return item, inv, nil
}
