package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InventoryService handles inventory lifecycle and configuration
type InventoryService struct {
	inventoryRepo inventory.InventoryRepository
	itemRepo      inventory.ItemRepository
	logger        *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo inventory.InventoryRepository,
	itemRepo inventory.ItemRepository,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		logger:        logger,
	}
}

// Create creates a new inventory owned by the caller
func (s *InventoryService) Create(ctx context.Context, input CreateInventoryInput) (*InventoryInfo, error) {
	inv, err := inventory.NewInventory(input.OwnerID, input.Title, input.CustomIDPrefix, input.CustomIDFormat)
	if err != nil {
		return nil, err
	}

	inv.SetDescription(input.Description)
	inv.SetVisibility(input.IsPublic)
	if input.CategoryID != nil {
		inv.SetCategory(input.CategoryID)
	}
	if input.ImageURL != "" {
		if err := inv.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}
	if len(input.Tags) > 0 {
		inv.SetTags(input.Tags)
	}

	if err := s.inventoryRepo.Save(ctx, inv); err != nil {
		s.logger.Error("Failed to create inventory", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create inventory")
	}

	s.logger.Info("Inventory created",
		zap.String("inventory_id", inv.ID.String()),
		zap.String("owner_id", inv.OwnerID.String()))

	info := toInventoryInfo(inv)
	return &info, nil
}

// Get returns an inventory if the viewer may read it. Private inventories
// are indistinguishable from missing ones for everybody but their owner.
func (s *InventoryService) Get(ctx context.Context, inventoryID uuid.UUID, viewerID *uuid.UUID) (*InventoryInfo, error) {
	inv, err := s.loadVisible(ctx, inventoryID, viewerID)
	if err != nil {
		return nil, err
	}

	info := toInventoryInfo(inv)
	return &info, nil
}

// List returns the inventories visible to the viewer
func (s *InventoryService) List(ctx context.Context, input ListInventoriesInput) (*shared.Paginated[InventoryInfo], error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.Search = input.Search
	filter.OrderBy = input.OrderBy
	filter.OrderDir = input.OrderDir
	if input.OwnerID != nil {
		filter.Filters["owner_id"] = *input.OwnerID
	}
	if input.Category != nil {
		filter.Filters["category_id"] = *input.Category
	}

	inventories, total, err := s.inventoryRepo.FindVisible(ctx, input.ViewerID, filter)
	if err != nil {
		s.logger.Error("Failed to list inventories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list inventories")
	}

	infos := make([]InventoryInfo, len(inventories))
	for i := range inventories {
		infos[i] = toInventoryInfo(&inventories[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies the provided field changes to an owned inventory
func (s *InventoryService) Update(ctx context.Context, input UpdateInventoryInput) (*InventoryInfo, error) {
	inv, err := s.loadOwned(ctx, input.InventoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := inv.SetTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		inv.SetDescription(*input.Description)
	}
	if input.ImageURL != nil {
		if err := inv.SetImageURL(*input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.IsPublic != nil {
		inv.SetVisibility(*input.IsPublic)
	}
	if input.Tags != nil {
		inv.SetTags(input.Tags)
	}
	if input.ClearCategory {
		inv.SetCategory(nil)
	} else if input.CategoryID != nil {
		inv.SetCategory(input.CategoryID)
	}

	if err := s.inventoryRepo.Save(ctx, inv); err != nil {
		s.logger.Error("Failed to update inventory", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update inventory")
	}

	info := toInventoryInfo(inv)
	return &info, nil
}

// UpdateCustomIDScheme changes how future item IDs are rendered.
// Already issued IDs keep their historical shape.
func (s *InventoryService) UpdateCustomIDScheme(ctx context.Context, input UpdateCustomIDSchemeInput) (*InventoryInfo, error) {
	inv, err := s.loadOwned(ctx, input.InventoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := inv.SetCustomIDScheme(input.Prefix, input.Format, input.CounterStart); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Save(ctx, inv); err != nil {
		s.logger.Error("Failed to update custom ID scheme", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update custom ID scheme")
	}

	info := toInventoryInfo(inv)
	return &info, nil
}

// UpdateFieldSlots redefines the given custom field slots
func (s *InventoryService) UpdateFieldSlots(ctx context.Context, input UpdateFieldSlotsInput) (*InventoryInfo, error) {
	inv, err := s.loadOwned(ctx, input.InventoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	for _, slot := range input.Slots {
		if err := inv.SetFieldSlot(slot.Kind, slot.Slot, slot.Name, slot.Active); err != nil {
			return nil, err
		}
	}

	if err := s.inventoryRepo.Save(ctx, inv); err != nil {
		s.logger.Error("Failed to update field slots", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update field slots")
	}

	info := toInventoryInfo(inv)
	return &info, nil
}

// Delete removes an owned inventory together with its items and comments
func (s *InventoryService) Delete(ctx context.Context, inventoryID, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, inventoryID, userID); err != nil {
		return err
	}

	if err := s.inventoryRepo.Delete(ctx, inventoryID); err != nil {
		s.logger.Error("Failed to delete inventory", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete inventory")
	}

	s.logger.Info("Inventory deleted",
		zap.String("inventory_id", inventoryID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// loadVisible fetches an inventory and enforces read visibility
func (s *InventoryService) loadVisible(ctx context.Context, inventoryID uuid.UUID, viewerID *uuid.UUID) (*inventory.Inventory, error) {
	inv, err := s.inventoryRepo.FindByID(ctx, inventoryID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}
	if !inv.CanView(viewerID) {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}
	return inv, nil
}

// loadOwned fetches an inventory and enforces owner-only mutation
func (s *InventoryService) loadOwned(ctx context.Context, inventoryID, userID uuid.UUID) (*inventory.Inventory, error) {
	inv, err := s.loadVisible(ctx, inventoryID, &userID)
	if err != nil {
		return nil, err
	}
	if !inv.CanModify(userID) {
		return nil, shared.NewDomainError("PERMISSION_DENIED", "Only the owner can modify this inventory")
	}
	return inv, nil
}
