package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	invapp "github.com/inventoryhub/backend/internal/application/inventory"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles inventory CRUD and configuration endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *invapp.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *invapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Create creates an inventory owned by the current user
func (h *InventoryHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.inventoryService.Create(c.Request.Context(), invapp.CreateInventoryInput{
		OwnerID:        userID,
		Title:          req.Title,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		ImageURL:       req.ImageURL,
		IsPublic:       req.IsPublic,
		Tags:           req.Tags,
		CustomIDPrefix: req.CustomIDPrefix,
		CustomIDFormat: req.CustomIDFormat,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns one inventory when the caller may see it
func (h *InventoryHandler) Get(c *gin.Context) {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return
	}

	result, err := h.inventoryService.Get(c.Request.Context(), inventoryID, getViewerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the inventories visible to the caller
func (h *InventoryHandler) List(c *gin.Context) {
	var req ListInventoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := invapp.ListInventoriesInput{
		ViewerID: getViewerID(c),
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}
	if req.OwnerID != "" {
		ownerID := uuid.MustParse(req.OwnerID)
		input.OwnerID = &ownerID
	}
	if req.Category != "" {
		categoryID := uuid.MustParse(req.Category)
		input.Category = &categoryID
	}

	result, err := h.inventoryService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginationMeta(result))
}

// Update changes inventory metadata; only the owner may call it
func (h *InventoryHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return
	}

	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.inventoryService.Update(c.Request.Context(), invapp.UpdateInventoryInput{
		InventoryID:   inventoryID,
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		IsPublic:      req.IsPublic,
		Tags:          req.Tags,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateCustomIDScheme changes how future item IDs are generated
func (h *InventoryHandler) UpdateCustomIDScheme(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return
	}

	var req UpdateCustomIDSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.inventoryService.UpdateCustomIDScheme(c.Request.Context(), invapp.UpdateCustomIDSchemeInput{
		InventoryID:  inventoryID,
		UserID:       userID,
		Prefix:       req.Prefix,
		Format:       req.Format,
		CounterStart: req.CounterStart,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateFieldSlots redefines the inventory's custom field slots
func (h *InventoryHandler) UpdateFieldSlots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return
	}

	var req UpdateFieldSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	slots := make([]invapp.FieldSlotInput, len(req.Slots))
	for i, slot := range req.Slots {
		slots[i] = invapp.FieldSlotInput{
			Kind:   inventory.SlotKind(slot.Kind),
			Slot:   slot.Slot,
			Name:   slot.Name,
			Active: slot.Active,
		}
	}

	result, err := h.inventoryService.UpdateFieldSlots(c.Request.Context(), invapp.UpdateFieldSlotsInput{
		InventoryID: inventoryID,
		UserID:      userID,
		Slots:       slots,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes an inventory and everything in it
func (h *InventoryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), inventoryID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
