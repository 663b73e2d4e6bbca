package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	invapp "github.com/inventoryhub/backend/internal/application/inventory"
	"github.com/inventoryhub/backend/internal/interfaces/http/middleware"
)

// ItemHandler handles item endpoints
type ItemHandler struct {
	BaseHandler
	itemService *invapp.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *invapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create adds an item to an inventory; the custom ID is assigned server-side
func (h *ItemHandler) Create(c *gin.Context) {
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

	var req FieldValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.itemService.Create(c.Request.Context(), invapp.CreateItemInput{
		InventoryID: inventoryID,
		UserID:      userID,
		Values:      req.toInput(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns one item when the caller may see its inventory
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.itemService.Get(c.Request.Context(), itemID, getViewerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the items of one inventory
func (h *ItemHandler) List(c *gin.Context) {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return
	}

	var req ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.itemService.List(c.Request.Context(), invapp.ListItemsInput{
		InventoryID: inventoryID,
		ViewerID:    getViewerID(c),
		Page:        req.Page,
		PageSize:    req.PageSize,
		OrderBy:     req.OrderBy,
		OrderDir:    req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginationMeta(result))
}

// Update replaces an item's custom field values
func (h *ItemHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req FieldValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.itemService.Update(c.Request.Context(), invapp.UpdateItemInput{
		ItemID: itemID,
		UserID: userID,
		Values: req.toInput(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes an item
func (h *ItemHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), itemID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
