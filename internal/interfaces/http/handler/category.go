package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/inventoryhub/backend/internal/application/catalog"
)

// CategoryHandler serves the fixed category list
type CategoryHandler struct {
	BaseHandler
	categoryService *catalog.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List returns all categories
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
