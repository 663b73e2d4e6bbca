package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/application/discussion"
	"github.com/inventoryhub/backend/internal/interfaces/http/middleware"
)

// CreateCommentRequest is the request body for posting a comment
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// ListCommentsRequest is the query-string shape for listing comments
type ListCommentsRequest struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// CommentHandler handles inventory discussion endpoints
type CommentHandler struct {
	BaseHandler
	commentService *discussion.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *discussion.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create posts a comment on an inventory
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.commentService.Create(c.Request.Context(), discussion.CreateCommentInput{
		InventoryID: inventoryID,
		UserID:      userID,
		Text:        req.Text,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns the comments of one inventory, oldest first
func (h *CommentHandler) List(c *gin.Context) {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return
	}

	var req ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.commentService.List(c.Request.Context(), discussion.ListCommentsInput{
		InventoryID: inventoryID,
		ViewerID:    getViewerID(c),
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginationMeta(result))
}

// Delete removes a comment; allowed for its author and the inventory owner
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), commentID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
