package discussion

import (
	"context"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/discussion"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CommentService handles the discussion attached to inventories
type CommentService struct {
	commentRepo   discussion.CommentRepository
	inventoryRepo inventory.InventoryRepository
	logger        *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo discussion.CommentRepository,
	inventoryRepo inventory.InventoryRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// Create posts a comment on an inventory the user may comment on
func (s *CommentService) Create(ctx context.Context, input CreateCommentInput) (*CommentInfo, error) {
	inv, err := s.inventoryRepo.FindByID(ctx, input.InventoryID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}
	if !inv.CanView(&input.UserID) {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory not found")
	}
	if !inv.CanComment(input.UserID) {
		return nil, shared.NewDomainError("PERMISSION_DENIED", "Commenting is not allowed on this inventory")
	}

	comment, err := discussion.NewComment(input.InventoryID, input.UserID, input.Text)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		s.logger.Error("Failed to save comment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to post comment")
	}

	s.logger.Info("Comment posted",
		zap.String("comment_id", comment.ID.String()),
		zap.String("inventory_id", inv.ID.String()))

	info := toCommentInfo(comment)
	return &info, nil
}

// List returns an inventory's comments, newest first, with author details
func (s *CommentService) List(ctx context.Context, input ListCommentsInput) (*shared.Paginated[CommentInfo], error) {
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

	comments, total, err := s.commentRepo.FindByInventory(ctx, input.InventoryID, filter)
	if err != nil {
		s.logger.Error("Failed to list comments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list comments")
	}

	infos := make([]CommentInfo, len(comments))
	for i := range comments {
		infos[i] = toCommentInfoWithAuthor(&comments[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a comment. The comment's author and the inventory owner may.
func (s *CommentService) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Comment not found")
	}

	inv, err := s.inventoryRepo.FindByID(ctx, comment.InventoryID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Comment not found")
	}
	if !inv.CanView(&userID) {
		return shared.NewDomainError("NOT_FOUND", "Comment not found")
	}
	if !comment.CanDelete(userID, inv.OwnerID) {
		return shared.NewDomainError("PERMISSION_DENIED", "Only the author or the inventory owner can delete this comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		s.logger.Error("Failed to delete comment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete comment")
	}

	s.logger.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("user_id", userID.String()))
	return nil
}
