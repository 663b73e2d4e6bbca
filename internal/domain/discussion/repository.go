package discussion

import (
	"context"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/shared"
)

// CommentWithAuthor is the read model of a comment joined with its author
type CommentWithAuthor struct {
	Comment
	AuthorName  string
	AuthorEmail string
}

// CommentRepository defines the persistence interface for comments
type CommentRepository interface {
	shared.Repository[Comment]

	// FindByInventory lists an inventory's comments with author details,
	// ordered by created_at desc.
	FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]CommentWithAuthor, int64, error)

	// CountByInventory counts the comments attached to an inventory
	CountByInventory(ctx context.Context, inventoryID uuid.UUID) (int64, error)

	// CountByUser counts the comments written by a user
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
