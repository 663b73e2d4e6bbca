package discussion

import (
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/discussion"
)

// CreateCommentInput contains the data for posting a comment
type CreateCommentInput struct {
	InventoryID uuid.UUID
	UserID      uuid.UUID
	Text        string
}

// ListCommentsInput lists the comments of one inventory
type ListCommentsInput struct {
	InventoryID uuid.UUID
	ViewerID    *uuid.UUID
	Page        int
	PageSize    int
}

// CommentInfo is the read model of a comment with its author
type CommentInfo struct {
	ID          uuid.UUID `json:"id"`
	InventoryID uuid.UUID `json:"inventory_id"`
	UserID      uuid.UUID `json:"user_id"`
	AuthorName  string    `json:"author_name,omitempty"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCommentInfo(comment *discussion.Comment) CommentInfo {
	return CommentInfo{
		ID:          comment.ID,
		InventoryID: comment.InventoryID,
		UserID:      comment.UserID,
		Text:        comment.Text,
		CreatedAt:   comment.CreatedAt,
	}
}

func toCommentInfoWithAuthor(comment *discussion.CommentWithAuthor) CommentInfo {
	info := toCommentInfo(&comment.Comment)
	info.AuthorName = comment.AuthorName
	info.AuthorEmail = comment.AuthorEmail
	return info
}
