package discussion

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/shared"
)

// maxCommentLength bounds a single comment body
const maxCommentLength = 2000

// Comment is a discussion entry attached to an inventory
type Comment struct {
	shared.BaseAggregateRoot
	InventoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Text        string    `gorm:"type:text;not null"`
}

// TableName overrides the gorm table name
func (Comment) TableName() string {
	return "comments"
}

// NewComment creates a comment, rejecting empty or whitespace-only text
func NewComment(inventoryID, userID uuid.UUID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment text cannot be empty")
	}
	if len(text) > maxCommentLength {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment text is too long")
	}

	return &Comment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InventoryID:       inventoryID,
		UserID:            userID,
		Text:              text,
	}, nil
}

// CanDelete reports whether the user may remove this comment: the comment's
// author and the inventory owner both may.
func (c *Comment) CanDelete(userID, inventoryOwnerID uuid.UUID) bool {
	return c.UserID == userID || inventoryOwnerID == userID
}

// SetText replaces the comment body
func (c *Comment) SetText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return shared.NewDomainError("INVALID_COMMENT", "Comment text cannot be empty")
	}
	if len(text) > maxCommentLength {
		return shared.NewDomainError("INVALID_COMMENT", "Comment text is too long")
	}

	c.Text = text
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
