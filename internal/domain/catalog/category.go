package catalog

import (
	"strings"

	"github.com/inventoryhub/backend/internal/domain/shared"
)

// Category is a predefined classification an inventory can reference
type Category struct {
	shared.BaseEntity
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

// TableName overrides the gorm table name
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category with a non-empty name
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot exceed 100 characters")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
