package catalog

import (
	"context"
)

// CategoryRepository defines the persistence interface for categories
type CategoryRepository interface {
	// FindAll returns every category ordered by name
	FindAll(ctx context.Context) ([]Category, error)

	// FindByName finds a category by its exact name
	FindByName(ctx context.Context, name string) (*Category, error)
}
