package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/catalog"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryInfo is the read model of a category
type CategoryInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryService serves the fixed category catalog
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns every category ordered by name
func (s *CategoryService) List(ctx context.Context) ([]CategoryInfo, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	infos := make([]CategoryInfo, len(categories))
	for i, category := range categories {
		infos[i] = CategoryInfo{ID: category.ID, Name: category.Name}
	}
	return infos, nil
}
