package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/inventoryhub/backend/internal/domain/catalog"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func TestCategoryService_List_Success(t *testing.T) {
	ctx := context.Background()
	categoryRepo := new(MockCategoryRepository)

	books, err := catalog.NewCategory("Books")
	require.NoError(t, err)
	electronics, err := catalog.NewCategory("Electronics")
	require.NoError(t, err)

	categoryRepo.On("FindAll", ctx).Return([]catalog.Category{*books, *electronics}, nil)

	service := NewCategoryService(categoryRepo, zap.NewNop())

	infos, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "Books", infos[0].Name)
	assert.Equal(t, "Electronics", infos[1].Name)
}

func TestCategoryService_List_Failure(t *testing.T) {
	ctx := context.Background()
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("FindAll", ctx).Return(nil, errors.New("connection reset"))

	service := NewCategoryService(categoryRepo, zap.NewNop())

	infos, err := service.List(ctx)

	require.Error(t, err)
	assert.Nil(t, infos)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
}
