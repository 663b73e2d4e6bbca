package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/discussion"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInventoryRepository is a mock implementation of inventory.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Inventory, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) Save(ctx context.Context, inv *inventory.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) FindVisible(ctx context.Context, viewerID *uuid.UUID, filter shared.Filter) ([]inventory.Inventory, int64, error) {
	args := m.Called(ctx, viewerID, filter)
	return args.Get(0).([]inventory.Inventory), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryRepository) AllocateCounter(ctx context.Context, inventoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, inventoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, isPublic *bool) (int64, error) {
	args := m.Called(ctx, ownerID, isPublic)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]inventory.Item, int64, error) {
	args := m.Called(ctx, inventoryID, filter)
	return args.Get(0).([]inventory.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) CountByInventory(ctx context.Context, inventoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, inventoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountByInventoryOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock implementation of discussion.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*discussion.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discussion.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]discussion.Comment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]discussion.Comment), args.Error(1)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *discussion.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]discussion.CommentWithAuthor, int64, error) {
	args := m.Called(ctx, inventoryID, filter)
	return args.Get(0).([]discussion.CommentWithAuthor), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) CountByInventory(ctx context.Context, inventoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, inventoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Helper function to create a user service
func createUserService(
	userRepo *MockUserRepository,
	inventoryRepo *MockInventoryRepository,
	itemRepo *MockItemRepository,
	commentRepo *MockCommentRepository,
) *UserService {
	return NewUserService(userRepo, inventoryRepo, itemRepo, commentRepo, zap.NewNop())
}

func TestUserService_GetUser_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	service := createUserService(userRepo, new(MockInventoryRepository), new(MockItemRepository), new(MockCommentRepository))

	info, err := service.GetUser(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.ID, info.ID)
	assert.Equal(t, "Test User", info.Name)
	assert.Equal(t, "test@example.com", info.Email)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	id := uuid.New()
	userRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	service := createUserService(userRepo, new(MockInventoryRepository), new(MockItemRepository), new(MockCommentRepository))

	info, err := service.GetUser(ctx, id)

	require.Error(t, err)
	assert.Nil(t, info)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestUserService_UpdateProfile_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	service := createUserService(userRepo, new(MockInventoryRepository), new(MockItemRepository), new(MockCommentRepository))

	info, err := service.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID,
		Name:   "Renamed User",
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed User", info.Name)
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_InvalidName(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	service := createUserService(userRepo, new(MockInventoryRepository), new(MockItemRepository), new(MockCommentRepository))

	info, err := service.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID,
		Name:   "",
	})

	require.Error(t, err)
	assert.Nil(t, info)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	service := createUserService(userRepo, new(MockInventoryRepository), new(MockItemRepository), new(MockCommentRepository))

	err := service.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "Password123",
		NewPassword: "NewPassword456",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("NewPassword456"))
	userRepo.AssertExpectations(t)
}

func TestUserService_ChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	service := createUserService(userRepo, new(MockInventoryRepository), new(MockItemRepository), new(MockCommentRepository))

	err := service.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "notmypassword",
		NewPassword: "NewPassword456",
	})

	require.Error(t, err)
	assert.True(t, user.VerifyPassword("Password123"))
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_GetProfileStats_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	inventoryRepo := new(MockInventoryRepository)
	itemRepo := new(MockItemRepository)
	commentRepo := new(MockCommentRepository)

	user := createTestUser()
	public, private := true, false

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	inventoryRepo.On("CountByOwner", mock.Anything, user.ID, (*bool)(nil)).Return(int64(7), nil)
	inventoryRepo.On("CountByOwner", mock.Anything, user.ID, &public).Return(int64(4), nil)
	inventoryRepo.On("CountByOwner", mock.Anything, user.ID, &private).Return(int64(3), nil)
	itemRepo.On("CountByInventoryOwner", mock.Anything, user.ID).Return(int64(120), nil)
	commentRepo.On("CountByUser", mock.Anything, user.ID).Return(int64(15), nil)

	service := createUserService(userRepo, inventoryRepo, itemRepo, commentRepo)

	stats, err := service.GetProfileStats(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalInventories)
	assert.Equal(t, int64(4), stats.PublicInventories)
	assert.Equal(t, int64(3), stats.PrivateInventories)
	assert.Equal(t, int64(120), stats.TotalItems)
	assert.Equal(t, int64(15), stats.TotalComments)

	inventoryRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
	commentRepo.AssertExpectations(t)
}

func TestUserService_GetProfileStats_QueryFailure(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	inventoryRepo := new(MockInventoryRepository)
	itemRepo := new(MockItemRepository)
	commentRepo := new(MockCommentRepository)

	user := createTestUser()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	inventoryRepo.On("CountByOwner", mock.Anything, user.ID, mock.Anything).Return(int64(0), errors.New("connection reset"))
	itemRepo.On("CountByInventoryOwner", mock.Anything, user.ID).Return(int64(0), nil)
	commentRepo.On("CountByUser", mock.Anything, user.ID).Return(int64(0), nil)

	service := createUserService(userRepo, inventoryRepo, itemRepo, commentRepo)

	stats, err := service.GetProfileStats(ctx, user.ID)

	require.Error(t, err)
	assert.Nil(t, stats)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
}
