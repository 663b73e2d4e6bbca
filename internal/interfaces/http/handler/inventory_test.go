package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	invapp "github.com/inventoryhub/backend/internal/application/inventory"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/inventoryhub/backend/internal/interfaces/http/middleware"
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

func newTestInventory(t *testing.T, ownerID uuid.UUID, isPublic bool) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.NewInventory(ownerID, "Office Gear", "GEAR", "{prefix}-{counter}")
	require.NoError(t, err)
	inv.SetVisibility(isPublic)
	return inv
}

func newInventoryRouter(inventoryRepo *MockInventoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	jwtService := newTestJWTService()
	service := invapp.NewInventoryService(inventoryRepo, new(MockItemRepository), zap.NewNop())
	h := NewInventoryHandler(service)

	router := gin.New()
	router.GET("/inventories/:id", middleware.OptionalJWTAuthMiddleware(jwtService), h.Get)
	router.POST("/inventories", middleware.JWTAuthMiddleware(jwtService), h.Create)
	router.PUT("/inventories/:id", middleware.JWTAuthMiddleware(jwtService), h.Update)
	return router
}

func TestInventoryHandler_Get_PublicAnonymously(t *testing.T) {
	ownerID := uuid.New()
	inv := newTestInventory(t, ownerID, true)

	inventoryRepo := new(MockInventoryRepository)
	inventoryRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

	router := newInventoryRouter(inventoryRepo)

	req := httptest.NewRequest(http.MethodGet, "/inventories/"+inv.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Office Gear")
}

func TestInventoryHandler_Get_PrivateHiddenFromAnonymous(t *testing.T) {
	ownerID := uuid.New()
	inv := newTestInventory(t, ownerID, false)

	inventoryRepo := new(MockInventoryRepository)
	inventoryRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

	router := newInventoryRouter(inventoryRepo)

	req := httptest.NewRequest(http.MethodGet, "/inventories/"+inv.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Hidden inventories are indistinguishable from missing ones
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestInventoryHandler_Get_PrivateVisibleToOwner(t *testing.T) {
	ownerID := uuid.New()
	inv := newTestInventory(t, ownerID, false)

	inventoryRepo := new(MockInventoryRepository)
	inventoryRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

	router := newInventoryRouter(inventoryRepo)

	req := httptest.NewRequest(http.MethodGet, "/inventories/"+inv.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+issueAccessToken(t, newTestJWTService(), ownerID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInventoryHandler_Create_RequiresAuth(t *testing.T) {
	router := newInventoryRouter(new(MockInventoryRepository))

	body := `{"title": "Office Gear", "custom_id_prefix": "GEAR"}`
	req := httptest.NewRequest(http.MethodPost, "/inventories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInventoryHandler_Create_Success(t *testing.T) {
	inventoryRepo := new(MockInventoryRepository)
	inventoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Inventory")).Return(nil)

	router := newInventoryRouter(inventoryRepo)

	body := `{"title": "Office Gear", "custom_id_prefix": "GEAR", "is_public": true}`
	req := httptest.NewRequest(http.MethodPost, "/inventories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+issueAccessToken(t, newTestJWTService(), uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "GEAR")
}

func TestInventoryHandler_Create_RejectsFormatWithoutCounter(t *testing.T) {
	router := newInventoryRouter(new(MockInventoryRepository))

	body := `{"title": "Office Gear", "custom_id_prefix": "GEAR", "custom_id_format": "{prefix}-only"}`
	req := httptest.NewRequest(http.MethodPost, "/inventories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+issueAccessToken(t, newTestJWTService(), uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), "{counter}")
}

func TestInventoryHandler_Update_NonOwnerForbidden(t *testing.T) {
	ownerID := uuid.New()
	inv := newTestInventory(t, ownerID, true)

	inventoryRepo := new(MockInventoryRepository)
	inventoryRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

	router := newInventoryRouter(inventoryRepo)

	body := `{"title": "Hijacked"}`
	req := httptest.NewRequest(http.MethodPut, "/inventories/"+inv.ID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+issueAccessToken(t, newTestJWTService(), uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PERMISSION_DENIED")
	inventoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
