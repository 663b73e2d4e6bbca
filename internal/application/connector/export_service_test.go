package connector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/inventoryhub/backend/internal/infrastructure/config"
	"github.com/inventoryhub/backend/internal/infrastructure/crm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCRMClient() *crm.SalesforceClient {
	return crm.NewSalesforceClient(config.IntegrationsConfig{
		SalesforceAPIVersion: "v58.0",
		RequestTimeout:       5 * time.Second,
	}, zap.NewNop())
}

func validExportInput(userID uuid.UUID) CreateCRMAccountInput {
	return CreateCRMAccountInput{
		UserID:       userID,
		CompanyName:  "Acme Corp",
		Industry:     "Manufacturing",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		ContactEmail: "ada@acme.example",
	}
}

func TestExportService_CreateCRMAccount_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	var paths []string
	var bodies []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if len(paths) == 1 {
			_, _ = w.Write([]byte(`{"id": "001ACC", "success": true}`))
		} else {
			_, _ = w.Write([]byte(`{"id": "003CON", "success": true}`))
		}
	}))
	defer server.Close()

	credentialRepo := new(MockCredentialRepository)
	credential, err := connector.NewCredential(userID, connector.ProviderSalesforce,
		"sf-token", "sf-refresh", server.URL, time.Now().Add(time.Hour))
	require.NoError(t, err)
	credentialRepo.On("FindByUserAndProvider", ctx, userID, connector.ProviderSalesforce).
		Return(credential, nil)

	connect := createConnectService(&stubFlow{provider: connector.ProviderSalesforce}, credentialRepo)
	service := NewExportService(connect, newCRMClient(), zap.NewNop())

	result, err := service.CreateCRMAccount(ctx, validExportInput(userID))

	require.NoError(t, err)
	assert.Equal(t, "001ACC", result.AccountID)
	assert.Equal(t, "003CON", result.ContactID)

	require.Len(t, paths, 2)
	assert.Equal(t, "/services/data/v58.0/sobjects/Account", paths[0])
	assert.Equal(t, "/services/data/v58.0/sobjects/Contact", paths[1])
	assert.Equal(t, "Acme Corp", bodies[0]["Name"])
	assert.Equal(t, "001ACC", bodies[1]["AccountId"])
	assert.Equal(t, "Ada", bodies[1]["FirstName"])
}

func TestExportService_CreateCRMAccount_MissingRequiredFields(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	credentialRepo := new(MockCredentialRepository)

	connect := createConnectService(&stubFlow{provider: connector.ProviderSalesforce}, credentialRepo)
	service := NewExportService(connect, newCRMClient(), zap.NewNop())

	input := validExportInput(userID)
	input.ContactEmail = ""

	result, err := service.CreateCRMAccount(ctx, input)

	require.Error(t, err)
	assert.Nil(t, result)
	assertDomainErrorCode(t, err, "VALIDATION_ERROR")
	credentialRepo.AssertNotCalled(t, "FindByUserAndProvider", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService_CreateCRMAccount_NotConnected(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	credentialRepo := new(MockCredentialRepository)

	credentialRepo.On("FindByUserAndProvider", ctx, userID, connector.ProviderSalesforce).
		Return(nil, shared.ErrNotFound)

	connect := createConnectService(&stubFlow{provider: connector.ProviderSalesforce}, credentialRepo)
	service := NewExportService(connect, newCRMClient(), zap.NewNop())

	result, err := service.CreateCRMAccount(ctx, validExportInput(userID))

	require.Error(t, err)
	assert.Nil(t, result)
	assertDomainErrorCode(t, err, "NOT_CONNECTED")
}

func TestExportService_CreateCRMAccount_StaleSessionAtProvider(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`[{"message": "Session expired or invalid", "errorCode": "INVALID_SESSION_ID"}]`))
	}))
	defer server.Close()

	credentialRepo := new(MockCredentialRepository)
	credential, err := connector.NewCredential(userID, connector.ProviderSalesforce,
		"stale-token", "", server.URL, time.Time{})
	require.NoError(t, err)
	credentialRepo.On("FindByUserAndProvider", ctx, userID, connector.ProviderSalesforce).
		Return(credential, nil)

	connect := createConnectService(&stubFlow{provider: connector.ProviderSalesforce}, credentialRepo)
	service := NewExportService(connect, newCRMClient(), zap.NewNop())

	result, createErr := service.CreateCRMAccount(ctx, validExportInput(userID))

	require.Error(t, createErr)
	assert.Nil(t, result)
	assert.Equal(t, shared.ErrSessionExpired, createErr)
}
