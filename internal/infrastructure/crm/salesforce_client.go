package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/inventoryhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// AccountInput is the data for a Salesforce Account record
type AccountInput struct {
	Name     string `json:"Name"`
	Industry string `json:"Industry,omitempty"`
	Phone    string `json:"Phone,omitempty"`
	Website  string `json:"Website,omitempty"`
}

// ContactInput is the data for a Salesforce Contact record linked to an Account
type ContactInput struct {
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	Email      string `json:"Email"`
	Phone      string `json:"Phone,omitempty"`
	AccountID  string `json:"AccountId"`
	Title      string `json:"Title,omitempty"`
	Department string `json:"Department,omitempty"`
}

// createResponse is Salesforce's answer to a successful sobject insert
type createResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// apiError is one entry of Salesforce's error array response
type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// SalesforceClient creates records through the Salesforce REST API. Calls
// are addressed to the per-org instance URL stored with the credential.
type SalesforceClient struct {
	httpClient *http.Client
	apiVersion string
	logger     *zap.Logger
}

// NewSalesforceClient creates a Salesforce REST client
func NewSalesforceClient(cfg config.IntegrationsConfig, logger *zap.Logger) *SalesforceClient {
	return &SalesforceClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		apiVersion: cfg.SalesforceAPIVersion,
		logger:     logger,
	}
}

// CreateAccount creates an Account record and returns its ID
func (c *SalesforceClient) CreateAccount(ctx context.Context, instanceURL, accessToken string, input AccountInput) (string, error) {
	return c.createObject(ctx, instanceURL, accessToken, "Account", input)
}

// CreateContact creates a Contact record linked to an Account and returns its ID
func (c *SalesforceClient) CreateContact(ctx context.Context, instanceURL, accessToken string, input ContactInput) (string, error) {
	return c.createObject(ctx, instanceURL, accessToken, "Contact", input)
}

func (c *SalesforceClient) createObject(ctx context.Context, instanceURL, accessToken, object string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal salesforce %s payload: %w", object, err)
	}

	url := fmt.Sprintf("%s/services/data/%s/sobjects/%s",
		strings.TrimRight(instanceURL, "/"), c.apiVersion, object)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build salesforce request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("salesforce request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("salesforce rejected access token", zap.String("object", object))
		return "", shared.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.decodeError(resp, object)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode salesforce %s response: %w", object, err)
	}

	c.logger.Info("salesforce record created",
		zap.String("object", object),
		zap.String("record_id", created.ID),
	)
	return created.ID, nil
}

// decodeError maps Salesforce's error array to a domain error, keeping the
// first entry's message when one is present
func (c *SalesforceClient) decodeError(resp *http.Response, object string) error {
	var apiErrors []apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErrors); err == nil && len(apiErrors) > 0 && apiErrors[0].Message != "" {
		c.logger.Warn("salesforce request failed",
			zap.String("object", object),
			zap.Int("status", resp.StatusCode),
			zap.String("error_code", apiErrors[0].ErrorCode),
		)
		return shared.NewDomainError("UPSTREAM_ERROR", fmt.Sprintf("Salesforce error: %s", apiErrors[0].Message))
	}

	c.logger.Warn("salesforce request failed",
		zap.String("object", object),
		zap.Int("status", resp.StatusCode),
	)
	return shared.ErrUpstream
}
