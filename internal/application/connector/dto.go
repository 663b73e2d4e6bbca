package connector

import (
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/connector"
)

// BeginConnectResult carries the consent page redirect and the CSRF state
// the interface layer must pin to the browser before redirecting.
type BeginConnectResult struct {
	AuthURL string
	State   string
}

// CompleteConnectInput finishes the authorization-code flow
type CompleteConnectInput struct {
	UserID   uuid.UUID
	Provider connector.Provider
	Code     string
}

// ConnectionStatus describes one provider connection of a user.
// InstanceURL is only set for Salesforce, whose API host is per-org.
type ConnectionStatus struct {
	Provider    connector.Provider `json:"provider"`
	Connected   bool               `json:"connected"`
	InstanceURL string             `json:"instance_url,omitempty"`
	ExpiresAt   *time.Time         `json:"expires_at,omitempty"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty"`
}

// CreateCRMAccountInput contains the data exported to Salesforce
type CreateCRMAccountInput struct {
	UserID uuid.UUID

	CompanyName string
	Industry    string
	Phone       string
	Website     string

	FirstName    string
	LastName     string
	ContactEmail string
	ContactPhone string
	JobTitle     string
	Department   string
}

// CreateCRMAccountResult carries the IDs of the created Salesforce records
type CreateCRMAccountResult struct {
	AccountID string `json:"account_id"`
	ContactID string `json:"contact_id"`
}

// UploadTicketInput contains a support ticket bound for OneDrive.
// Test uploads go through every check but skip the actual transfer.
type UploadTicketInput struct {
	UserID uuid.UUID

	TicketID   string
	Summary    string
	Priority   string
	ReportedBy string
	Link       string
	Test       bool
}

// UploadTicketResult describes the uploaded ticket file
type UploadTicketResult struct {
	FileName string `json:"file_name"`
	WebURL   string `json:"web_url,omitempty"`
	Test     bool   `json:"test,omitempty"`
}
