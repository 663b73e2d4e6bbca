package connector

import (
	"context"
	"errors"

	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/inventoryhub/backend/internal/infrastructure/crm"
	"go.uber.org/zap"
)

// ExportService pushes user-submitted company data into Salesforce as an
// Account with a linked Contact.
type ExportService struct {
	connect *ConnectService
	crm     *crm.SalesforceClient
	logger  *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(connect *ConnectService, crmClient *crm.SalesforceClient, logger *zap.Logger) *ExportService {
	return &ExportService{
		connect: connect,
		crm:     crmClient,
		logger:  logger,
	}
}

// CreateCRMAccount creates the Account first, then the Contact linked to it.
// A contact failure does not roll the account back; Salesforce has no
// cross-object transaction for this.
func (s *ExportService) CreateCRMAccount(ctx context.Context, input CreateCRMAccountInput) (*CreateCRMAccountResult, error) {
	if input.CompanyName == "" || input.FirstName == "" || input.LastName == "" || input.ContactEmail == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			"companyName, firstName, lastName and contactEmail are required")
	}

	credential, err := s.connect.EnsureAccessToken(ctx, input.UserID, connector.ProviderSalesforce)
	if err != nil {
		return nil, err
	}
	if credential.InstanceURL == "" {
		s.logger.Error("Salesforce credential has no instance URL",
			zap.String("user_id", input.UserID.String()))
		return nil, shared.ErrSessionExpired
	}

	accountID, err := s.crm.CreateAccount(ctx, credential.InstanceURL, credential.AccessToken, crm.AccountInput{
		Name:     input.CompanyName,
		Industry: input.Industry,
		Phone:    input.Phone,
		Website:  input.Website,
	})
	if err != nil {
		return nil, err
	}

	contactID, err := s.crm.CreateContact(ctx, credential.InstanceURL, credential.AccessToken, crm.ContactInput{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.ContactEmail,
		Phone:      input.ContactPhone,
		AccountID:  accountID,
		Title:      input.JobTitle,
		Department: input.Department,
	})
	if err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			return nil, err
		}
		s.logger.Error("Contact creation failed after account was created",
			zap.String("account_id", accountID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Exported account to Salesforce",
		zap.String("user_id", input.UserID.String()),
		zap.String("account_id", accountID),
		zap.String("contact_id", contactID))

	return &CreateCRMAccountResult{
		AccountID: accountID,
		ContactID: contactID,
	}, nil
}
