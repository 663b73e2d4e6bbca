package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/inventoryhub/backend/internal/infrastructure/drive"
	"go.uber.org/zap"
)

// ticketFile is the JSON document written to the user's OneDrive
type ticketFile struct {
	TicketID   string `json:"ticketId"`
	Summary    string `json:"summary"`
	Priority   string `json:"priority,omitempty"`
	ReportedBy string `json:"reportedBy,omitempty"`
	Link       string `json:"link,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// TicketService uploads support tickets to the user's OneDrive
type TicketService struct {
	connect *ConnectService
	drive   *drive.OneDriveClient
	logger  *zap.Logger
	now     func() time.Time
}

// NewTicketService creates a new ticket service
func NewTicketService(connect *ConnectService, driveClient *drive.OneDriveClient, logger *zap.Logger) *TicketService {
	return &TicketService{
		connect: connect,
		drive:   driveClient,
		logger:  logger,
		now:     time.Now,
	}
}

// UploadTicket writes the ticket as a JSON file into the SupportTickets
// folder of the user's OneDrive. Test uploads go through validation and the
// connection check but skip the transfer itself.
func (s *TicketService) UploadTicket(ctx context.Context, input UploadTicketInput) (*UploadTicketResult, error) {
	if input.TicketID == "" || input.Summary == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "ticketId and summary are required")
	}

	credential, err := s.connect.EnsureAccessToken(ctx, input.UserID, connector.ProviderMicrosoft)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("support-ticket-%s.json", input.TicketID)
	if input.Test {
		return &UploadTicketResult{FileName: filename, Test: true}, nil
	}

	content, err := json.MarshalIndent(ticketFile{
		TicketID:   input.TicketID,
		Summary:    input.Summary,
		Priority:   input.Priority,
		ReportedBy: input.ReportedBy,
		Link:       input.Link,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to serialize ticket")
	}

	uploaded, err := s.drive.Upload(ctx, credential.AccessToken, filename, content)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Support ticket uploaded",
		zap.String("user_id", input.UserID.String()),
		zap.String("ticket_id", input.TicketID),
		zap.String("file", uploaded.Name))

	return &UploadTicketResult{
		FileName: uploaded.Name,
		WebURL:   uploaded.WebURL,
	}, nil
}
