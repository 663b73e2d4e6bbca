package handler

import (
	"github.com/gin-gonic/gin"
	connapp "github.com/inventoryhub/backend/internal/application/connector"
	"github.com/inventoryhub/backend/internal/interfaces/http/middleware"
)

// UploadTicketRequest is the request body for the OneDrive ticket upload.
// Test uploads validate and check the connection but skip the transfer.
type UploadTicketRequest struct {
	TicketID   string `json:"ticket_id" binding:"required,min=1,max=64"`
	Summary    string `json:"summary" binding:"required,min=1,max=2000"`
	Priority   string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	ReportedBy string `json:"reported_by" binding:"omitempty,max=255"`
	Link       string `json:"link" binding:"omitempty,url,max=2000"`
	Test       bool   `json:"test"`
}

// TicketHandler uploads support tickets to the caller's OneDrive
type TicketHandler struct {
	BaseHandler
	ticketService *connapp.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *connapp.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// UploadTicket writes the ticket as a JSON file into the user's OneDrive
func (h *TicketHandler) UploadTicket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UploadTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	// The reporter defaults to the authenticated user; the body may only
	// narrow it down, e.g. when filing on behalf of a teammate.
	reportedBy := req.ReportedBy
	if reportedBy == "" {
		reportedBy = middleware.GetJWTEmail(c)
	}

	result, err := h.ticketService.UploadTicket(c.Request.Context(), connapp.UploadTicketInput{
		UserID:     userID,
		TicketID:   req.TicketID,
		Summary:    req.Summary,
		Priority:   req.Priority,
		ReportedBy: reportedBy,
		Link:       req.Link,
		Test:       req.Test,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
