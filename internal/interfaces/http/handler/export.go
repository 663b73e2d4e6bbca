package handler

import (
	"github.com/gin-gonic/gin"
	connapp "github.com/inventoryhub/backend/internal/application/connector"
	"github.com/inventoryhub/backend/internal/interfaces/http/middleware"
)

// CreateCRMAccountRequest is the request body for the Salesforce export
type CreateCRMAccountRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=1,max=255"`
	Industry    string `json:"industry" binding:"omitempty,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=40"`
	Website     string `json:"website" binding:"omitempty,url,max=255"`

	FirstName    string `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string `json:"last_name" binding:"required,min=1,max=100"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,max=40"`
	JobTitle     string `json:"job_title" binding:"omitempty,max=128"`
	Department   string `json:"department" binding:"omitempty,max=80"`
}

// ExportHandler pushes profile data into the caller's Salesforce org
type ExportHandler struct {
	BaseHandler
	exportService *connapp.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *connapp.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// CreateCRMAccount creates a Salesforce Account with a linked Contact
func (h *ExportHandler) CreateCRMAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateCRMAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.exportService.CreateCRMAccount(c.Request.Context(), connapp.CreateCRMAccountInput{
		UserID:       userID,
		CompanyName:  req.CompanyName,
		Industry:     req.Industry,
		Phone:        req.Phone,
		Website:      req.Website,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		JobTitle:     req.JobTitle,
		Department:   req.Department,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
