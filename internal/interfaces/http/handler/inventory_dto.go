package handler

import (
	"github.com/google/uuid"
	invapp "github.com/inventoryhub/backend/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// CreateInventoryRequest is the request body for creating an inventory
type CreateInventoryRequest struct {
	Title          string     `json:"title" binding:"required,min=1,max=200"`
	Description    string     `json:"description" binding:"omitempty,max=5000"`
	CategoryID     *uuid.UUID `json:"category_id" binding:"omitempty"`
	ImageURL       string     `json:"image_url" binding:"omitempty,url,max=2000"`
	IsPublic       bool       `json:"is_public"`
	Tags           []string   `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	CustomIDPrefix string     `json:"custom_id_prefix" binding:"required,min=1,max=20"`
	CustomIDFormat string     `json:"custom_id_format" binding:"omitempty,customidformat,max=100"`
}

// UpdateInventoryRequest is the request body for updating an inventory.
// Absent fields stay unchanged.
type UpdateInventoryRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string    `json:"description" binding:"omitempty,max=5000"`
	ImageURL      *string    `json:"image_url" binding:"omitempty,max=2000"`
	IsPublic      *bool      `json:"is_public"`
	Tags          []string   `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	CategoryID    *uuid.UUID `json:"category_id"`
	ClearCategory bool       `json:"clear_category"`
}

// UpdateCustomIDSchemeRequest changes how future item IDs are generated
type UpdateCustomIDSchemeRequest struct {
	Prefix       string `json:"prefix" binding:"required,min=1,max=20"`
	Format       string `json:"format" binding:"omitempty,customidformat,max=100"`
	CounterStart int64  `json:"counter_start" binding:"omitempty,min=1"`
}

// FieldSlotRequest defines one custom field slot
type FieldSlotRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=text number boolean"`
	Slot   int    `json:"slot" binding:"required,min=1,max=3"`
	Name   string `json:"name" binding:"omitempty,max=200"`
	Active bool   `json:"active"`
}

// UpdateFieldSlotsRequest replaces the definitions of the given slots
type UpdateFieldSlotsRequest struct {
	Slots []FieldSlotRequest `json:"slots" binding:"required,min=1,max=9,dive"`
}

// ListInventoriesRequest is the query-string shape for listing inventories
type ListInventoriesRequest struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=200"`
	OwnerID  string `form:"ownerId" binding:"omitempty,uuid"`
	Category string `form:"categoryId" binding:"omitempty,uuid"`
	OrderBy  string `form:"orderBy" binding:"omitempty,oneof=created_at updated_at title"`
	OrderDir string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}

// FieldValuesRequest carries custom field values, one optional value per
// slot. Absent values clear the slot.
type FieldValuesRequest struct {
	Text1 *string `json:"text1"`
	Text2 *string `json:"text2"`
	Text3 *string `json:"text3"`

	Number1 *decimal.Decimal `json:"number1"`
	Number2 *decimal.Decimal `json:"number2"`
	Number3 *decimal.Decimal `json:"number3"`

	Bool1 *bool `json:"bool1"`
	Bool2 *bool `json:"bool2"`
	Bool3 *bool `json:"bool3"`
}

func (r FieldValuesRequest) toInput() invapp.FieldValuesInput {
	return invapp.FieldValuesInput{
		Text:   [3]*string{r.Text1, r.Text2, r.Text3},
		Number: [3]*decimal.Decimal{r.Number1, r.Number2, r.Number3},
		Bool:   [3]*bool{r.Bool1, r.Bool2, r.Bool3},
	}
}

// ListItemsRequest is the query-string shape for listing items
type ListItemsRequest struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"orderBy" binding:"omitempty,oneof=created_at updated_at custom_id"`
	OrderDir string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}
