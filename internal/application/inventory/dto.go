package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateInventoryInput contains the data for creating an inventory
type CreateInventoryInput struct {
	OwnerID        uuid.UUID
	Title          string
	Description    string
	CategoryID     *uuid.UUID
	ImageURL       string
	IsPublic       bool
	Tags           []string
	CustomIDPrefix string
	CustomIDFormat string
}

// UpdateInventoryInput contains the editable inventory fields.
// Nil pointers leave the field unchanged.
type UpdateInventoryInput struct {
	InventoryID uuid.UUID
	UserID      uuid.UUID

	Title       *string
	Description *string
	ImageURL    *string
	IsPublic    *bool
	Tags        []string
	CategoryID  *uuid.UUID
	// ClearCategory removes the category reference; it wins over CategoryID.
	ClearCategory bool
}

// UpdateCustomIDSchemeInput changes how future item IDs are generated
type UpdateCustomIDSchemeInput struct {
	InventoryID  uuid.UUID
	UserID       uuid.UUID
	Prefix       string
	Format       string
	CounterStart int64
}

// FieldSlotInput defines one custom field slot
type FieldSlotInput struct {
	Kind   inventory.SlotKind
	Slot   int
	Name   string
	Active bool
}

// UpdateFieldSlotsInput replaces the definitions of the given slots
type UpdateFieldSlotsInput struct {
	InventoryID uuid.UUID
	UserID      uuid.UUID
	Slots       []FieldSlotInput
}

// ListInventoriesInput lists inventories visible to the viewer.
// A nil ViewerID is an anonymous caller.
type ListInventoriesInput struct {
	ViewerID *uuid.UUID
	Page     int
	PageSize int
	Search   string
	OwnerID  *uuid.UUID
	Category *uuid.UUID
	OrderBy  string
	OrderDir string
}

// InventoryInfo is the read model of an inventory
type InventoryInfo struct {
	ID             uuid.UUID             `json:"id"`
	OwnerID        uuid.UUID             `json:"owner_id"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	CategoryID     *uuid.UUID            `json:"category_id,omitempty"`
	ImageURL       string                `json:"image_url,omitempty"`
	IsPublic       bool                  `json:"is_public"`
	Tags           []string              `json:"tags,omitempty"`
	CustomIDPrefix string                `json:"custom_id_prefix"`
	CustomIDFormat string                `json:"custom_id_format"`
	CounterStart   int64                 `json:"counter_start"`
	Fields         []inventory.FieldSlot `json:"fields"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Version        int                   `json:"version"`
}

// FieldValuesInput carries submitted custom field values, one optional
// value per slot. Nil means "not provided".
type FieldValuesInput struct {
	Text   [inventory.SlotsPerKind]*string
	Number [inventory.SlotsPerKind]*decimal.Decimal
	Bool   [inventory.SlotsPerKind]*bool
}

// CreateItemInput contains the data for adding an item to an inventory
type CreateItemInput struct {
	InventoryID uuid.UUID
	UserID      uuid.UUID
	Values      FieldValuesInput
}

// UpdateItemInput replaces an item's custom field values
type UpdateItemInput struct {
	ItemID uuid.UUID
	UserID uuid.UUID
	Values FieldValuesInput
}

// ListItemsInput lists the items of one inventory
type ListItemsInput struct {
	InventoryID uuid.UUID
	ViewerID    *uuid.UUID
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
}

// ItemInfo is the read model of an item
type ItemInfo struct {
	ID          uuid.UUID `json:"id"`
	InventoryID uuid.UUID `json:"inventory_id"`
	CustomID    string    `json:"custom_id"`
	CreatedByID uuid.UUID `json:"created_by_id"`

	Text1 *string `json:"text1,omitempty"`
	Text2 *string `json:"text2,omitempty"`
	Text3 *string `json:"text3,omitempty"`

	Number1 *decimal.Decimal `json:"number1,omitempty"`
	Number2 *decimal.Decimal `json:"number2,omitempty"`
	Number3 *decimal.Decimal `json:"number3,omitempty"`

	Bool1 *bool `json:"bool1,omitempty"`
	Bool2 *bool `json:"bool2,omitempty"`
	Bool3 *bool `json:"bool3,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

func toInventoryInfo(inv *inventory.Inventory) InventoryInfo {
	return InventoryInfo{
		ID:             inv.ID,
		OwnerID:        inv.OwnerID,
		Title:          inv.Title,
		Description:    inv.Description,
		CategoryID:     inv.CategoryID,
		ImageURL:       inv.ImageURL,
		IsPublic:       inv.IsPublic,
		Tags:           inv.Tags,
		CustomIDPrefix: inv.CustomIDPrefix,
		CustomIDFormat: inv.CustomIDFormat,
		CounterStart:   inv.CounterStart,
		Fields:         inv.FieldSlots.ActiveSlots(),
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
		Version:        inv.Version,
	}
}

// toItemInfo renders an item against its inventory's current slot
// definitions; values of deactivated slots are withheld.
func toItemInfo(inv *inventory.Inventory, item *inventory.Item) ItemInfo {
	values := item.VisibleValues(inv)
	return ItemInfo{
		ID:          item.ID,
		InventoryID: item.InventoryID,
		CustomID:    item.CustomID,
		CreatedByID: item.CreatedByID,
		Text1:       values.Text[0],
		Text2:       values.Text[1],
		Text3:       values.Text[2],
		Number1:     values.Number[0],
		Number2:     values.Number[1],
		Number3:     values.Number[2],
		Bool1:       values.Bool[0],
		Bool2:       values.Bool[1],
		Bool3:       values.Bool[2],
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Version:     item.Version,
	}
}
