package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FieldValues carries submitted custom field values, indexed by slot (0-based).
// Nil entries mean "not provided".
type FieldValues struct {
	Text   [SlotsPerKind]*string
	Number [SlotsPerKind]*decimal.Decimal
	Bool   [SlotsPerKind]*bool
}

// Item is an entry in an inventory. Its CustomID is generated from the
// inventory's template and is unique within the inventory.
type Item struct {
	shared.BaseAggregateRoot
	InventoryID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_items_inventory_custom_id"`
	CustomID    string    `gorm:"size:150;not null;uniqueIndex:idx_items_inventory_custom_id"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index"`

	Text1 *string `gorm:"type:text"`
	Text2 *string `gorm:"type:text"`
	Text3 *string `gorm:"type:text"`

	Number1 *decimal.Decimal `gorm:"type:numeric(20,6)"`
	Number2 *decimal.Decimal `gorm:"type:numeric(20,6)"`
	Number3 *decimal.Decimal `gorm:"type:numeric(20,6)"`

	Bool1 *bool
	Bool2 *bool
	Bool3 *bool
}

// TableName overrides the gorm table name
func (Item) TableName() string {
	return "items"
}

// NewItem creates an item with an already generated custom ID.
// Submitted values for inactive slots are discarded, not rejected.
func NewItem(inv *Inventory, customID string, createdBy uuid.UUID, values FieldValues) (*Item, error) {
	if customID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOM_ID", "Custom ID cannot be empty")
	}

	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InventoryID:       inv.ID,
		CustomID:          customID,
		CreatedByID:       createdBy,
	}
	item.applyValues(inv, values)

	return item, nil
}

// SetFieldValues replaces the item's custom field values, again masking
// out anything submitted for an inactive slot.
func (it *Item) SetFieldValues(inv *Inventory, values FieldValues) {
	it.applyValues(inv, values)
	it.UpdatedAt = time.Now()
	it.IncrementVersion()
}

// VisibleValues returns the item's values with inactive slots masked out.
// A value stored while its slot was active stays in the row after the owner
// deactivates the slot, but it must not be exposed to readers.
func (it *Item) VisibleValues(inv *Inventory) FieldValues {
	values := FieldValues{
		Text:   [SlotsPerKind]*string{it.Text1, it.Text2, it.Text3},
		Number: [SlotsPerKind]*decimal.Decimal{it.Number1, it.Number2, it.Number3},
		Bool:   [SlotsPerKind]*bool{it.Bool1, it.Bool2, it.Bool3},
	}

	for slot := 1; slot <= SlotsPerKind; slot++ {
		values.Text[slot-1] = maskValue(values.Text[slot-1], inv.FieldSlots.IsActive(SlotKindText, slot))
		values.Number[slot-1] = maskValue(values.Number[slot-1], inv.FieldSlots.IsActive(SlotKindNumber, slot))
		values.Bool[slot-1] = maskValue(values.Bool[slot-1], inv.FieldSlots.IsActive(SlotKindBoolean, slot))
	}

	return values
}

func (it *Item) applyValues(inv *Inventory, values FieldValues) {
	texts := [SlotsPerKind]**string{&it.Text1, &it.Text2, &it.Text3}
	numbers := [SlotsPerKind]**decimal.Decimal{&it.Number1, &it.Number2, &it.Number3}
	bools := [SlotsPerKind]**bool{&it.Bool1, &it.Bool2, &it.Bool3}

	for slot := 1; slot <= SlotsPerKind; slot++ {
		*texts[slot-1] = maskValue(values.Text[slot-1], inv.FieldSlots.IsActive(SlotKindText, slot))
		*numbers[slot-1] = maskValue(values.Number[slot-1], inv.FieldSlots.IsActive(SlotKindNumber, slot))
		*bools[slot-1] = maskValue(values.Bool[slot-1], inv.FieldSlots.IsActive(SlotKindBoolean, slot))
	}
}

func maskValue[T any](v *T, active bool) *T {
	if !active {
		return nil
	}
	return v
}
