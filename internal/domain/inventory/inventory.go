package inventory

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/shared"
)

// SlotKind identifies the type of a custom field slot
type SlotKind string

const (
	SlotKindText    SlotKind = "text"
	SlotKindNumber  SlotKind = "number"
	SlotKindBoolean SlotKind = "boolean"
)

// SlotsPerKind is the number of slots available for each field kind
const SlotsPerKind = 3

// TagList stores tags as a single comma-joined column
type TagList []string

// Value implements driver.Valuer
func (t TagList) Value() (driver.Value, error) {
	return strings.Join(t, ","), nil
}

// Scan implements sql.Scanner
func (t *TagList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported tag list type %T", src)
	}

	if raw == "" {
		*t = nil
		return nil
	}
	*t = strings.Split(raw, ",")
	return nil
}

// FieldSlots holds the nine owner-configurable custom field definitions:
// three text, three number and three boolean slots, each with a display
// name and an active flag. Deactivating a slot hides it without erasing
// stored item values.
type FieldSlots struct {
	Text1Name   string `gorm:"size:200"`
	Text1Active bool
	Text2Name   string `gorm:"size:200"`
	Text2Active bool
	Text3Name   string `gorm:"size:200"`
	Text3Active bool

	Number1Name   string `gorm:"size:200"`
	Number1Active bool
	Number2Name   string `gorm:"size:200"`
	Number2Active bool
	Number3Name   string `gorm:"size:200"`
	Number3Active bool

	Bool1Name   string `gorm:"size:200"`
	Bool1Active bool
	Bool2Name   string `gorm:"size:200"`
	Bool2Active bool
	Bool3Name   string `gorm:"size:200"`
	Bool3Active bool
}

// FieldSlot is the read model of a single active slot
type FieldSlot struct {
	Key   string   `json:"key"`
	Kind  SlotKind `json:"kind"`
	Slot  int      `json:"slot"`
	Name  string   `json:"name"`
	Order int      `json:"order"`
}

// slotRef points at the name/active pair of one slot
type slotRef struct {
	kind   SlotKind
	slot   int
	name   *string
	active *bool
}

func (f *FieldSlots) refs() []slotRef {
	return []slotRef{
		{SlotKindText, 1, &f.Text1Name, &f.Text1Active},
		{SlotKindText, 2, &f.Text2Name, &f.Text2Active},
		{SlotKindText, 3, &f.Text3Name, &f.Text3Active},
		{SlotKindNumber, 1, &f.Number1Name, &f.Number1Active},
		{SlotKindNumber, 2, &f.Number2Name, &f.Number2Active},
		{SlotKindNumber, 3, &f.Number3Name, &f.Number3Active},
		{SlotKindBoolean, 1, &f.Bool1Name, &f.Bool1Active},
		{SlotKindBoolean, 2, &f.Bool2Name, &f.Bool2Active},
		{SlotKindBoolean, 3, &f.Bool3Name, &f.Bool3Active},
	}
}

// ActiveSlots returns the active field slots in display order:
// text slots 1-3, number slots 4-6, boolean slots 7-9.
func (f *FieldSlots) ActiveSlots() []FieldSlot {
	slots := make([]FieldSlot, 0, 9)
	for i, r := range f.refs() {
		if !*r.active {
			continue
		}
		slots = append(slots, FieldSlot{
			Key:   fmt.Sprintf("%s%d", r.kind, r.slot),
			Kind:  r.kind,
			Slot:  r.slot,
			Name:  *r.name,
			Order: i + 1,
		})
	}
	return slots
}

// IsActive reports whether the given slot is active
func (f *FieldSlots) IsActive(kind SlotKind, slot int) bool {
	for _, r := range f.refs() {
		if r.kind == kind && r.slot == slot {
			return *r.active
		}
	}
	return false
}

// Set updates one slot's display name and active flag
func (f *FieldSlots) Set(kind SlotKind, slot int, name string, active bool) error {
	if slot < 1 || slot > SlotsPerKind {
		return shared.NewDomainError("INVALID_FIELD_SLOT", fmt.Sprintf("Slot must be between 1 and %d", SlotsPerKind))
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_FIELD_SLOT", "Slot name cannot exceed 200 characters")
	}
	for _, r := range f.refs() {
		if r.kind == kind && r.slot == slot {
			*r.name = strings.TrimSpace(name)
			*r.active = active
			return nil
		}
	}
	return shared.NewDomainError("INVALID_FIELD_SLOT", fmt.Sprintf("Unknown field kind %q", kind))
}

// Inventory is the aggregate root for a collection of items.
// Visibility: public inventories are readable by anyone, private ones only
// by their owner. All mutations are owner-only.
type Inventory struct {
	shared.OwnedAggregateRoot
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	ImageURL    string     `gorm:"size:500"`
	IsPublic    bool       `gorm:"not null;default:false;index"`
	Tags        TagList    `gorm:"type:text"`

	CustomIDPrefix string `gorm:"size:50;not null"`
	CustomIDFormat string `gorm:"size:100;not null"`
	CounterStart   int64  `gorm:"not null;default:1"`
	// NextCounter is the allocation state for custom item IDs. Zero means
	// the counter has never been claimed and must be seeded from the last
	// issued ID (or CounterStart) on first allocation.
	NextCounter int64 `gorm:"not null;default:0"`

	FieldSlots FieldSlots `gorm:"embedded"`
}

// TableName overrides the gorm table name
func (Inventory) TableName() string {
	return "inventories"
}

// NewInventory creates a new inventory owned by the given user
func NewInventory(ownerID uuid.UUID, title, customIDPrefix, customIDFormat string) (*Inventory, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}

	customIDPrefix = strings.TrimSpace(customIDPrefix)
	if customIDPrefix == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOM_ID_PREFIX", "Custom ID prefix cannot be empty")
	}
	if len(customIDPrefix) > 50 {
		return nil, shared.NewDomainError("INVALID_CUSTOM_ID_PREFIX", "Custom ID prefix cannot exceed 50 characters")
	}

	if err := ValidateCustomIDFormat(customIDFormat); err != nil {
		return nil, err
	}

	return &Inventory{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Title:              title,
		CustomIDPrefix:     customIDPrefix,
		CustomIDFormat:     customIDFormat,
		CounterStart:       1,
	}, nil
}

// CanView reports whether the given viewer may read this inventory.
// A nil viewer is an anonymous caller.
func (i *Inventory) CanView(viewerID *uuid.UUID) bool {
	if i.IsPublic {
		return true
	}
	return viewerID != nil && i.IsOwnedBy(*viewerID)
}

// CanModify reports whether the given user may mutate this inventory
func (i *Inventory) CanModify(userID uuid.UUID) bool {
	return i.IsOwnedBy(userID)
}

// CanComment reports whether the given user may comment: public inventories
// accept comments from any authenticated user, private ones only from the owner.
func (i *Inventory) CanComment(userID uuid.UUID) bool {
	return i.IsPublic || i.IsOwnedBy(userID)
}

// SetTitle updates the inventory title
func (i *Inventory) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}

	i.Title = title
	i.touch()
	return nil
}

// SetDescription updates the description
func (i *Inventory) SetDescription(description string) {
	i.Description = description
	i.touch()
}

// SetCategory sets or clears the category reference
func (i *Inventory) SetCategory(categoryID *uuid.UUID) {
	i.CategoryID = categoryID
	i.touch()
}

// SetImageURL updates the cover image URL
func (i *Inventory) SetImageURL(imageURL string) error {
	if len(imageURL) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}
	i.ImageURL = imageURL
	i.touch()
	return nil
}

// SetVisibility toggles between public and private
func (i *Inventory) SetVisibility(isPublic bool) {
	i.IsPublic = isPublic
	i.touch()
}

// SetTags replaces the tag list, dropping empties and surrounding whitespace
func (i *Inventory) SetTags(tags []string) {
	cleaned := make(TagList, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	i.Tags = cleaned
	i.touch()
}

// SetCustomIDScheme updates the prefix, format and counter start.
// Already issued IDs keep their historical shape.
func (i *Inventory) SetCustomIDScheme(prefix, format string, counterStart int64) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return shared.NewDomainError("INVALID_CUSTOM_ID_PREFIX", "Custom ID prefix cannot be empty")
	}
	if len(prefix) > 50 {
		return shared.NewDomainError("INVALID_CUSTOM_ID_PREFIX", "Custom ID prefix cannot exceed 50 characters")
	}
	if err := ValidateCustomIDFormat(format); err != nil {
		return err
	}
	if counterStart < 1 {
		return shared.NewDomainError("INVALID_COUNTER_START", "Counter start must be at least 1")
	}

	i.CustomIDPrefix = prefix
	i.CustomIDFormat = format
	i.CounterStart = counterStart
	i.touch()
	return nil
}

// SetFieldSlot updates one custom field slot definition
func (i *Inventory) SetFieldSlot(kind SlotKind, slot int, name string, active bool) error {
	if err := i.FieldSlots.Set(kind, slot, name, active); err != nil {
		return err
	}
	i.touch()
	return nil
}

// CustomIDFor renders the custom ID for a freshly allocated counter value
func (i *Inventory) CustomIDFor(counter int64) string {
	return GenerateCustomID(i.CustomIDPrefix, counter, i.CustomIDFormat)
}

func (i *Inventory) touch() {
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
