package layout

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SeatCategory defines a vendor-authored block of rows sharing a price.
// Rows and AisleAfter are stored as comma-separated text so the whole
// configuration stays a flat table row.
type SeatCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_event_category_name" json:"event_id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_event_category_name" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	ColorTag    string    `gorm:"type:varchar(30)" json:"color_tag"`
	Rows        string    `gorm:"not null" json:"-"`
	SeatsPerRow int       `gorm:"not null" json:"seats_per_row"`
	AisleAfter  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for SeatCategory
func (SeatCategory) TableName() string {
	return "seat_categories"
}

// RowLabels returns the row labels claimed by this category.
func (c *SeatCategory) RowLabels() []string {
	return splitList(c.Rows)
}

// AisleBreaks returns the 1-based slot indices after which a gap is rendered.
func (c *SeatCategory) AisleBreaks() []int {
	var breaks []int
	for _, part := range splitList(c.AisleAfter) {
		if n, err := strconv.Atoi(part); err == nil {
			breaks = append(breaks, n)
		}
	}
	return breaks
}

// ToConfig converts the persisted row into the compiler's input form.
func (c *SeatCategory) ToConfig() CategoryConfig {
	return CategoryConfig{
		Name:        c.Name,
		Price:       c.Price,
		ColorTag:    c.ColorTag,
		Rows:        c.RowLabels(),
		SeatsPerRow: c.SeatsPerRow,
		AisleAfter:  c.AisleBreaks(),
	}
}

func joinList(parts []string) string {
	return strings.Join(parts, ",")
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// CategoryConfig is the in-memory form of a seat category fed to Compile.
type CategoryConfig struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	ColorTag    string   `json:"color_tag"`
	Rows        []string `json:"rows"`
	SeatsPerRow int      `json:"seats_per_row"`
	AisleAfter  []int    `json:"aisle_after"`
}

// CompiledSeat is one addressable seat in the compiled inventory. ID is
// derived from (row, slotIndex) and never from array position, so it stays
// stable when categories are reordered or the layout is recompiled.
type CompiledSeat struct {
	ID            string  `json:"id"`
	Row           string  `json:"row"`
	SlotIndex     int     `json:"slot_index"`
	DisplayColumn int     `json:"display_column"`
	CategoryName  string  `json:"category_name"`
	Price         float64 `json:"price"`
	ColorTag      string  `json:"color_tag"`
}

// SeatRecord is the persisted form of a CompiledSeat, written once when the
// event is published. From that point the frozen inventory, not the category
// configuration, is the addressing scheme for bookings.
type SeatRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID       uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_event_seat" json:"event_id"`
	SeatID        string    `gorm:"not null;uniqueIndex:idx_event_seat" json:"seat_id"`
	Row           string    `gorm:"not null" json:"row"`
	SlotIndex     int       `gorm:"not null" json:"slot_index"`
	DisplayColumn int       `gorm:"not null" json:"display_column"`
	CategoryName  string    `gorm:"not null" json:"category_name"`
	Price         float64   `gorm:"not null" json:"price"`
	ColorTag      string    `gorm:"type:varchar(30)" json:"color_tag"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName sets the table name for SeatRecord
func (SeatRecord) TableName() string {
	return "compiled_seats"
}

// ToCompiledSeat converts the persisted record back to the in-memory form.
func (r *SeatRecord) ToCompiledSeat() CompiledSeat {
	return CompiledSeat{
		ID:            r.SeatID,
		Row:           r.Row,
		SlotIndex:     r.SlotIndex,
		DisplayColumn: r.DisplayColumn,
		CategoryName:  r.CategoryName,
		Price:         r.Price,
		ColorTag:      r.ColorTag,
	}
}

// SeatStatus is the per-seat state shown to a viewer.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBooked    SeatStatus = "BOOKED"
	SeatSelected  SeatStatus = "SELECTED"
)
