package venues

import (
	"time"

	"github.com/google/uuid"
)

// MaxLocationEdits is how many times a vendor may change a venue's address
// or city before the location locks.
const MaxLocationEdits = 2

type Venue struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VendorID     uuid.UUID `gorm:"type:uuid;index;not null" json:"vendor_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Address      string    `gorm:"not null" json:"address"`
	City         string    `gorm:"not null;index" json:"city"`
	Category     string    `gorm:"index" json:"category"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	PricePerHour float64   `gorm:"not null;default:0" json:"price_per_hour"`
	Amenities    string    `json:"amenities"`
	IsAvailable  bool      `gorm:"not null;default:true" json:"is_available"`

	// Address and city edits are counted; after MaxLocationEdits the
	// location fields are permanently locked.
	LocationEditCount int  `gorm:"not null;default:0" json:"location_edit_count"`
	IsLocationLocked  bool `gorm:"not null;default:false" json:"is_location_locked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

// RecordLocationEdit bumps the edit counter and locks the location once the
// allowance is used up.
func (v *Venue) RecordLocationEdit() {
	v.LocationEditCount++
	if v.LocationEditCount >= MaxLocationEdits {
		v.IsLocationLocked = true
	}
}
