package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking covers both booking types: QUANTITY rows carry Quantity,
// SEAT_SELECTION rows carry BookedSeats.
type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef  string    `gorm:"unique;not null" json:"booking_ref"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	VendorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"vendor_id"`
	EventID     uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	BookingType string    `gorm:"type:varchar(20);not null" json:"booking_type"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`

	// TotalPrice is the currency value of the seats/tickets. TotalPoints is
	// that value at the conversion rate; PointsUsed is what actually left
	// the user's wallet, the remainder being covered by the recorded PayPal
	// transaction. The platform fee is always paid in points on top.
	TotalPrice          float64 `gorm:"not null" json:"total_price"`
	TotalPoints         int64   `gorm:"not null" json:"total_points"`
	PointsUsed          int64   `gorm:"not null" json:"points_used"`
	PlatformFeePoints   int64   `gorm:"not null;default:0" json:"platform_fee_points"`
	PaypalTransactionID string  `gorm:"size:100" json:"paypal_transaction_id,omitempty"`

	Status       Status     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	RefundRate   float64    `gorm:"default:0" json:"refund_rate,omitempty"`
	RefundPoints int64      `gorm:"default:0" json:"refund_points,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BookedSeats []BookedSeat `json:"booked_seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookedSeat pins one frozen-inventory seat to a booking. SeatID is the
// row-slot identity ("A-3"), stable across layout edits.
type BookedSeat struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID    uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	EventID      uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	SeatID       string    `gorm:"size:20;not null;index" json:"seat_id"`
	CategoryName string    `gorm:"size:100" json:"category_name"`
	Price        float64   `gorm:"not null" json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

// VenueBooking is a vendor's venue rented by the hour. CheckIn/CheckOut
// bound the slot; DurationHours is the billed, rounded-up hour count.
type VenueBooking struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef string    `gorm:"unique;not null" json:"booking_ref"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	VendorID   uuid.UUID `gorm:"type:uuid;index;not null" json:"vendor_id"`
	VenueID    uuid.UUID `gorm:"type:uuid;index;not null" json:"venue_id"`

	BookingDate   time.Time `gorm:"type:date;not null" json:"booking_date"`
	CheckIn       time.Time `gorm:"not null" json:"check_in"`
	CheckOut      time.Time `gorm:"not null" json:"check_out"`
	DurationHours int       `gorm:"not null" json:"duration_hours"`

	TotalPrice          float64 `gorm:"not null" json:"total_price"`
	TotalPoints         int64   `gorm:"not null" json:"total_points"`
	PointsUsed          int64   `gorm:"not null" json:"points_used"`
	PlatformFeePoints   int64   `gorm:"not null;default:0" json:"platform_fee_points"`
	PaypalTransactionID string  `gorm:"size:100" json:"paypal_transaction_id,omitempty"`

	Status       Status     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	RefundRate   float64    `gorm:"default:0" json:"refund_rate,omitempty"`
	RefundPoints int64      `gorm:"default:0" json:"refund_points,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (VenueBooking) TableName() string {
	return "venue_bookings"
}

func (BookedSeat) TableName() string {
	return "booked_seats"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
