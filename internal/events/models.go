package events

import (
	"time"

	"github.com/google/uuid"
)

// MaxVenueEdits mirrors the venue location lock: a vendor may move an event
// to a different venue at most twice.
const MaxVenueEdits = 2

type Event struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VendorID    uuid.UUID   `json:"vendor_id" gorm:"type:uuid;index;not null"`
	VenueID     uuid.UUID   `json:"venue_id" gorm:"type:uuid;index;not null"`
	Name        string      `json:"name" gorm:"not null;size:255"`
	Description string      `json:"description" gorm:"type:text"`
	Category    string      `json:"category" gorm:"index;size:100"`
	StartTime   time.Time   `json:"start_time" gorm:"not null;index"`
	EndTime     time.Time   `json:"end_time"`
	Status      EventStatus `json:"status" gorm:"type:varchar(20);default:'DRAFT';index"`
	BookingType BookingType `json:"booking_type" gorm:"type:varchar(20);not null"`
	ImageURL    string      `json:"image_url" gorm:"size:500"`

	// QUANTITY events sell undifferentiated tickets at a flat price.
	// SEAT_SELECTION events price per seat category and leave these zero.
	TicketPrice      float64 `json:"ticket_price" gorm:"not null;default:0;check:ticket_price >= 0"`
	TotalTickets     int     `json:"total_tickets" gorm:"not null;default:0;check:total_tickets >= 0"`
	TicketsAvailable int     `json:"tickets_available" gorm:"not null;default:0;check:tickets_available >= 0"`

	VenueEditCount    int  `json:"venue_edit_count" gorm:"not null;default:0"`
	IsVenueEditLocked bool `json:"is_venue_edit_locked" gorm:"not null;default:false"`

	// Set by a vendor reschedule; cancellations after it refund at the
	// reschedule rate instead of the time-based one.
	WasRescheduled bool `json:"was_rescheduled" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) RecordVenueEdit() {
	e.VenueEditCount++
	if e.VenueEditCount >= MaxVenueEdits {
		e.IsVenueEditLocked = true
	}
}

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:               e.ID.String(),
		VendorID:         e.VendorID.String(),
		VenueID:          e.VenueID.String(),
		Name:             e.Name,
		Description:      e.Description,
		Category:         e.Category,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Status:           e.Status,
		BookingType:      e.BookingType,
		ImageURL:         e.ImageURL,
		TicketPrice:      e.TicketPrice,
		TotalTickets:     e.TotalTickets,
		TicketsAvailable: e.TicketsAvailable,
		WasRescheduled:   e.WasRescheduled,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
