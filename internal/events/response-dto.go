package events

import "time"

type EventResponse struct {
	ID               string      `json:"id"`
	VendorID         string      `json:"vendor_id"`
	VenueID          string      `json:"venue_id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Category         string      `json:"category"`
	StartTime        time.Time   `json:"start_time"`
	EndTime          time.Time   `json:"end_time"`
	Status           EventStatus `json:"status"`
	BookingType      BookingType `json:"booking_type"`
	ImageURL         string      `json:"image_url"`
	TicketPrice      float64     `json:"ticket_price"`
	TotalTickets     int         `json:"total_tickets"`
	TicketsAvailable int         `json:"tickets_available"`
	WasRescheduled   bool        `json:"was_rescheduled"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type PublishEventResponse struct {
	Event         EventResponse `json:"event"`
	SeatsFrozen   int           `json:"seats_frozen,omitempty"`
	SeatFeePoints int64         `json:"seat_fee_points,omitempty"`
}
