package events

import "time"

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	VenueID     string    `json:"venue_id" binding:"required,uuid"`
	Category    string    `json:"category" binding:"max=100"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time"`
	BookingType string    `json:"booking_type" binding:"required,oneof=QUANTITY SEAT_SELECTION"`
	ImageURL    string    `json:"image_url" binding:"omitempty,url"`

	// QUANTITY events only
	TicketPrice  float64 `json:"ticket_price" binding:"omitempty,min=0"`
	TotalTickets int     `json:"total_tickets" binding:"omitempty,min=1,max=100000"`
}

type UpdateEventRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Description  *string    `json:"description" binding:"omitempty,max=2000"`
	VenueID      *string    `json:"venue_id" binding:"omitempty,uuid"`
	Category     *string    `json:"category" binding:"omitempty,max=100"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	ImageURL     *string    `json:"image_url" binding:"omitempty,url"`
	TicketPrice  *float64   `json:"ticket_price" binding:"omitempty,min=0"`
	TotalTickets *int       `json:"total_tickets" binding:"omitempty,min=1,max=100000"`
}

type RescheduleEventRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time"`
}

type EventListQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search      string `form:"search"`
	Category    string `form:"category"`
	City        string `form:"city"`
	Status      string `form:"status" binding:"omitempty,oneof=DRAFT PUBLISHED CANCELLED"`
	BookingType string `form:"booking_type" binding:"omitempty,oneof=QUANTITY SEAT_SELECTION"`
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
}
