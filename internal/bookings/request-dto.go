package bookings

import "time"

type BookSeatsRequest struct {
	SeatIDs             []string `json:"seat_ids" binding:"required,min=1,dive,min=3"`
	PointsToUse         int64    `json:"points_to_use" binding:"min=0"`
	PaypalTransactionID string   `json:"paypal_transaction_id" binding:"omitempty,min=5,max=100"`
}

type BookTicketsRequest struct {
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	PointsToUse         int64  `json:"points_to_use" binding:"min=0"`
	PaypalTransactionID string `json:"paypal_transaction_id" binding:"omitempty,min=5,max=100"`
}

type BookVenueRequest struct {
	CheckIn             time.Time `json:"check_in" binding:"required"`
	CheckOut            time.Time `json:"check_out" binding:"required,gtfield=CheckIn"`
	PointsToUse         int64     `json:"points_to_use" binding:"min=0"`
	PaypalTransactionID string    `json:"paypal_transaction_id" binding:"omitempty,min=5,max=100"`
}

type BookingListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
	EventID  string `form:"event_id" binding:"omitempty,uuid"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}
