package bookings

import "time"

type BookingResponse struct {
	BookingID           string           `json:"booking_id"`
	BookingRef          string           `json:"booking_ref"`
	EventID             string           `json:"event_id"`
	BookingType         string           `json:"booking_type"`
	Status              string           `json:"status"`
	Quantity            int              `json:"quantity,omitempty"`
	Seats               []BookedSeatInfo `json:"seats,omitempty"`
	TotalPrice          float64          `json:"total_price"`
	TotalPoints         int64            `json:"total_points"`
	PointsUsed          int64            `json:"points_used"`
	PlatformFeePoints   int64            `json:"platform_fee_points"`
	PaypalTransactionID string           `json:"paypal_transaction_id,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

type BookedSeatInfo struct {
	SeatID       string  `json:"seat_id"`
	CategoryName string  `json:"category_name"`
	Price        float64 `json:"price"`
}

type VenueBookingResponse struct {
	BookingID           string    `json:"booking_id"`
	BookingRef          string    `json:"booking_ref"`
	VenueID             string    `json:"venue_id"`
	Status              string    `json:"status"`
	BookingDate         time.Time `json:"booking_date"`
	CheckIn             time.Time `json:"check_in"`
	CheckOut            time.Time `json:"check_out"`
	DurationHours       int       `json:"duration_hours"`
	TotalPrice          float64   `json:"total_price"`
	TotalPoints         int64     `json:"total_points"`
	PointsUsed          int64     `json:"points_used"`
	PlatformFeePoints   int64     `json:"platform_fee_points"`
	PaypalTransactionID string    `json:"paypal_transaction_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type CancellationResponse struct {
	BookingID    string       `json:"booking_id"`
	BookingRef   string       `json:"booking_ref"`
	Status       string       `json:"status"`
	RefundReason RefundReason `json:"refund_reason"`
	RefundRate   float64      `json:"refund_rate"`
	RefundPoints int64        `json:"refund_points"`
	CancelledAt  time.Time    `json:"cancelled_at"`
}

type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

func toVenueBookingResponse(b *VenueBooking) *VenueBookingResponse {
	return &VenueBookingResponse{
		BookingID:           b.ID.String(),
		BookingRef:          b.BookingRef,
		VenueID:             b.VenueID.String(),
		Status:              b.Status.String(),
		BookingDate:         b.BookingDate,
		CheckIn:             b.CheckIn,
		CheckOut:            b.CheckOut,
		DurationHours:       b.DurationHours,
		TotalPrice:          b.TotalPrice,
		TotalPoints:         b.TotalPoints,
		PointsUsed:          b.PointsUsed,
		PlatformFeePoints:   b.PlatformFeePoints,
		PaypalTransactionID: b.PaypalTransactionID,
		CreatedAt:           b.CreatedAt,
	}
}

func toBookingResponse(b *Booking) *BookingResponse {
	resp := &BookingResponse{
		BookingID:           b.ID.String(),
		BookingRef:          b.BookingRef,
		EventID:             b.EventID.String(),
		BookingType:         b.BookingType,
		Status:              b.Status.String(),
		Quantity:            b.Quantity,
		TotalPrice:          b.TotalPrice,
		TotalPoints:         b.TotalPoints,
		PointsUsed:          b.PointsUsed,
		PlatformFeePoints:   b.PlatformFeePoints,
		PaypalTransactionID: b.PaypalTransactionID,
		CreatedAt:           b.CreatedAt,
	}
	for _, seat := range b.BookedSeats {
		resp.Seats = append(resp.Seats, BookedSeatInfo{
			SeatID:       seat.SeatID,
			CategoryName: seat.CategoryName,
			Price:        seat.Price,
		})
	}
	return resp
}
