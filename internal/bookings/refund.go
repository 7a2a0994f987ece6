package bookings

import (
	"math"
	"time"

	"eventvenue/internal/shared/config"
)

// RefundReason names the policy branch a refund was computed under.
type RefundReason string

const (
	RefundVendorCancelled RefundReason = "VENDOR_CANCELLED"
	RefundAfterReschedule RefundReason = "VENDOR_RESCHEDULED"
	RefundFull            RefundReason = "FULL"
	RefundPartial         RefundReason = "PARTIAL"
)

type RefundQuote struct {
	Reason RefundReason `json:"reason"`
	Rate   float64      `json:"rate"`
	Points int64        `json:"points"`
}

// ComputeRefund applies the cancellation policy to a booking:
//   - vendor cancelled the event: 100%
//   - vendor rescheduled and the user bails: 95%
//   - user cancels with at least the full-refund window left: 100%
//   - user cancels inside the window: 75%
//
// Refunds are always paid in points on the booking's point value.
func ComputeRefund(booking *Booking, eventStart time.Time, wasRescheduled, vendorCancelled bool, now time.Time, cfg config.BookingConfig) RefundQuote {
	return refundQuote(booking.TotalPoints, eventStart, wasRescheduled, vendorCancelled, now, cfg)
}

// ComputeVenueRefund applies the same windowed policy to a venue booking,
// measured against check-in. Venues have no reschedule or vendor-cancel
// branch.
func ComputeVenueRefund(booking *VenueBooking, now time.Time, cfg config.BookingConfig) RefundQuote {
	return refundQuote(booking.TotalPoints, booking.CheckIn, false, false, now, cfg)
}

func refundQuote(totalPoints int64, start time.Time, wasRescheduled, vendorCancelled bool, now time.Time, cfg config.BookingConfig) RefundQuote {
	quote := RefundQuote{}

	switch {
	case vendorCancelled:
		quote.Reason = RefundVendorCancelled
		quote.Rate = 1.0
	case wasRescheduled:
		quote.Reason = RefundAfterReschedule
		quote.Rate = cfg.RescheduleRefundPct
	case start.Sub(now) >= time.Duration(cfg.FullRefundDays)*24*time.Hour:
		quote.Reason = RefundFull
		quote.Rate = 1.0
	default:
		quote.Reason = RefundPartial
		quote.Rate = cfg.PartialRefundRate
	}

	quote.Points = int64(math.Round(quote.Rate * float64(totalPoints)))
	return quote
}
