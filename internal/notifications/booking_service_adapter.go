package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"eventvenue/internal/bookings"
)

// UserService is the slice of the auth module the adapter needs to resolve
// a booking's recipient. Implemented by auth.UserServiceAdapter.
type UserService interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error)
}

// BookingServiceAdapter implements the bookings notification interface and
// adapts calls onto the Kafka-backed notification pipeline. Delivery is
// fire-and-forget: a lookup or publish failure is logged and swallowed so
// the booking path never fails on a notification.
type BookingServiceAdapter struct {
	notifications NotificationService
	users         UserService
}

// NewBookingServiceAdapter creates a new adapter for booking notifications
func NewBookingServiceAdapter(notifications NotificationService, users UserService) *BookingServiceAdapter {
	return &BookingServiceAdapter{
		notifications: notifications,
		users:         users,
	}
}

func (a *BookingServiceAdapter) BookingConfirmed(ctx context.Context, booking *bookings.Booking, eventName string) {
	data := map[string]interface{}{
		"event_title":       eventName,
		"booking_reference": booking.BookingRef,
		"quantity":          fmt.Sprintf("%d tickets", booking.Quantity),
		"total_points":      booking.TotalPoints,
	}
	a.publishBooking(ctx, booking, NotificationTypeBookingConfirmed, data)
}

func (a *BookingServiceAdapter) BookingCancelled(ctx context.Context, booking *bookings.Booking, eventName string, refundPoints int64) {
	data := map[string]interface{}{
		"event_title":       eventName,
		"booking_reference": booking.BookingRef,
		"refund_points":     refundPoints,
	}
	a.publishBooking(ctx, booking, NotificationTypeBookingCancelled, data)
}

func (a *BookingServiceAdapter) EventRescheduled(ctx context.Context, booking *bookings.Booking, eventName string, newStart time.Time) {
	data := map[string]interface{}{
		"event_title":       eventName,
		"booking_reference": booking.BookingRef,
		"new_start_time":    newStart.Format(time.RFC1123),
	}
	a.publishBooking(ctx, booking, NotificationTypeEventRescheduled, data)
}

func (a *BookingServiceAdapter) EventCancelled(ctx context.Context, booking *bookings.Booking, eventName string, refundPoints int64) {
	data := map[string]interface{}{
		"event_title":       eventName,
		"booking_reference": booking.BookingRef,
		"refund_points":     refundPoints,
	}
	a.publishBooking(ctx, booking, NotificationTypeEventCancelled, data)
}

// Venue rentals reuse the booking templates; the rented venue takes the
// title slot and hours take the quantity slot.
func (a *BookingServiceAdapter) VenueBookingConfirmed(ctx context.Context, booking *bookings.VenueBooking, venueName string) {
	data := map[string]interface{}{
		"event_title":       venueName,
		"booking_reference": booking.BookingRef,
		"quantity":          fmt.Sprintf("%d hours", booking.DurationHours),
		"total_points":      booking.TotalPoints,
	}
	a.publishVenueBooking(ctx, booking, NotificationTypeBookingConfirmed, data)
}

func (a *BookingServiceAdapter) VenueBookingCancelled(ctx context.Context, booking *bookings.VenueBooking, venueName string, refundPoints int64) {
	data := map[string]interface{}{
		"event_title":       venueName,
		"booking_reference": booking.BookingRef,
		"refund_points":     refundPoints,
	}
	a.publishVenueBooking(ctx, booking, NotificationTypeBookingCancelled, data)
}

func (a *BookingServiceAdapter) publishVenueBooking(ctx context.Context, booking *bookings.VenueBooking,
	notificationType NotificationType, data map[string]interface{}) {

	email, firstName, lastName, err := a.users.GetUserByID(ctx, booking.UserID)
	if err != nil {
		log.Printf("📧 Skipping %s notification for venue booking %s: %v", notificationType, booking.BookingRef, err)
		return
	}

	name := firstName + " " + lastName

	err = a.notifications.SendBookingNotification(ctx, booking.UserID, email, name,
		booking.ID, booking.VenueID, notificationType, data)
	if err != nil {
		log.Printf("📧 Failed to publish %s notification for venue booking %s: %v", notificationType, booking.BookingRef, err)
	}
}

func (a *BookingServiceAdapter) publishBooking(ctx context.Context, booking *bookings.Booking,
	notificationType NotificationType, data map[string]interface{}) {

	email, firstName, lastName, err := a.users.GetUserByID(ctx, booking.UserID)
	if err != nil {
		log.Printf("📧 Skipping %s notification for booking %s: %v", notificationType, booking.BookingRef, err)
		return
	}

	name := firstName + " " + lastName

	err = a.notifications.SendBookingNotification(ctx, booking.UserID, email, name,
		booking.ID, booking.EventID, notificationType, data)
	if err != nil {
		log.Printf("📧 Failed to publish %s notification for booking %s: %v", notificationType, booking.BookingRef, err)
	}
}
