package database

import (
	"eventvenue/internal/bookings"
	"eventvenue/internal/events"
	"eventvenue/internal/layout"
	"eventvenue/internal/reviews"
	"eventvenue/internal/users"
	"eventvenue/internal/venues"
	"eventvenue/internal/wallet"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&venues.Venue{},
		&events.Event{},
		&layout.SeatCategory{},
		&layout.SeatRecord{},
		&bookings.Booking{},
		&bookings.BookedSeat{},
		&bookings.VenueBooking{},
		&wallet.PointTransaction{},
		&reviews.Review{},
	)
}
