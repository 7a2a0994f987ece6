package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes AutoMigrate does not cover. The booking
// and analytics queries filter on event + status and walk transaction
// history per user, so both get composite indexes.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_event_status
		ON bookings (event_id, status);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booked_seats_booking_id
		ON booked_seats (booking_id);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_point_transactions_user_created
		ON point_transactions (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	// The venue overlap check scans confirmed bookings per venue ordered by
	// slot, so the index covers venue + status + check_in.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_venue_bookings_venue_status_checkin
		ON venue_bookings (venue_id, status, check_in);
	`).Error
	if err != nil {
		return err
	}

	// Seat uniqueness under concurrency is enforced by the Redis claim set;
	// this index only speeds up the booked-seat reconciliation scan.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_compiled_seats_event_id
		ON compiled_seats (event_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
