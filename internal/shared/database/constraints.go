package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// One seat position per show
	err := db.Exec(`
		CREATE UNIQUE INDEX CONCURRENTLY IF NOT EXISTS idx_show_seats_position
		ON show_seats (show_id, seat_row, seat_number);
	`).Error
	if err != nil {
		return err
	}

	// A seat can appear in at most one live (HOLD/CONFIRMED) booking
	err = db.Exec(`
		CREATE UNIQUE INDEX CONCURRENTLY IF NOT EXISTS idx_booking_seats_active_seat
		ON booking_seats (show_seat_id)
		WHERE active;
	`).Error
	if err != nil {
		return err
	}

	// Sweep queries scan by status + expiry
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_bookings_status_hold_expires
		ON bookings (status, hold_expires_at);
	`).Error
	if err != nil {
		return err
	}

	// Booking lookups by show
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_bookings_show_id
		ON bookings (show_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
