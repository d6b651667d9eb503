package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints the seat accounting relies on.
// AutoMigrate covers columns and indexes; the check constraints below are the
// backstop that keeps availableSeats inside [0, totalSeats] even if a code
// path bypasses the conditional update.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		ALTER TABLE tour_packages
		ADD CONSTRAINT IF NOT EXISTS chk_available_seats_range
		CHECK (available_seats >= 0 AND available_seats <= total_seats);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		ALTER TABLE bookings
		ADD CONSTRAINT IF NOT EXISTS chk_booking_quantity_positive
		CHECK (quantity >= 1);
	`).Error
	if err != nil {
		return err
	}

	// One favorite per tourist per package.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_tourist_package
		ON favorites (tourist_id, package_id);
	`).Error
	if err != nil {
		return err
	}

	// Booking lookups by package drive the operator dashboard and the
	// seat-accounting invariant query.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_package_status
		ON bookings (package_id, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
