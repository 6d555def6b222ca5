package database

import (
	"cinetix/internal/catalog"
	"cinetix/internal/inventory"
	"cinetix/internal/payments"
	"cinetix/internal/reservation"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Movie{},
		&catalog.Theater{},
		&catalog.Show{},
		&inventory.ShowSeat{},
		&reservation.Booking{},
		&reservation.BookingSeat{},
		&payments.Payment{},
	)
}
