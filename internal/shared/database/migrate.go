package database

import (
	"hawabodol/internal/bookings"
	"hawabodol/internal/discounts"
	"hawabodol/internal/favorites"
	"hawabodol/internal/notifications"
	"hawabodol/internal/packages"
	"hawabodol/internal/refunds"
	"hawabodol/internal/reports"
	"hawabodol/internal/reviews"
	"hawabodol/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&packages.TourPackage{},
		&packages.PackageCategory{},
		&bookings.Booking{},
		&refunds.RefundRequest{},
		&favorites.Favorite{},
		&discounts.DiscountCode{},
		&reports.Report{},
		&reviews.Review{},
		&notifications.Notification{},
	)
}
