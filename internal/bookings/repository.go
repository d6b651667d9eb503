package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hawabodol/internal/packages"
)

type Repository interface {
	CreateBookingWithSeatCheck(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByRef(ctx context.Context, ref string) (*Booking, error)
	GetTouristBookings(ctx context.Context, touristID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetPackageBookings(ctx context.Context, packageID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)
	GetPackage(ctx context.Context, packageID uuid.UUID) (*packages.TourPackage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBookingWithSeatCheck reserves seats and creates the booking in one
// transaction. The seat decrement is a single conditional UPDATE guarded by
// the remaining count and the package status, so two concurrent requests for
// the last seats cannot both succeed: the database serializes the updates
// and the loser's guard fails with zero rows affected.
func (r *repository) CreateBookingWithSeatCheck(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg packages.TourPackage
		if err := tx.Where("id = ?", booking.PackageID).First(&pkg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return err
		}

		if !pkg.Status.CanBeBooked() {
			return ErrPackageNotOpen
		}

		if booking.CategoryID != nil {
			var category packages.PackageCategory
			err := tx.Where("id = ? AND package_id = ?", *booking.CategoryID, booking.PackageID).
				First(&category).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
		}

		result := tx.Model(&packages.TourPackage{}).
			Where("id = ? AND status = ? AND available_seats >= ?",
				booking.PackageID, packages.StatusPublished, booking.Quantity).
			UpdateColumn("available_seats", gorm.Expr("available_seats - ?", booking.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientSeats
		}

		return tx.Create(booking).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("booking_ref = ?", ref).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetTouristBookings(ctx context.Context, touristID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return r.listBookings(ctx, "tourist_id = ?", touristID, query)
}

func (r *repository) GetPackageBookings(ctx context.Context, packageID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return r.listBookings(ctx, "package_id = ?", packageID, query)
}

func (r *repository) listBookings(ctx context.Context, cond string, id uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Booking{}).Where(cond, id)
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("created_at DESC").Offset(offset).Limit(query.Limit).Find(&bookings).Error
	return bookings, totalCount, err
}

// TransitionStatus moves a booking between statuses with the same
// conditional-update discipline as seat reservation: the status change only
// lands if the row is still in the expected state, so concurrent transitions
// resolve to exactly one winner. When a seat-holding booking is cancelled,
// the seats go back to the package inside the same transaction.
func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	applied := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		updates := map[string]interface{}{"status": to}
		now := time.Now()
		switch to {
		case StatusConfirmed:
			updates["confirmed_at"] = now
			// Payment is settled off-platform; confirmation records it.
			updates["payment_status"] = true
		case StatusCancelled:
			updates["cancelled_at"] = now
		case StatusCompleted:
			updates["completed_at"] = now
		case StatusRefunded:
			updates["refunded_at"] = now
		}

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if to == StatusCancelled && from.HoldsSeats() {
			restore := tx.Model(&packages.TourPackage{}).
				Where("id = ? AND available_seats + ? <= total_seats", booking.PackageID, booking.Quantity).
				UpdateColumn("available_seats", gorm.Expr("available_seats + ?", booking.Quantity))
			if restore.Error != nil {
				return restore.Error
			}
			if restore.RowsAffected == 0 {
				return ErrSeatRestoreFailed
			}
		}

		applied = true
		return nil
	})

	return applied, err
}

func (r *repository) GetPackage(ctx context.Context, packageID uuid.UUID) (*packages.TourPackage, error) {
	var pkg packages.TourPackage
	err := r.db.WithContext(ctx).Preload("Categories").Where("id = ?", packageID).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}
