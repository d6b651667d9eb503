package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hawabodol/internal/packages"
)

type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetByPackage(ctx context.Context, packageID uuid.UUID, query ReviewListQuery) ([]Review, int64, error)
	Exists(ctx context.Context, touristID, packageID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasCompletedBooking(ctx context.Context, touristID, packageID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the review and refreshes the package's rating aggregate in
// the same transaction, so a concurrent reader never sees a review counted
// without its rating contribution.
func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return refreshAggregate(tx, review.PackageID)
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *repository) GetByPackage(ctx context.Context, packageID uuid.UUID, query ReviewListQuery) ([]Review, int64, error) {
	var reviews []Review
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Review{}).Where("package_id = ?", packageID)

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

	err := db.Order("created_at DESC").Offset(offset).Limit(query.Limit).Find(&reviews).Error
	return reviews, totalCount, err
}

func (r *repository) Exists(ctx context.Context, touristID, packageID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Review{}).
		Where("tourist_id = ? AND package_id = ?", touristID, packageID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review Review
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return refreshAggregate(tx, review.PackageID)
	})
}

// HasCompletedBooking reports whether the tourist finished a trip on the
// package. Only completed bookings qualify; a pending or cancelled booking
// does not earn a review.
func (r *repository) HasCompletedBooking(ctx context.Context, touristID, packageID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("bookings").
		Where("tourist_id = ? AND package_id = ? AND status = ?", touristID, packageID, "completed").
		Count(&count).Error
	return count > 0, err
}

func refreshAggregate(tx *gorm.DB, packageID uuid.UUID) error {
	var agg struct {
		Count  int64
		Rating float64
	}
	err := tx.Model(&Review{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as rating").
		Where("package_id = ?", packageID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&packages.TourPackage{}).
		Where("id = ?", packageID).
		Updates(map[string]interface{}{
			"rating":       agg.Rating,
			"review_count": agg.Count,
		}).Error
}
