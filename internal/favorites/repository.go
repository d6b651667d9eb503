package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hawabodol/internal/packages"
)

type Repository interface {
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, touristID, packageID uuid.UUID) (bool, error)
	GetPackages(ctx context.Context, touristID uuid.UUID) ([]packages.TourPackage, error)
	Exists(ctx context.Context, touristID, packageID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Add is idempotent: the unique (tourist, package) index plus DoNothing
// makes a repeated favorite a no-op.
func (r *repository) Add(ctx context.Context, favorite *Favorite) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tourist_id"}, {Name: "package_id"}},
			DoNothing: true,
		}).
		Create(favorite).Error
}

func (r *repository) Remove(ctx context.Context, touristID, packageID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("tourist_id = ? AND package_id = ?", touristID, packageID).
		Delete(&Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) GetPackages(ctx context.Context, touristID uuid.UUID) ([]packages.TourPackage, error) {
	var pkgs []packages.TourPackage
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.package_id = tour_packages.id").
		Where("favorites.tourist_id = ?", touristID).
		Order("favorites.created_at DESC").
		Preload("Categories").
		Find(&pkgs).Error
	return pkgs, err
}

func (r *repository) Exists(ctx context.Context, touristID, packageID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("tourist_id = ? AND package_id = ?", touristID, packageID).
		Count(&count).Error
	return count > 0, err
}
