package packages

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, pkg *TourPackage) error
	GetByID(ctx context.Context, id uuid.UUID) (*TourPackage, error)
	GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*PackageCategory, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*TourPackage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, query PackageListQuery) ([]TourPackage, int64, error)
	GetByOperator(ctx context.Context, operatorID uuid.UUID) ([]TourPackage, error)
	GetFeatured(ctx context.Context, limit int) ([]TourPackage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to PackageStatus, timestamps map[string]interface{}) (bool, error)
	AddCategory(ctx context.Context, category *PackageCategory) error
	DeleteCategory(ctx context.Context, packageID, categoryID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, pkg *TourPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TourPackage, error) {
	var pkg TourPackage
	err := r.db.WithContext(ctx).Preload("Categories").Where("id = ?", id).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*PackageCategory, error) {
	var category PackageCategory
	err := r.db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*TourPackage, error) {
	if err := r.db.WithContext(ctx).Model(&TourPackage{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&PackageCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&TourPackage{}).Error
	})
}

func (r *repository) GetAll(ctx context.Context, query PackageListQuery) ([]TourPackage, int64, error) {
	var pkgs []TourPackage
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&TourPackage{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Location != "" {
		db = db.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(query.Location)+"%")
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("start_date >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			dateTo = dateTo.Add(24 * time.Hour)
			db = db.Where("start_date < ?", dateTo)
		}
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

	err := db.Preload("Categories").
		Order("start_date ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&pkgs).Error

	return pkgs, totalCount, err
}

func (r *repository) GetByOperator(ctx context.Context, operatorID uuid.UUID) ([]TourPackage, error) {
	var pkgs []TourPackage
	err := r.db.WithContext(ctx).Preload("Categories").
		Where("operator_id = ?", operatorID).
		Order("created_at DESC").
		Find(&pkgs).Error
	return pkgs, err
}

func (r *repository) GetFeatured(ctx context.Context, limit int) ([]TourPackage, error) {
	var pkgs []TourPackage
	err := r.db.WithContext(ctx).Preload("Categories").
		Where("featured = ? AND status = ?", true, StatusPublished).
		Order("rating DESC").
		Limit(limit).
		Find(&pkgs).Error
	return pkgs, err
}

// UpdateStatus flips the package status only if it is still in the expected
// state, so two concurrent transitions cannot both win. Returns false when
// the row was not in the expected state.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to PackageStatus, timestamps map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range timestamps {
		updates[k] = v
	}

	result := r.db.WithContext(ctx).Model(&TourPackage{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) AddCategory(ctx context.Context, category *PackageCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) DeleteCategory(ctx context.Context, packageID, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ? AND package_id = ?", categoryID, packageID).Delete(&PackageCategory{}).Error
}
