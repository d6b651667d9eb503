package discounts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, code *DiscountCode) error
	GetByID(ctx context.Context, id uuid.UUID) (*DiscountCode, error)
	GetByCode(ctx context.Context, code string) (*DiscountCode, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetAll(ctx context.Context) ([]DiscountCode, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, code *DiscountCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*DiscountCode, error) {
	var code DiscountCode
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*DiscountCode, error) {
	var discount DiscountCode
	err := r.db.WithContext(ctx).Where("UPPER(code) = ?", strings.ToUpper(code)).First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &discount, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&DiscountCode{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DiscountCode{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) GetAll(ctx context.Context) ([]DiscountCode, error) {
	var codes []DiscountCode
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error
	return codes, err
}
