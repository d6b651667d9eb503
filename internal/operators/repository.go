package operators

import (
	"context"
	"errors"
	"fmt"

	"hawabodol/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetOperators(ctx context.Context, query OperatorListQuery) ([]users.User, int64, error)
	GetOperatorByID(ctx context.Context, id uuid.UUID) (*users.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to users.Status, updates map[string]interface{}) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOperators(ctx context.Context, query OperatorListQuery) ([]users.User, int64, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := r.db.WithContext(ctx).Model(&users.User{}).Where("role = ?", users.RoleOperator)
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		db = db.Where("name LIKE ? OR company_name LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count operators: %w", err)
	}

	var operators []users.User
	err := db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&operators).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list operators: %w", err)
	}

	return operators, total, nil
}

func (r *repository) GetOperatorByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, users.RoleOperator).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	return &user, nil
}

// UpdateStatus applies the change only when the operator is still in the
// expected status, so concurrent admin decisions cannot overwrite each
// other.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to users.Status, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = make(map[string]interface{})
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ? AND role = ? AND status = ?", id, users.RoleOperator, from).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update operator status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
