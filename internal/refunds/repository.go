package refunds

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, request *RefundRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*RefundRequest, error)
	HasOpenRequest(ctx context.Context, bookingID uuid.UUID) (bool, error)
	GetByTourist(ctx context.Context, touristID uuid.UUID, query RefundListQuery) ([]RefundRequest, int64, error)
	GetAll(ctx context.Context, query RefundListQuery) ([]RefundRequest, int64, error)
	Decide(ctx context.Context, id uuid.UUID, status RefundStatus, adminID uuid.UUID, note string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, request *RefundRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*RefundRequest, error) {
	var request RefundRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefundNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) HasOpenRequest(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RefundRequest{}).
		Where("booking_id = ? AND status = ?", bookingID, StatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) GetByTourist(ctx context.Context, touristID uuid.UUID, query RefundListQuery) ([]RefundRequest, int64, error) {
	db := r.db.WithContext(ctx).Model(&RefundRequest{}).Where("tourist_id = ?", touristID)
	return r.list(db, query)
}

func (r *repository) GetAll(ctx context.Context, query RefundListQuery) ([]RefundRequest, int64, error) {
	db := r.db.WithContext(ctx).Model(&RefundRequest{})
	return r.list(db, query)
}

func (r *repository) list(db *gorm.DB, query RefundListQuery) ([]RefundRequest, int64, error) {
	var requests []RefundRequest
	var totalCount int64

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

	err := db.Order("created_at DESC").Offset(offset).Limit(query.Limit).Find(&requests).Error
	return requests, totalCount, err
}

// Decide flips a pending request to its final status. The status guard in
// the WHERE clause makes concurrent decisions on the same request resolve
// to a single winner.
func (r *repository) Decide(ctx context.Context, id uuid.UUID, status RefundStatus, adminID uuid.UUID, note string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&RefundRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"decided_by":    adminID,
			"decision_note": note,
			"decided_at":    time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
