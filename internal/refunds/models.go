package refunds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RefundStatus string

const (
	StatusPending  RefundStatus = "pending"
	StatusApproved RefundStatus = "approved"
	StatusRejected RefundStatus = "rejected"
)

func (s RefundStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// RefundRequest is a tourist's request to get a booking refunded. Admins
// decide; approval marks the booking refunded without releasing seats.
type RefundRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	TouristID uuid.UUID `gorm:"type:uuid;not null;index" json:"tourist_id"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason string          `gorm:"type:text;not null" json:"reason"`
	Status RefundStatus    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	DecidedBy    *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecisionNote string     `gorm:"type:text" json:"decision_note,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RefundRequest) TableName() string {
	return "refund_requests"
}

func (r *RefundRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CreateRefundRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Reason    string `json:"reason" binding:"required,min=5,max=2000"`
}

type DecideRefundRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

type RefundListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

type RefundResponse struct {
	ID           string          `json:"id"`
	BookingID    string          `json:"booking_id"`
	TouristID    string          `json:"tourist_id"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	Status       RefundStatus    `json:"status"`
	DecidedBy    string          `json:"decided_by,omitempty"`
	DecisionNote string          `json:"decision_note,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type PaginatedRefunds struct {
	Refunds    []RefundResponse `json:"refunds"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

func (r *RefundRequest) ToResponse() RefundResponse {
	resp := RefundResponse{
		ID:           r.ID.String(),
		BookingID:    r.BookingID.String(),
		TouristID:    r.TouristID.String(),
		Amount:       r.Amount,
		Reason:       r.Reason,
		Status:       r.Status,
		DecisionNote: r.DecisionNote,
		DecidedAt:    r.DecidedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.DecidedBy != nil {
		resp.DecidedBy = r.DecidedBy.String()
	}
	return resp
}
