package bookings

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking defines the main booking structure
type Booking struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingRef string     `gorm:"unique;not null;size:20" json:"booking_ref"`
	TouristID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"tourist_id"`
	PackageID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"package_id"`
	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id,omitempty"`

	Quantity       int             `gorm:"not null;check:quantity >= 1" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"final_amount"`

	Status          Status `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus   bool   `gorm:"not null;default:false" json:"payment_status"`
	SpecialRequests string `gorm:"type:text" json:"special_requests,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.BookingRef == "" {
		b.BookingRef = NewBookingRef()
	}
	return nil
}

// NewBookingRef generates a short human-readable booking reference.
func NewBookingRef() string {
	return "HWB-" + strings.ToUpper(uuid.New().String()[:8])
}

// CreateBookingRequest represents a seat reservation request
type CreateBookingRequest struct {
	PackageID       string `json:"package_id" binding:"required,uuid"`
	CategoryID      string `json:"category_id" binding:"omitempty,uuid"`
	Quantity        int    `json:"quantity" binding:"required,min=1,max=50"`
	SpecialRequests string `json:"special_requests" binding:"max=2000"`
}

// UpdateStatusRequest represents a booking status change request
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed refunded"`
}

// BookingResponse represents booking data in responses
type BookingResponse struct {
	ID              string          `json:"id"`
	BookingRef      string          `json:"booking_ref"`
	TouristID       string          `json:"tourist_id"`
	PackageID       string          `json:"package_id"`
	CategoryID      string          `json:"category_id,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	FinalAmount     decimal.Decimal `json:"final_amount"`
	Status          Status          `json:"status"`
	PaymentStatus   bool            `json:"payment_status"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	RefundedAt      *time.Time      `json:"refunded_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed refunded"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:              b.ID.String(),
		BookingRef:      b.BookingRef,
		TouristID:       b.TouristID.String(),
		PackageID:       b.PackageID.String(),
		Quantity:        b.Quantity,
		UnitPrice:       b.UnitPrice,
		TotalAmount:     b.TotalAmount,
		DiscountAmount:  b.DiscountAmount,
		FinalAmount:     b.FinalAmount,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		SpecialRequests: b.SpecialRequests,
		ConfirmedAt:     b.ConfirmedAt,
		CancelledAt:     b.CancelledAt,
		CompletedAt:     b.CompletedAt,
		RefundedAt:      b.RefundedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.CategoryID != nil {
		resp.CategoryID = b.CategoryID.String()
	}
	return resp
}
