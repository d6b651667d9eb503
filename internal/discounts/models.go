package discounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountType string

const (
	TypePercentage DiscountType = "percentage"
	TypeFixed      DiscountType = "fixed"
)

// DiscountCode is a promotional code tourists can validate against a cart
// amount before paying through an external channel. Codes are not applied
// automatically at booking time.
type DiscountCode struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string          `gorm:"unique;not null;size:50" json:"code"`
	Description string          `gorm:"type:text" json:"description"`
	Type        DiscountType    `gorm:"type:varchar(20);not null" json:"type"`
	Value       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	MinAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"min_amount"`
	MaxUses     int             `gorm:"not null;default:0" json:"max_uses"`
	UsedCount   int             `gorm:"not null;default:0" json:"used_count"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  time.Time       `json:"valid_until"`
	Active      bool            `gorm:"default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}

func (d *DiscountCode) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsUsable reports whether the code can be applied right now.
func (d *DiscountCode) IsUsable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if now.Before(d.ValidFrom) || now.After(d.ValidUntil) {
		return false
	}
	if d.MaxUses > 0 && d.UsedCount >= d.MaxUses {
		return false
	}
	return true
}

type CreateDiscountRequest struct {
	Code        string          `json:"code" binding:"required,min=3,max=50"`
	Description string          `json:"description" binding:"max=2000"`
	Type        string          `json:"type" binding:"required,oneof=percentage fixed"`
	Value       decimal.Decimal `json:"value" binding:"required"`
	MinAmount   decimal.Decimal `json:"min_amount"`
	MaxUses     int             `json:"max_uses" binding:"omitempty,min=0"`
	ValidFrom   time.Time       `json:"valid_from" binding:"required"`
	ValidUntil  time.Time       `json:"valid_until" binding:"required"`
}

type UpdateDiscountRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Value       *decimal.Decimal `json:"value"`
	MinAmount   *decimal.Decimal `json:"min_amount"`
	MaxUses     *int             `json:"max_uses" binding:"omitempty,min=0"`
	ValidFrom   *time.Time       `json:"valid_from"`
	ValidUntil  *time.Time       `json:"valid_until"`
	Active      *bool            `json:"active"`
}

type ValidateDiscountRequest struct {
	Code   string          `json:"code" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type ValidateDiscountResponse struct {
	Code           string          `json:"code"`
	Valid          bool            `json:"valid"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}
