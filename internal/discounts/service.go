package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDiscountNotFound = errors.New("discount code not found")
	ErrCodeExists       = errors.New("discount code already exists")
	ErrInvalidPeriod    = errors.New("valid_until must be after valid_from")
)

type Service interface {
	CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*DiscountCode, error)
	UpdateDiscount(ctx context.Context, id uuid.UUID, req UpdateDiscountRequest) (*DiscountCode, error)
	DeleteDiscount(ctx context.Context, id uuid.UUID) error
	GetAllDiscounts(ctx context.Context) ([]DiscountCode, error)
	ValidateCode(ctx context.Context, req ValidateDiscountRequest) (*ValidateDiscountResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*DiscountCode, error) {
	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, ErrInvalidPeriod
	}

	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrCodeExists
	} else if !errors.Is(err, ErrDiscountNotFound) {
		return nil, err
	}

	code := &DiscountCode{
		Code:        strings.ToUpper(req.Code),
		Description: req.Description,
		Type:        DiscountType(req.Type),
		Value:       req.Value,
		MinAmount:   req.MinAmount,
		MaxUses:     req.MaxUses,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		Active:      true,
	}

	if err := s.repo.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to create discount code: %w", err)
	}
	return code, nil
}

func (s *service) UpdateDiscount(ctx context.Context, id uuid.UUID, req UpdateDiscountRequest) (*DiscountCode, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.MinAmount != nil {
		updates["min_amount"] = *req.MinAmount
	}
	if req.MaxUses != nil {
		updates["max_uses"] = *req.MaxUses
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update discount code: %w", err)
		}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete discount code: %w", err)
	}
	if !deleted {
		return ErrDiscountNotFound
	}
	return nil
}

func (s *service) GetAllDiscounts(ctx context.Context) ([]DiscountCode, error) {
	return s.repo.GetAll(ctx)
}

// ValidateCode previews what a code would take off a given amount. An
// unusable or inapplicable code returns valid=false with the amount
// unchanged rather than an error.
func (s *service) ValidateCode(ctx context.Context, req ValidateDiscountRequest) (*ValidateDiscountResponse, error) {
	resp := &ValidateDiscountResponse{
		Code:           strings.ToUpper(req.Code),
		Valid:          false,
		DiscountAmount: decimal.Zero,
		FinalAmount:    req.Amount,
	}

	code, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			return resp, nil
		}
		return nil, err
	}

	if !code.IsUsable(time.Now()) || req.Amount.LessThan(code.MinAmount) {
		return resp, nil
	}

	discountAmount := Apply(code, req.Amount)
	resp.Valid = true
	resp.DiscountAmount = discountAmount
	resp.FinalAmount = req.Amount.Sub(discountAmount)
	return resp, nil
}

// Apply computes the discount a code takes off an amount, clamped so the
// result never goes negative.
func Apply(code *DiscountCode, amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch code.Type {
	case TypePercentage:
		discount = amount.Mul(code.Value).Div(decimal.NewFromInt(100)).Round(2)
	case TypeFixed:
		discount = code.Value
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(amount) {
		return amount
	}
	return discount
}
