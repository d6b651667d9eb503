package discounts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestApplyPercentage(t *testing.T) {
	code := &DiscountCode{
		Type:  TypePercentage,
		Value: decimal.NewFromInt(10),
	}

	got := Apply(code, decimal.NewFromInt(5000))
	if !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("10%% of 5000 = %s, want 500", got)
	}

	got = Apply(code, decimal.NewFromFloat(999.99))
	if !got.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("10%% of 999.99 = %s, want 100.00", got)
	}
}

func TestApplyFixed(t *testing.T) {
	code := &DiscountCode{
		Type:  TypeFixed,
		Value: decimal.NewFromInt(300),
	}

	got := Apply(code, decimal.NewFromInt(1000))
	if !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("fixed 300 off 1000 = %s, want 300", got)
	}

	// Discount never exceeds the amount.
	got = Apply(code, decimal.NewFromInt(200))
	if !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("fixed 300 off 200 = %s, want 200", got)
	}
}

func TestIsUsable(t *testing.T) {
	now := time.Now()
	base := DiscountCode{
		Active:     true,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		MaxUses:    10,
		UsedCount:  5,
	}

	if !base.IsUsable(now) {
		t.Error("active code within window should be usable")
	}

	inactive := base
	inactive.Active = false
	if inactive.IsUsable(now) {
		t.Error("inactive code should not be usable")
	}

	expired := base
	expired.ValidUntil = now.Add(-time.Minute)
	if expired.IsUsable(now) {
		t.Error("expired code should not be usable")
	}

	notYet := base
	notYet.ValidFrom = now.Add(time.Minute)
	if notYet.IsUsable(now) {
		t.Error("future code should not be usable")
	}

	exhausted := base
	exhausted.UsedCount = 10
	if exhausted.IsUsable(now) {
		t.Error("exhausted code should not be usable")
	}

	unlimited := base
	unlimited.MaxUses = 0
	unlimited.UsedCount = 1000
	if !unlimited.IsUsable(now) {
		t.Error("zero max_uses means unlimited")
	}
}
