package utils

import (
	"testing"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/stretchr/testify/assert"
)

func activeDiscount(pct float64, start, end time.Time) *models.ProductDiscount {
	return &models.ProductDiscount{
		ProductID:  1,
		Percentage: pct,
		StartDate:  start,
		EndDate:    end,
		Active:     true,
	}
}

func TestIsDiscountApplicable(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("active discount inside window applies", func(t *testing.T) {
		d := activeDiscount(20, now.Add(-time.Hour), now.Add(time.Hour))
		assert.True(t, IsDiscountApplicable(d, now))
	})

	t.Run("nil discount never applies", func(t *testing.T) {
		assert.False(t, IsDiscountApplicable(nil, now))
	})

	t.Run("inactive discount never applies", func(t *testing.T) {
		d := activeDiscount(20, now.Add(-time.Hour), now.Add(time.Hour))
		d.Active = false
		assert.False(t, IsDiscountApplicable(d, now))
	})

	t.Run("zero percentage never applies", func(t *testing.T) {
		d := activeDiscount(0, now.Add(-time.Hour), now.Add(time.Hour))
		assert.False(t, IsDiscountApplicable(d, now))
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		d := activeDiscount(20, now, now.Add(time.Hour))
		assert.True(t, IsDiscountApplicable(d, now), "start boundary")

		d = activeDiscount(20, now.Add(-time.Hour), now)
		assert.True(t, IsDiscountApplicable(d, now), "end boundary")
	})

	t.Run("outside the window does not apply", func(t *testing.T) {
		d := activeDiscount(20, now.Add(time.Minute), now.Add(time.Hour))
		assert.False(t, IsDiscountApplicable(d, now), "not started")

		d = activeDiscount(20, now.Add(-time.Hour), now.Add(-time.Minute))
		assert.False(t, IsDiscountApplicable(d, now), "already ended")
	})

	t.Run("missing boundaries fail closed", func(t *testing.T) {
		d := activeDiscount(20, time.Time{}, now.Add(time.Hour))
		assert.False(t, IsDiscountApplicable(d, now))

		d = activeDiscount(20, now.Add(-time.Hour), time.Time{})
		assert.False(t, IsDiscountApplicable(d, now))
	})
}

func TestNormalizeDiscountWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("already started window is unchanged", func(t *testing.T) {
		start := now.Add(-time.Hour)
		end := now.Add(24 * time.Hour)
		gotStart, gotEnd := NormalizeDiscountWindow(start, end, now)
		assert.Equal(t, start, gotStart)
		assert.Equal(t, end, gotEnd)
	})

	t.Run("start equal to now is unchanged", func(t *testing.T) {
		end := now.Add(24 * time.Hour)
		gotStart, gotEnd := NormalizeDiscountWindow(now, end, now)
		assert.Equal(t, now, gotStart)
		assert.Equal(t, end, gotEnd)
	})

	t.Run("future start is pulled back and keeps the window length", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		end := start.Add(10 * 24 * time.Hour)
		gotStart, gotEnd := NormalizeDiscountWindow(start, end, now)
		assert.Equal(t, now, gotStart)
		assert.Equal(t, end.Add(-2*time.Hour), gotEnd)
		assert.Equal(t, end.Sub(start), gotEnd.Sub(gotStart), "window length preserved")
	})

	t.Run("zero start is left alone", func(t *testing.T) {
		end := now.Add(time.Hour)
		gotStart, gotEnd := NormalizeDiscountWindow(time.Time{}, end, now)
		assert.True(t, gotStart.IsZero())
		assert.Equal(t, end, gotEnd)
	})
}

func TestValidateDiscountWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pct := func(v float64) *float64 { return &v }

	t.Run("valid window passes", func(t *testing.T) {
		assert.Nil(t, ValidateDiscountWindow(pct(25), now, now.Add(time.Hour)))
	})

	t.Run("zero percentage is accepted", func(t *testing.T) {
		assert.Nil(t, ValidateDiscountWindow(pct(0), now, now.Add(time.Hour)))
	})

	t.Run("percentage bounds", func(t *testing.T) {
		assert.NotNil(t, ValidateDiscountWindow(nil, now, now.Add(time.Hour)))
		assert.NotNil(t, ValidateDiscountWindow(pct(-1), now, now.Add(time.Hour)))
		assert.NotNil(t, ValidateDiscountWindow(pct(100.5), now, now.Add(time.Hour)))
		assert.Nil(t, ValidateDiscountWindow(pct(100), now, now.Add(time.Hour)))
	})

	t.Run("end must be strictly after start", func(t *testing.T) {
		assert.NotNil(t, ValidateDiscountWindow(pct(10), now, now))
		assert.NotNil(t, ValidateDiscountWindow(pct(10), now.Add(time.Hour), now))
		assert.NotNil(t, ValidateDiscountWindow(pct(10), time.Time{}, now))
		assert.NotNil(t, ValidateDiscountWindow(pct(10), now, time.Time{}))
	})
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.42, RoundMoney(10.424))
	assert.Equal(t, 10.43, RoundMoney(10.426))
	// exact half-cent values round to the even cent
	assert.Equal(t, 0.12, RoundMoney(0.125))
	assert.Equal(t, 0.38, RoundMoney(0.375))
}

func TestBuildPriceBreakdown(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("applicable discount reduces the price", func(t *testing.T) {
		d := activeDiscount(25, now.Add(-time.Hour), now.Add(time.Hour))
		b := BuildPriceBreakdown(100, d, now)
		assert.True(t, b.HasDiscount)
		assert.Equal(t, 100.0, b.OriginalPrice)
		assert.Equal(t, 25.0, b.Percentage)
		assert.Equal(t, 25.0, b.DiscountAmount)
		assert.Equal(t, 75.0, b.FinalPrice)
	})

	t.Run("no discount means full price", func(t *testing.T) {
		b := BuildPriceBreakdown(100, nil, now)
		assert.False(t, b.HasDiscount)
		assert.Equal(t, 100.0, b.FinalPrice)
		assert.Zero(t, b.DiscountAmount)
	})

	t.Run("expired discount means full price", func(t *testing.T) {
		d := activeDiscount(25, now.Add(-2*time.Hour), now.Add(-time.Hour))
		b := BuildPriceBreakdown(100, d, now)
		assert.False(t, b.HasDiscount)
		assert.Equal(t, 100.0, b.FinalPrice)
	})

	t.Run("amounts are rounded to currency precision", func(t *testing.T) {
		d := activeDiscount(33, now.Add(-time.Hour), now.Add(time.Hour))
		b := BuildPriceBreakdown(19.99, d, now)
		assert.Equal(t, 6.6, b.DiscountAmount)
		assert.Equal(t, 13.39, b.FinalPrice)
	})
}
