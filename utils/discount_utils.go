package utils

import (
	"math"
	"time"

	"github.com/Govind-619/MarketSphere/models"
)

// PriceBreakdown holds the externally visible pricing of a product after
// evaluating its discount.
type PriceBreakdown struct {
	OriginalPrice  float64 `json:"original_price"`
	HasDiscount    bool    `json:"has_discount"`
	Percentage     float64 `json:"percentage,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	FinalPrice     float64 `json:"final_price"`
}

// IsDiscountApplicable reports whether the discount is in effect at the
// given instant. Window boundaries are inclusive on both ends. Missing
// boundaries fail closed. A zero percentage passes validation but is never
// applicable.
func IsDiscountApplicable(d *models.ProductDiscount, now time.Time) bool {
	if d == nil {
		return false
	}
	if !d.Active {
		return false
	}
	if d.Percentage <= 0 {
		return false
	}
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return false
	}
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// NormalizeDiscountWindow compensates for client/server clock or zone skew.
// Frontends routinely submit "starts now" windows whose start lands ahead
// of server time; left alone those discounts would not apply until the
// offset elapsed. When start is after now, start becomes now and end is
// pulled back by the same delta, so the window keeps its original length.
// Windows that already started are returned unchanged.
func NormalizeDiscountWindow(start, end, now time.Time) (time.Time, time.Time) {
	if start.IsZero() || !start.After(now) {
		return start, end
	}
	delta := start.Sub(now)
	LogDebug("Adjusting discount window for clock skew, delta: %v", delta)
	start = now
	if !end.IsZero() {
		end = end.Add(-delta)
	}
	return start, end
}

// ValidateDiscountWindow checks percentage bounds and window ordering.
// Runs after normalization and before any write.
func ValidateDiscountWindow(percentage *float64, start, end time.Time) *AppError {
	if percentage == nil || *percentage < 0 || *percentage > 100 {
		return BadRequestError("Discount percentage must be between 0 and 100", nil)
	}
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return BadRequestError("Invalid date range: end date must be after start date", nil)
	}
	return nil
}

// RoundMoney rounds to currency precision using round-half-to-even, the
// single rounding mode for every price the API reports.
func RoundMoney(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// BuildPriceBreakdown computes the sale price of a product given its
// current discount row (may be nil). The caller is expected to have
// re-read the discount from the database, not from a cached association.
func BuildPriceBreakdown(price float64, d *models.ProductDiscount, now time.Time) PriceBreakdown {
	if !IsDiscountApplicable(d, now) {
		return PriceBreakdown{
			OriginalPrice: price,
			HasDiscount:   false,
			FinalPrice:    price,
		}
	}
	amount := RoundMoney(price * d.Percentage / 100.0)
	return PriceBreakdown{
		OriginalPrice:  price,
		HasDiscount:    true,
		Percentage:     d.Percentage,
		DiscountAmount: amount,
		FinalPrice:     RoundMoney(price - amount),
	}
}
