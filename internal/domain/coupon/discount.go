// Package coupon computes coupon discounts against an order total.
package coupon

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

var (
	// ErrInvalidOrExpired is returned when no usable coupon matches a code.
	ErrInvalidOrExpired = errors.New("Invalid or expired coupon")
	// ErrMinimumNotMet is returned when the order total is below the coupon minimum.
	ErrMinimumNotMet = errors.New("Minimum order amount not met")
)

var hundred = decimal.NewFromInt(100)

// Discount is the outcome of applying a coupon to an order total.
type Discount struct {
	Discount           decimal.Decimal `json:"discount"`
	TotalAfterDiscount decimal.Decimal `json:"totalAfterDiscount"`
}

// Evaluate applies c to total. It does not check the validity window or
// usage limit; callers look the coupon up with those filters.
func Evaluate(c *model.Coupon, total decimal.Decimal) (Discount, error) {
	if total.LessThan(c.MinOrderAmount) {
		return Discount{}, ErrMinimumNotMet
	}

	var amount decimal.Decimal
	switch c.DiscountType {
	case model.DiscountPercentage:
		amount = total.Mul(c.DiscountValue).Div(hundred)
	case model.DiscountFixed:
		amount = c.DiscountValue
	default:
		return Discount{}, errors.Errorf("unsupported discount type: %q", c.DiscountType)
	}

	if c.MaxDiscount != nil && c.MaxDiscount.IsPositive() {
		amount = decimal.Min(amount, *c.MaxDiscount)
	}

	return Discount{
		Discount:           model.RoundMoney(amount),
		TotalAfterDiscount: model.RoundMoney(total.Sub(amount)),
	}, nil
}
