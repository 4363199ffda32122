package pricing

import (
	"errors"
	"math"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

var (
	// ErrInvalidPlan is returned when the plan id is not in the configured plan table.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrInvalidBillingCycle is returned when the billing cycle is not monthly or yearly.
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
)

// Quote is the breakdown of a checkout amount, all values in minor currency units.
type Quote struct {
	Base     int64  `json:"base"`
	Tax      int64  `json:"tax"`
	Discount int64  `json:"discount"`
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

// Calculator computes checkout amounts from the configured plan price table,
// coupon table, and tax rate. It holds no mutable state and is safe for
// concurrent use.
type Calculator struct {
	cfg *config.Config
}

func NewCalculator(cfg *config.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// roundHalfAwayFromZero rounds base*rate to the nearest minor unit, ties away
// from zero.
func roundHalfAwayFromZero(base int64, rate float64) int64 {
	return int64(math.Round(float64(base) * rate))
}

// ComputeCheckoutAmount derives the quote for a plan and billing cycle.
// The tax is derived once from the base price and is not recomputed after the
// discount. Unknown coupon codes yield a zero discount rather than an error;
// matching is exact and case-sensitive.
func (c *Calculator) ComputeCheckoutAmount(planID string, cycle types.BillingCycle, couponCode string) (*Quote, error) {
	if !cycle.Valid() {
		return nil, ErrInvalidBillingCycle
	}

	plan := c.cfg.GetPlanByID(planID)
	if plan == nil {
		return nil, ErrInvalidPlan
	}

	base, err := plan.PriceFor(cycle)
	if err != nil {
		return nil, ErrInvalidBillingCycle
	}

	tax := roundHalfAwayFromZero(base, c.cfg.Checkout.TaxRate)

	var discount int64
	if couponCode != "" {
		if coupon := c.cfg.GetCouponByCode(couponCode); coupon != nil {
			discount = roundHalfAwayFromZero(base, coupon.Rate)
		}
	}

	total := base + tax - discount
	// A configured discount never exceeds base+tax, but the invariant is
	// clamped here rather than assumed.
	if total < 0 {
		total = 0
	}

	return &Quote{
		Base:     base,
		Tax:      tax,
		Discount: discount,
		Total:    total,
		Currency: c.cfg.Checkout.Currency,
	}, nil
}
