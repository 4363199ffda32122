package types

import "fmt"

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) Valid() bool {
	return c == BillingCycleMonthly || c == BillingCycleYearly
}

// ParseBillingCycle validates the raw cycle string. Matching is exact:
// "Monthly" is rejected.
func ParseBillingCycle(value string) (BillingCycle, error) {
	cycle := BillingCycle(value)
	if !cycle.Valid() {
		return "", fmt.Errorf("invalid billing cycle: %q", value)
	}
	return cycle, nil
}

// PlanPrice maps a plan to its per-cycle prices in minor currency units.
type PlanPrice struct {
	ID           string `json:"id" mapstructure:"id"`
	MonthlyPrice int64  `json:"monthly_price" mapstructure:"monthly_price"`
	YearlyPrice  int64  `json:"yearly_price" mapstructure:"yearly_price"`
}

// PriceFor returns the price for the given cycle in minor units.
func (p *PlanPrice) PriceFor(cycle BillingCycle) (int64, error) {
	switch cycle {
	case BillingCycleMonthly:
		return p.MonthlyPrice, nil
	case BillingCycleYearly:
		return p.YearlyPrice, nil
	default:
		return 0, fmt.Errorf("invalid billing cycle: %q", cycle)
	}
}

// Coupon is a percentage discount applied to the base price.
// Rate is a fraction, e.g. 0.10 for a 10% discount.
type Coupon struct {
	Code string  `json:"code" mapstructure:"code"`
	Rate float64 `json:"rate" mapstructure:"rate"`
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)
