package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Plans: []*types.PlanPrice{
			{ID: "pro", MonthlyPrice: 999, YearlyPrice: 9900},
			{ID: "team", MonthlyPrice: 2999, YearlyPrice: 29900},
		},
		Coupons: []*types.Coupon{
			{Code: "WELCOME10", Rate: 0.10},
		},
		Checkout: config.CheckoutConfig{TaxRate: 0.10, Currency: "USD", SessionTTLMinutes: 60},
	}
}

func TestComputeCheckoutAmount_AllCases(t *testing.T) {
	calc := NewCalculator(testConfig())

	tests := []struct {
		name       string
		planID     string
		cycle      types.BillingCycle
		couponCode string
		want       *Quote
		wantErr    error
	}{
		{
			name:   "pro yearly no coupon",
			planID: "pro",
			cycle:  types.BillingCycleYearly,
			want:   &Quote{Base: 9900, Tax: 990, Discount: 0, Total: 10890, Currency: "USD"},
		},
		{
			name:       "pro monthly with coupon rounds discount half away from zero",
			planID:     "pro",
			cycle:      types.BillingCycleMonthly,
			couponCode: "WELCOME10",
			// base 999, tax round(99.9)=100, discount round(99.9)=100
			want: &Quote{Base: 999, Tax: 100, Discount: 100, Total: 999, Currency: "USD"},
		},
		{
			name:       "unknown coupon is ignored",
			planID:     "pro",
			cycle:      types.BillingCycleMonthly,
			couponCode: "NOPE",
			want:       &Quote{Base: 999, Tax: 100, Discount: 0, Total: 1099, Currency: "USD"},
		},
		{
			name:       "coupon matching is case sensitive",
			planID:     "pro",
			cycle:      types.BillingCycleMonthly,
			couponCode: "welcome10",
			want:       &Quote{Base: 999, Tax: 100, Discount: 0, Total: 1099, Currency: "USD"},
		},
		{
			name:   "team yearly",
			planID: "team",
			cycle:  types.BillingCycleYearly,
			want:   &Quote{Base: 29900, Tax: 2990, Discount: 0, Total: 32890, Currency: "USD"},
		},
		{
			name:    "unknown plan",
			planID:  "enterprise",
			cycle:   types.BillingCycleMonthly,
			wantErr: ErrInvalidPlan,
		},
		{
			name:    "invalid billing cycle",
			planID:  "pro",
			cycle:   types.BillingCycle("weekly"),
			wantErr: ErrInvalidBillingCycle,
		},
		{
			name:    "cycle validated before plan lookup",
			planID:  "enterprise",
			cycle:   types.BillingCycle(""),
			wantErr: ErrInvalidBillingCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeCheckoutAmount(tt.planID, tt.cycle, tt.couponCode)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeCheckoutAmount_Deterministic(t *testing.T) {
	calc := NewCalculator(testConfig())

	first, err := calc.ComputeCheckoutAmount("pro", types.BillingCycleYearly, "WELCOME10")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := calc.ComputeCheckoutAmount("pro", types.BillingCycleYearly, "WELCOME10")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestComputeCheckoutAmount_TotalNeverNegative(t *testing.T) {
	// An oversized coupon rate cannot push the total below zero.
	cfg := testConfig()
	cfg.Coupons = []*types.Coupon{{Code: "EVERYTHING", Rate: 2.0}}
	calc := NewCalculator(cfg)

	got, err := calc.ComputeCheckoutAmount("pro", types.BillingCycleMonthly, "EVERYTHING")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Total)
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(100), roundHalfAwayFromZero(999, 0.10))
	assert.Equal(t, int64(990), roundHalfAwayFromZero(9900, 0.10))
	assert.Equal(t, int64(1), roundHalfAwayFromZero(5, 0.10))
	assert.Equal(t, int64(0), roundHalfAwayFromZero(4, 0.10))
	assert.Equal(t, int64(0), roundHalfAwayFromZero(0, 0.10))
}
