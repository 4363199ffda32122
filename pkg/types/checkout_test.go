package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutSessionStatus_Transitions(t *testing.T) {
	terminal := []CheckoutSessionStatus{
		CheckoutSessionStatusPaid,
		CheckoutSessionStatusFailed,
		CheckoutSessionStatusCanceled,
	}

	assert.False(t, CheckoutSessionStatusPending.Terminal())
	for _, st := range terminal {
		assert.True(t, st.Terminal())
	}

	// pending moves forward to any terminal status
	for _, st := range terminal {
		assert.True(t, CheckoutSessionStatusPending.CanTransitionTo(st))
	}
	assert.False(t, CheckoutSessionStatusPending.CanTransitionTo(CheckoutSessionStatusPending))

	// no transition ever leaves a terminal status
	for _, from := range terminal {
		for _, to := range append(terminal, CheckoutSessionStatusPending) {
			assert.False(t, from.CanTransitionTo(to))
		}
	}
}

func TestPaymentResult_Succeeded(t *testing.T) {
	assert.True(t, (&PaymentResult{Status: PaymentResultStatusSucceeded}).Succeeded())
	assert.False(t, (&PaymentResult{Status: "failed"}).Succeeded())
	assert.False(t, (&PaymentResult{Status: "Success"}).Succeeded())
	assert.False(t, (*PaymentResult)(nil).Succeeded())
}

func TestParseBillingCycle(t *testing.T) {
	got, err := ParseBillingCycle("monthly")
	assert.NoError(t, err)
	assert.Equal(t, BillingCycleMonthly, got)

	got, err = ParseBillingCycle("yearly")
	assert.NoError(t, err)
	assert.Equal(t, BillingCycleYearly, got)

	for _, raw := range []string{"", "weekly", "Monthly", "YEARLY"} {
		_, err = ParseBillingCycle(raw)
		assert.Error(t, err, raw)
	}
}

func TestPlanPrice_PriceFor(t *testing.T) {
	plan := &PlanPrice{ID: "pro", MonthlyPrice: 999, YearlyPrice: 9900}

	monthly, err := plan.PriceFor(BillingCycleMonthly)
	assert.NoError(t, err)
	assert.Equal(t, int64(999), monthly)

	yearly, err := plan.PriceFor(BillingCycleYearly)
	assert.NoError(t, err)
	assert.Equal(t, int64(9900), yearly)

	_, err = plan.PriceFor(BillingCycle("weekly"))
	assert.Error(t, err)
}
