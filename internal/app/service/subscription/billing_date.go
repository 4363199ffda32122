package subscription

import (
	"fmt"
	"time"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

// NextBillingDate advances start by exactly one billing period.
//
// Month arithmetic clamps to the last day of the target month instead of
// rolling over: Jan 31 + 1 month is Feb 29 in a leap year, Feb 28 otherwise.
// The same policy applies to Feb 29 + 1 year (-> Feb 28).
func NextBillingDate(start time.Time, cycle types.BillingCycle) (time.Time, error) {
	switch cycle {
	case types.BillingCycleMonthly:
		return addMonthsClamped(start, 1, 0), nil
	case types.BillingCycleYearly:
		return addMonthsClamped(start, 0, 1), nil
	default:
		return time.Time{}, fmt.Errorf("invalid billing cycle: %q", cycle)
	}
}

func addMonthsClamped(t time.Time, months int, years int) time.Time {
	year, month, day := t.Date()
	targetYear := year + years
	targetMonth := month + time.Month(months)

	if last := lastDayOfMonth(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
