package types

type CheckoutSessionStatus string

const (
	CheckoutSessionStatusPending  CheckoutSessionStatus = "pending"
	CheckoutSessionStatusPaid     CheckoutSessionStatus = "paid"
	CheckoutSessionStatusFailed   CheckoutSessionStatus = "failed"
	CheckoutSessionStatusCanceled CheckoutSessionStatus = "canceled"
)

// Terminal reports whether no further transition is permitted from s.
func (s CheckoutSessionStatus) Terminal() bool {
	switch s {
	case CheckoutSessionStatusPaid, CheckoutSessionStatusFailed, CheckoutSessionStatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo encodes the full transition set: pending moves forward to
// exactly one terminal status, terminal statuses never move again.
func (s CheckoutSessionStatus) CanTransitionTo(next CheckoutSessionStatus) bool {
	return s == CheckoutSessionStatusPending && next.Terminal()
}

// PaymentResult is the outcome of the external payment step. The backend never
// negotiates payment itself; it only receives this already-decided result.
type PaymentResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

const PaymentResultStatusSucceeded = "success"

func (r *PaymentResult) Succeeded() bool {
	return r != nil && r.Status == PaymentResultStatusSucceeded
}
