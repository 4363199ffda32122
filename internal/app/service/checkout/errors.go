package checkout

import "errors"

var (
	// ErrSessionNotFound is returned when the session id is unknown.
	ErrSessionNotFound = errors.New("checkout session not found")
	// ErrAlreadyProcessed is returned when the session already reached a
	// terminal status. Callers should look up the first attempt's outcome
	// instead of retrying.
	ErrAlreadyProcessed = errors.New("checkout session already processed")
	// ErrSessionExpired is returned when confirmation arrives after the
	// session expiry; the session is canceled and cannot be resurrected.
	ErrSessionExpired = errors.New("checkout session expired")
	// ErrPaymentFailed is returned when the external payment outcome was not
	// a success; the session is terminal, start a new one to retry.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrActivationInconsistency means the paid transition and subscription
	// activation could not complete as one unit. It requires alerting: a paid
	// session without a subscription is revenue without service.
	ErrActivationInconsistency = errors.New("subscription activation inconsistency")
)
