package checkout

import (
	"context"
	"time"

	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

type CreateSessionRequest struct {
	// UserID is the authenticated user, nil for guest checkout. It is filled
	// in by the HTTP layer, never bound from the request body.
	UserID        *string `json:"-"`
	PlanID        string  `json:"plan_id" binding:"required"`
	BillingCycle  string  `json:"billing_cycle" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerName  string  `json:"customer_name"`
	Country       string  `json:"country"`
	PaymentMethod *string `json:"payment_method"`
	CouponCode    string  `json:"coupon_code"`
}

type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConfirmSessionRequest struct {
	SessionID string              `json:"-"`
	Payment   types.PaymentResult `json:"payment"`
}

type ConfirmSessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// SubscriptionID is empty for guest checkouts, which produce no subscription.
	SubscriptionID string `json:"subscription_id,omitempty"`
}

// Scan session request/response.
type ScanSessionsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanSessionsResponse struct {
	Items []*models.CheckoutSession `json:"items"`
	Total int64                     `json:"total"`
}

// CheckoutManager drives the checkout session lifecycle.
type CheckoutManager interface {
	// Create a pending session priced by the calculator.
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error)
	// Confirm settles a pending session against the external payment outcome.
	ConfirmSession(ctx context.Context, req *ConfirmSessionRequest) (*ConfirmSessionResponse, error)
	// Scan sessions (used by admin list pages).
	ScanSessions(ctx context.Context, req *ScanSessionsRequest) (*ScanSessionsResponse, error)
}
