package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

// CheckoutSessionExtra stores additional per-session data that does not need
// its own column.
type CheckoutSessionExtra struct {
	// BasePrice is the plan price before tax and discount, in minor units.
	BasePrice int64 `json:"base_price"`
	// PaymentTransactionID is the external payment reference recorded at confirmation.
	PaymentTransactionID string `json:"payment_transaction_id,omitempty"`
}

// CheckoutSession is one attempt to purchase a plan. Sessions are never
// deleted; terminal rows remain as the audit trail of the checkout flow.
type CheckoutSession struct {
	ID string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	// UserID is nil for guest checkout.
	UserID       *string                     `gorm:"column:user_id;type:varchar(64);index" json:"user_id"`
	PlanID       string                      `gorm:"column:plan_id;type:varchar(64);not null" json:"plan_id"`
	BillingCycle types.BillingCycle          `gorm:"column:billing_cycle;type:varchar(16);not null" json:"billing_cycle"`
	Status       types.CheckoutSessionStatus `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	// Amount is the post-tax-and-discount total in minor currency units.
	Amount         int64   `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Currency       string  `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	TaxAmount      int64   `gorm:"column:tax_amount;type:bigint;not null" json:"tax_amount"`
	DiscountAmount int64   `gorm:"column:discount_amount;type:bigint;not null" json:"discount_amount"`
	CouponCode     *string `gorm:"column:coupon_code;type:varchar(64)" json:"coupon_code"`
	CustomerEmail  string  `gorm:"column:customer_email;type:varchar(255);not null" json:"customer_email"`
	CustomerName   string  `gorm:"column:customer_name;type:varchar(255)" json:"customer_name"`
	Country        string  `gorm:"column:country;type:varchar(64)" json:"country"`
	PaymentMethod  *string `gorm:"column:payment_method;type:varchar(64)" json:"payment_method"`
	// ExpiresAt is fixed at creation; a session past this point can never become paid.
	ExpiresAt time.Time                                 `gorm:"column:expires_at;not null" json:"expires_at"`
	Extra     datatypes.JSONType[*CheckoutSessionExtra] `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time                                 `json:"created_at"`
	UpdatedAt time.Time                                 `json:"updated_at"`
}

func (CheckoutSession) TableName() string {
	return "checkout_session"
}

func (s *CheckoutSession) Expired(now time.Time) bool {
	return s != nil && now.After(s.ExpiresAt)
}

func (s *CheckoutSession) GetBasePrice() int64 {
	if s == nil || s.Extra.Data() == nil {
		return 0
	}
	return s.Extra.Data().BasePrice
}
