package models

import (
	"time"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

// UserSubscription is a live plan subscription materialized from exactly one
// successfully paid checkout session.
type UserSubscription struct {
	ID           string                   `gorm:"column:id;primary_key;type:uuid" json:"id"`
	UserID       string                   `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	PlanID       string                   `gorm:"column:plan_id;type:varchar(64);not null" json:"plan_id"`
	Status       types.SubscriptionStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	BillingCycle types.BillingCycle       `gorm:"column:billing_cycle;type:varchar(16);not null" json:"billing_cycle"`
	StartDate    time.Time                `gorm:"column:start_date;not null" json:"start_date"`
	// NextBillingDate is StartDate advanced by exactly one billing period.
	NextBillingDate time.Time `gorm:"column:next_billing_date;not null;index" json:"next_billing_date"`
	// CheckoutSessionID records which paid session produced this subscription.
	CheckoutSessionID string `gorm:"column:checkout_session_id;type:uuid;not null;uniqueIndex" json:"checkout_session_id"`
	// ReminderSentAt marks the last renewal reminder, nil if never reminded.
	ReminderSentAt *time.Time `gorm:"column:reminder_sent_at;default:null" json:"reminder_sent_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (UserSubscription) TableName() string {
	return "user_subscription"
}

func (s *UserSubscription) Active() bool {
	return s != nil && s.Status == types.SubscriptionStatusActive
}
