package subscription

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/tool"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, log: log}
}

// Activate materializes an active subscription from a paid checkout session.
// It writes through tx so the caller can commit it atomically with the session
// status flip; activation must never be visible without the paid status.
func (s *Service) Activate(ctx context.Context, tx *gorm.DB, userID, planID string, cycle types.BillingCycle, sessionID string) (*models.UserSubscription, error) {
	start := time.Now()
	next, err := NextBillingDate(start, cycle)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next billing date: %w", err)
	}

	sub := &models.UserSubscription{
		ID:                tool.GenerateUUIDV7(),
		UserID:            userID,
		PlanID:            planID,
		Status:            types.SubscriptionStatusActive,
		BillingCycle:      cycle,
		StartDate:         start,
		NextBillingDate:   next,
		CheckoutSessionID: sessionID,
	}

	if err := tx.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// GetUserSubscriptions returns all subscriptions for a user, newest first.
func (s *Service) GetUserSubscriptions(ctx context.Context, userID string) ([]*models.UserSubscription, error) {
	var subs []*models.UserSubscription
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date desc").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// DueForReminder returns active subscriptions whose next billing date falls
// inside [now, now+window) and which have not been reminded yet.
func (s *Service) DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*models.UserSubscription, error) {
	var subs []*models.UserSubscription
	if err := s.db.WithContext(ctx).
		Where("status = ?", types.SubscriptionStatusActive).
		Where("next_billing_date >= ? AND next_billing_date < ?", now, now.Add(window)).
		Where("reminder_sent_at IS NULL").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list due subscriptions: %w", err)
	}
	return subs, nil
}

// MarkReminderSent records that a renewal reminder went out for the subscription.
func (s *Service) MarkReminderSent(ctx context.Context, subscriptionID string, at time.Time) error {
	if err := s.db.WithContext(ctx).
		Model(&models.UserSubscription{}).
		Where("id = ?", subscriptionID).
		Update("reminder_sent_at", at).Error; err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return nil
}
