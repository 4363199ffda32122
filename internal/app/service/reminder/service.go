package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/subscription"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/platform/mail"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/logctx"
)

// Service sends upcoming-renewal reminder emails. The sweep runs only when an
// external trigger (admin endpoint, cron) invokes Run; there is no in-process
// scheduler.
type Service struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	subSvc *subscription.Service
	mailer mail.Mailer
	db     *gorm.DB
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, sub *subscription.Service, mailer mail.Mailer, db *gorm.DB) *Service {
	return &Service{cfg: cfg, log: log, subSvc: sub, mailer: mailer, db: db}
}

type RunResult struct {
	Due    int `json:"due"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Run sweeps active subscriptions due within the configured window and emails
// the address captured on the originating checkout session. Send failures are
// logged and skipped; the subscription stays unreminded and is retried on the
// next run.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	window := time.Duration(s.cfg.Reminder.WindowDays) * 24 * time.Hour
	now := time.Now()

	due, err := s.subSvc.DueForReminder(ctx, now, window)
	if err != nil {
		return nil, fmt.Errorf("failed to list due subscriptions: %w", err)
	}

	result := &RunResult{Due: len(due)}
	for _, sub := range due {
		email, err := s.customerEmail(ctx, sub)
		if err != nil {
			logctx.FromCtx(ctx, s.log).Warnw("skipping reminder, no customer email",
				"subscription_id", sub.ID, "err", err)
			result.Failed++
			continue
		}

		subject := "Your subscription renews soon"
		body := fmt.Sprintf(
			"Your %s plan (%s billing) renews on %s.\n\nIf you do not want to renew, cancel before that date.",
			sub.PlanID, sub.BillingCycle, sub.NextBillingDate.Format("2006-01-02"))

		if err := s.mailer.Send(email, subject, body); err != nil {
			logctx.FromCtx(ctx, s.log).Errorw("failed to send reminder",
				"subscription_id", sub.ID, "err", err)
			result.Failed++
			continue
		}

		if err := s.subSvc.MarkReminderSent(ctx, sub.ID, now); err != nil {
			logctx.FromCtx(ctx, s.log).Errorw("failed to mark reminder sent",
				"subscription_id", sub.ID, "err", err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	logctx.FromCtx(ctx, s.log).Infow("reminder sweep finished",
		"due", result.Due, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

// customerEmail resolves the address captured at checkout time.
func (s *Service) customerEmail(ctx context.Context, sub *models.UserSubscription) (string, error) {
	var session models.CheckoutSession
	if err := s.db.WithContext(ctx).
		Select("customer_email").
		Where("id = ?", sub.CheckoutSessionID).
		First(&session).Error; err != nil {
		return "", fmt.Errorf("failed to load originating session: %w", err)
	}
	if session.CustomerEmail == "" {
		return "", fmt.Errorf("originating session has no customer email")
	}
	return session.CustomerEmail, nil
}
