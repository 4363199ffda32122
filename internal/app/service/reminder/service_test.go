package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	subsvc "github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/subscription"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/tool"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return assert.AnError
	}
	m.sent = append(m.sent, to)
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CheckoutSession{}, &models.UserSubscription{})
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T, mailer *fakeMailer) (*Service, *gorm.DB) {
	cfg := &config.Config{Reminder: config.ReminderConfig{WindowDays: 3}}
	db := setupTestDB(t)
	log := zap.NewNop().Sugar()
	return NewService(cfg, log, subsvc.NewService(cfg, db, log), mailer, db), db
}

func seedSubscription(t *testing.T, db *gorm.DB, userID, email string, nextBilling time.Time) *models.UserSubscription {
	sessionID := tool.GenerateUUIDV7()
	session := &models.CheckoutSession{
		ID:            sessionID,
		UserID:        &userID,
		PlanID:        "pro",
		BillingCycle:  types.BillingCycleMonthly,
		Status:        types.CheckoutSessionStatusPaid,
		Currency:      "USD",
		CustomerEmail: email,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(session).Error)

	sub := &models.UserSubscription{
		ID:                tool.GenerateUUIDV7(),
		UserID:            userID,
		PlanID:            "pro",
		Status:            types.SubscriptionStatusActive,
		BillingCycle:      types.BillingCycleMonthly,
		StartDate:         time.Now().AddDate(0, -1, 0),
		NextBillingDate:   nextBilling,
		CheckoutSessionID: sessionID,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestRun_SendsForDueSubscriptionsOnly(t *testing.T) {
	mailer := &fakeMailer{}
	svc, db := newTestService(t, mailer)

	due := seedSubscription(t, db, "u1", "due@b.com", time.Now().Add(24*time.Hour))
	seedSubscription(t, db, "u2", "far@b.com", time.Now().Add(30*24*time.Hour))

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Due)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, []string{"due@b.com"}, mailer.sent)

	var reloaded models.UserSubscription
	require.NoError(t, db.Where("id = ?", due.ID).First(&reloaded).Error)
	assert.NotNil(t, reloaded.ReminderSentAt)
}

func TestRun_DoesNotRemindTwice(t *testing.T) {
	mailer := &fakeMailer{}
	svc, db := newTestService(t, mailer)

	seedSubscription(t, db, "u1", "due@b.com", time.Now().Add(24*time.Hour))

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Due)
	assert.Len(t, mailer.sent, 1)
}

func TestRun_SendFailureLeavesSubscriptionUnreminded(t *testing.T) {
	mailer := &fakeMailer{fail: true}
	svc, db := newTestService(t, mailer)

	sub := seedSubscription(t, db, "u1", "due@b.com", time.Now().Add(24*time.Hour))

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Due)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 1, res.Failed)

	var reloaded models.UserSubscription
	require.NoError(t, db.Where("id = ?", sub.ID).First(&reloaded).Error)
	assert.Nil(t, reloaded.ReminderSentAt)

	// Retryable on the next sweep.
	mailer.fail = false
	res, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}
