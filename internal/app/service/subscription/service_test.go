package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/tool"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.UserSubscription{})
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := setupTestDB(t)
	return NewService(&config.Config{}, db, zap.NewNop().Sugar()), db
}

func TestActivate_CreatesActiveSubscription(t *testing.T) {
	svc, db := newTestService(t)
	sessionID := tool.GenerateUUIDV7()

	sub, err := svc.Activate(context.Background(), db, "u1", "pro", types.BillingCycleMonthly, sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, types.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, sessionID, sub.CheckoutSessionID)

	wantNext, err := NextBillingDate(sub.StartDate, types.BillingCycleMonthly)
	require.NoError(t, err)
	assert.Equal(t, wantNext, sub.NextBillingDate)

	var stored models.UserSubscription
	require.NoError(t, db.Where("id = ?", sub.ID).First(&stored).Error)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "pro", stored.PlanID)
}

func TestActivate_RejectsInvalidCycle(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Activate(context.Background(), db, "u1", "pro", types.BillingCycle("weekly"), tool.GenerateUUIDV7())
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.UserSubscription{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestActivate_OneSubscriptionPerSession(t *testing.T) {
	svc, db := newTestService(t)
	sessionID := tool.GenerateUUIDV7()

	_, err := svc.Activate(context.Background(), db, "u1", "pro", types.BillingCycleMonthly, sessionID)
	require.NoError(t, err)

	// The unique index on checkout_session_id blocks a second activation from
	// the same session.
	_, err = svc.Activate(context.Background(), db, "u1", "pro", types.BillingCycleMonthly, sessionID)
	require.Error(t, err)
}

func TestGetUserSubscriptions_NewestFirst(t *testing.T) {
	svc, db := newTestService(t)

	old := &models.UserSubscription{
		ID: tool.GenerateUUIDV7(), UserID: "u1", PlanID: "pro",
		Status: types.SubscriptionStatusActive, BillingCycle: types.BillingCycleMonthly,
		StartDate:       time.Now().AddDate(0, -2, 0),
		NextBillingDate: time.Now().AddDate(0, -1, 0),
		CheckoutSessionID: tool.GenerateUUIDV7(),
	}
	recent := &models.UserSubscription{
		ID: tool.GenerateUUIDV7(), UserID: "u1", PlanID: "team",
		Status: types.SubscriptionStatusActive, BillingCycle: types.BillingCycleYearly,
		StartDate:       time.Now(),
		NextBillingDate: time.Now().AddDate(1, 0, 0),
		CheckoutSessionID: tool.GenerateUUIDV7(),
	}
	other := &models.UserSubscription{
		ID: tool.GenerateUUIDV7(), UserID: "u2", PlanID: "pro",
		Status: types.SubscriptionStatusActive, BillingCycle: types.BillingCycleMonthly,
		StartDate:       time.Now(),
		NextBillingDate: time.Now().AddDate(0, 1, 0),
		CheckoutSessionID: tool.GenerateUUIDV7(),
	}
	require.NoError(t, db.Create([]*models.UserSubscription{old, recent, other}).Error)

	subs, err := svc.GetUserSubscriptions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, recent.ID, subs[0].ID)
	assert.Equal(t, old.ID, subs[1].ID)
}
