package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/pricing"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/subscription"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/logctx"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/tool"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

var sessionOutcomeCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "checkout",
	Name:      "session_outcome_total",
	Help:      "Checkout session outcomes, partitioned by outcome.",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(sessionOutcomeCnt)
}

type Service struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	calc   *pricing.Calculator
	subSvc *subscription.Service
	db     *gorm.DB
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, calc *pricing.Calculator, sub *subscription.Service, db *gorm.DB) CheckoutManager {
	return &Service{cfg: cfg, log: log, calc: calc, subSvc: sub, db: db}
}

// CreateSession prices the plan and persists a pending session. The caller
// drives the external payment step out-of-band and comes back via
// ConfirmSession.
func (s *Service) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	quote, err := s.calc.ComputeCheckoutAmount(req.PlanID, types.BillingCycle(req.BillingCycle), req.CouponCode)
	if err != nil {
		return nil, err
	}

	var couponCode *string
	if req.CouponCode != "" {
		couponCode = &req.CouponCode
	}

	session := &models.CheckoutSession{
		ID:             tool.GenerateUUIDV7(),
		UserID:         req.UserID,
		PlanID:         req.PlanID,
		BillingCycle:   types.BillingCycle(req.BillingCycle),
		Status:         types.CheckoutSessionStatusPending,
		Amount:         quote.Total,
		Currency:       quote.Currency,
		TaxAmount:      quote.Tax,
		DiscountAmount: quote.Discount,
		CouponCode:     couponCode,
		CustomerEmail:  req.CustomerEmail,
		CustomerName:   req.CustomerName,
		Country:        req.Country,
		PaymentMethod:  req.PaymentMethod,
		ExpiresAt:      time.Now().Add(s.cfg.Checkout.SessionTTL()),
		Extra:          datatypes.NewJSONType(&models.CheckoutSessionExtra{BasePrice: quote.Base}),
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	// Creation audit entry; errors are logged but not returned.
	go func(after models.CheckoutSession) {
		log := &models.CheckoutSessionLog{
			ID:        tool.GenerateUUIDV7(),
			SessionID: after.ID,
			ToStatus:  after.Status,
			Reason:    "create",
			After:     datatypes.NewJSONType(&after),
			Extra:     datatypes.JSONMap{},
		}
		if err := s.db.Save(log).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save session log: %v", err)
		}
	}(*session)

	sessionOutcomeCnt.WithLabelValues("created").Inc()
	logctx.FromCtx(ctx, s.log).Infow("checkout session created",
		"session_id", session.ID, "plan_id", session.PlanID, "amount", session.Amount)

	return &CreateSessionResponse{
		SessionID: session.ID,
		Amount:    session.Amount,
		Currency:  session.Currency,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// nextStatusForConfirm decides the terminal status a session should move to
// for a confirmation attempt. The idempotency guard runs before everything
// else so repeated client retries can never double-activate.
func nextStatusForConfirm(session *models.CheckoutSession, payment *types.PaymentResult, now time.Time) (types.CheckoutSessionStatus, error) {
	if session.Status != types.CheckoutSessionStatusPending {
		return "", ErrAlreadyProcessed
	}
	if session.Expired(now) {
		// Expiry is discovered lazily here; there is no background sweep.
		return types.CheckoutSessionStatusCanceled, ErrSessionExpired
	}
	if !payment.Succeeded() {
		return types.CheckoutSessionStatusFailed, ErrPaymentFailed
	}
	return types.CheckoutSessionStatusPaid, nil
}

// ConfirmSession settles a pending session against the external payment
// outcome. On success the paid transition and the subscription activation
// commit as one transaction; a lost pending->terminal race surfaces as
// ErrAlreadyProcessed.
func (s *Service) ConfirmSession(ctx context.Context, req *ConfirmSessionRequest) (*ConfirmSessionResponse, error) {
	if req == nil || req.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	var session models.CheckoutSession
	if err := s.db.WithContext(ctx).Where("id = ?", req.SessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}

	next, decision := nextStatusForConfirm(&session, &req.Payment, time.Now())
	if errors.Is(decision, ErrAlreadyProcessed) {
		return nil, ErrAlreadyProcessed
	}

	if next != types.CheckoutSessionStatusPaid {
		reason := "payment_failed"
		if next == types.CheckoutSessionStatusCanceled {
			reason = "expired"
		}
		ok, err := s.transitionStatus(ctx, s.db, &session, next, reason, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAlreadyProcessed
		}
		sessionOutcomeCnt.WithLabelValues(string(next)).Inc()
		return nil, decision
	}

	var subscriptionID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		extra := &models.CheckoutSessionExtra{
			BasePrice:            session.GetBasePrice(),
			PaymentTransactionID: req.Payment.TransactionID,
		}
		ok, err := s.transitionStatus(ctx, tx, &session, types.CheckoutSessionStatusPaid, "paid",
			map[string]any{"extra": datatypes.NewJSONType(extra)})
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}

		// Guest checkout: the session stays paid with no subscription until a
		// later account-linking flow reconciles it.
		if session.UserID == nil {
			return nil
		}

		sub, err := s.subSvc.Activate(ctx, tx, *session.UserID, session.PlanID, session.BillingCycle, session.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrActivationInconsistency, err)
		}
		subscriptionID = sub.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyProcessed) {
			return nil, ErrAlreadyProcessed
		}
		if errors.Is(err, ErrActivationInconsistency) {
			// The rollback keeps the session pending, but this path means a
			// paid confirmation could not grant service. Alert loudly.
			logctx.FromCtx(ctx, s.log).Errorw("activation inconsistency on confirm",
				"session_id", session.ID, "user_id", session.UserID, "err", err)
			return nil, err
		}
		return nil, fmt.Errorf("failed to confirm checkout session: %w", err)
	}

	sessionOutcomeCnt.WithLabelValues("paid").Inc()
	logctx.FromCtx(ctx, s.log).Infow("checkout session paid",
		"session_id", session.ID, "subscription_id", subscriptionID)

	return &ConfirmSessionResponse{Success: true, Message: "ok", SubscriptionID: subscriptionID}, nil
}

// transitionStatus flips a pending session to a terminal status with a
// conditional update guarded by the current status, and appends the audit
// entry in the same unit. It reports false when the guard matched no row,
// which means another confirmation settled the session first.
func (s *Service) transitionStatus(ctx context.Context, tx *gorm.DB, session *models.CheckoutSession, to types.CheckoutSessionStatus, reason string, updates map[string]any) (bool, error) {
	if !session.Status.CanTransitionTo(to) {
		return false, nil
	}

	values := map[string]any{"status": to}
	for k, v := range updates {
		values[k] = v
	}

	res := tx.WithContext(ctx).Model(&models.CheckoutSession{}).
		Where("id = ? AND status = ?", session.ID, types.CheckoutSessionStatusPending).
		Updates(values)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update session status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	before := *session
	session.Status = to

	log := &models.CheckoutSessionLog{
		ID:         tool.GenerateUUIDV7(),
		SessionID:  session.ID,
		FromStatus: before.Status,
		ToStatus:   to,
		Reason:     reason,
		Before:     datatypes.NewJSONType(&before),
		After:      datatypes.NewJSONType(session),
		Extra:      datatypes.JSONMap{},
	}
	if err := tx.WithContext(ctx).Create(log).Error; err != nil {
		return false, fmt.Errorf("failed to write session log: %w", err)
	}
	return true, nil
}

// filtersAnd is a helper to combine multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// ScanSessions implements paginated/admin listing with filters
func (s *Service) ScanSessions(ctx context.Context, req *ScanSessionsRequest) (*ScanSessionsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.CheckoutSession{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	var rows []*models.CheckoutSession

	q := tx.Limit(req.Size)

	if req.From > 0 {
		q = q.Offset(req.From)
	}

	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &ScanSessionsResponse{Items: rows, Total: total}, nil
}
