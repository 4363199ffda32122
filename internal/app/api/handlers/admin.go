package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/checkout"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/reminder"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/response"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

type CheckoutSessionItem struct {
	ID             string                      `json:"id"`
	UserID         *string                     `json:"user_id"`
	PlanID         string                      `json:"plan_id"`
	BillingCycle   types.BillingCycle          `json:"billing_cycle"`
	Status         types.CheckoutSessionStatus `json:"status"`
	Amount         int64                       `json:"amount"`
	Currency       string                      `json:"currency"`
	TaxAmount      int64                       `json:"tax_amount"`
	DiscountAmount int64                       `json:"discount_amount"`
	CouponCode     *string                     `json:"coupon_code"`
	CustomerEmail  string                      `json:"customer_email"`
	Country        string                      `json:"country"`
	BasePrice      int64                       `json:"base_price"`
	ExpiresAt      time.Time                   `json:"expires_at"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func toCheckoutSessionItem(m *models.CheckoutSession, _ int) *CheckoutSessionItem {
	return &CheckoutSessionItem{
		ID:             m.ID,
		UserID:         m.UserID,
		PlanID:         m.PlanID,
		BillingCycle:   m.BillingCycle,
		Status:         m.Status,
		Amount:         m.Amount,
		Currency:       m.Currency,
		TaxAmount:      m.TaxAmount,
		DiscountAmount: m.DiscountAmount,
		CouponCode:     m.CouponCode,
		CustomerEmail:  m.CustomerEmail,
		Country:        m.Country,
		BasePrice:      m.GetBasePrice(),
		ExpiresAt:      m.ExpiresAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type ListCheckoutSessionsResponse struct {
	Items []*CheckoutSessionItem `json:"items"`
	Total int64                  `json:"total"`
}

// @Summary      List Checkout Sessions (Admin)
// @Description  Retrieves a paginated and filterable list of checkout sessions for reconciliation.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body checkout.ScanSessionsRequest true "Scan request"
// @Success      200  {object}  handlers.RespListCheckoutSessions
// @Router       /api/v1/admin/checkout_sessions/scan [post]
func ApiAdminScanCheckoutSessions(mgr checkout.CheckoutManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.ScanSessionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := mgr.ScanSessions(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		out := ListCheckoutSessionsResponse{
			Items: lo.Map(res.Items, toCheckoutSessionItem),
			Total: res.Total,
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

// @Summary      Run Reminder Sweep (Admin)
// @Description  Sends renewal reminder emails for subscriptions due within the configured window. Intended to be hit by an external cron.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespReminderRun
// @Router       /api/v1/admin/reminders/run [post]
func ApiAdminRunReminders(svc *reminder.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Run(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, mgr checkout.CheckoutManager, rem *reminder.Service) {
	r.POST("/checkout_sessions/scan", ApiAdminScanCheckoutSessions(mgr))
	r.POST("/reminders/run", ApiAdminRunReminders(rem))
}
