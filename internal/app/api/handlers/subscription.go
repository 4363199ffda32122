package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	mw "github.com/ntdung7899/subscription-tracker-sub000/internal/app/api/middleware"
	subsvc "github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/subscription"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/models"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/response"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

type SubscriptionItem struct {
	ID              string                   `json:"id"`
	PlanID          string                   `json:"plan_id"`
	Status          types.SubscriptionStatus `json:"status"`
	BillingCycle    types.BillingCycle       `json:"billing_cycle"`
	StartDate       time.Time                `json:"start_date"`
	NextBillingDate time.Time                `json:"next_billing_date"`
}

func toSubscriptionItem(m *models.UserSubscription, _ int) *SubscriptionItem {
	return &SubscriptionItem{
		ID:              m.ID,
		PlanID:          m.PlanID,
		Status:          m.Status,
		BillingCycle:    m.BillingCycle,
		StartDate:       m.StartDate,
		NextBillingDate: m.NextBillingDate,
	}
}

// @Summary      List My Subscriptions
// @Description  Returns the authenticated user's subscriptions, newest first.
// @Tags         Subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespListSubscriptions
// @Router       /api/v1/subscriptions [get]
func ApiListSubscriptions(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mw.UserIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "authentication required"))
			return
		}

		subs, err := svc.GetUserSubscriptions(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(lo.Map(subs, toSubscriptionItem)))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *subsvc.Service) {
	r.GET("/subscriptions", ApiListSubscriptions(svc))
}
