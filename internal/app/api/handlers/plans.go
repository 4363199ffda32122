package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/response"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

type PlanItem struct {
	ID             string `json:"id"`
	MonthlyPrice   int64  `json:"monthly_price"`
	YearlyPrice    int64  `json:"yearly_price"`
	Currency       string `json:"currency"`
	MonthlyDisplay string `json:"monthly_display"`
	YearlyDisplay  string `json:"yearly_display"`
}

// formatMinorUnits renders minor currency units for display, e.g. 999 USD -> "USD 9.99".
func formatMinorUnits(amount int64, currency string) string {
	return fmt.Sprintf("%s %d.%02d", currency, amount/100, amount%100)
}

// @Summary      List Plans
// @Description  Returns the configured plan price table.
// @Tags         Plan
// @Produce      json
// @Success      200  {object}  handlers.RespListPlans
// @Router       /api/v1/plans [get]
func ApiListPlans(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := lo.Map(cfg.Plans, func(p *types.PlanPrice, _ int) *PlanItem {
			return &PlanItem{
				ID:             p.ID,
				MonthlyPrice:   p.MonthlyPrice,
				YearlyPrice:    p.YearlyPrice,
				Currency:       cfg.Checkout.Currency,
				MonthlyDisplay: formatMinorUnits(p.MonthlyPrice, cfg.Checkout.Currency),
				YearlyDisplay:  formatMinorUnits(p.YearlyPrice, cfg.Checkout.Currency),
			}
		})
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

func RegisterPlanRoutes(r gin.IRouter, cfg *config.Config) {
	r.GET("/plans", ApiListPlans(cfg))
}
