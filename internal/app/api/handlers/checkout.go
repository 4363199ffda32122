package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/ntdung7899/subscription-tracker-sub000/internal/app/api/middleware"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/checkout"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/pricing"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/response"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

// @Summary      Start Checkout
// @Description  Prices the selected plan and creates a pending checkout session.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        request body checkout.CreateSessionRequest true "Checkout session request"
// @Success      200  {object}  handlers.RespCreateCheckoutSession
// @Router       /api/v1/checkout/sessions [post]
func ApiCreateCheckoutSession(mgr checkout.CheckoutManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if userID, ok := mw.UserIDFrom(c); ok {
			req.UserID = &userID
		}

		res, err := mgr.CreateSession(c.Request.Context(), &req)
		if err != nil {
			if errors.Is(err, pricing.ErrInvalidPlan) || errors.Is(err, pricing.ErrInvalidBillingCycle) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type confirmCheckoutBody struct {
	Payment types.PaymentResult `json:"payment"`
}

// @Summary      Confirm Checkout
// @Description  Settles a pending checkout session against the external payment outcome.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        id path string true "Checkout session id"
// @Param        request body handlers.confirmCheckoutBody true "External payment result"
// @Success      200  {object}  handlers.RespConfirmCheckoutSession
// @Router       /api/v1/checkout/sessions/{id}/confirm [post]
func ApiConfirmCheckoutSession(mgr checkout.CheckoutManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body confirmCheckoutBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		req := &checkout.ConfirmSessionRequest{SessionID: c.Param("id"), Payment: body.Payment}
		res, err := mgr.ConfirmSession(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrSessionNotFound):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "checkout session not found"))
			case errors.Is(err, checkout.ErrAlreadyProcessed):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "session already processed, fetch its outcome instead of retrying"))
			case errors.Is(err, checkout.ErrSessionExpired):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "session expired, please restart checkout"))
			case errors.Is(err, checkout.ErrPaymentFailed):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "payment failed, please try again"))
			default:
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			}
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterCheckoutRoutes(r gin.IRouter, mgr checkout.CheckoutManager) {
	r.POST("/checkout/sessions", ApiCreateCheckoutSession(mgr))
	r.POST("/checkout/sessions/:id/confirm", ApiConfirmCheckoutSession(mgr))
}
