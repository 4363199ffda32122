package handlers

import (
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/checkout"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/reminder"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespCreateCheckoutSession wraps CreateSessionResponse in the standard envelope.
type RespCreateCheckoutSession struct {
	Code    response.APIResponseCode       `json:"code"`
	Message string                         `json:"message"`
	Data    checkout.CreateSessionResponse `json:"data"`
}

// RespConfirmCheckoutSession wraps ConfirmSessionResponse in the standard envelope.
type RespConfirmCheckoutSession struct {
	Code    response.APIResponseCode        `json:"code"`
	Message string                          `json:"message"`
	Data    checkout.ConfirmSessionResponse `json:"data"`
}

// RespListCheckoutSessions wraps ListCheckoutSessionsResponse in the standard envelope.
type RespListCheckoutSessions struct {
	Code    response.APIResponseCode     `json:"code"`
	Message string                       `json:"message"`
	Data    ListCheckoutSessionsResponse `json:"data"`
}

// RespListSubscriptions wraps the user's subscription list in the standard envelope.
type RespListSubscriptions struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []*SubscriptionItem      `json:"data"`
}

// RespListPlans wraps the plan catalog in the standard envelope.
type RespListPlans struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []*PlanItem              `json:"data"`
}

// RespReminderRun wraps the reminder sweep result in the standard envelope.
type RespReminderRun struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    reminder.RunResult       `json:"data"`
}
