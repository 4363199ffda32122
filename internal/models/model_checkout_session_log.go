package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/types"
)

// CheckoutSessionLog is an append-only record of every session status change,
// including creation. Before is nil for the creation entry.
type CheckoutSessionLog struct {
	ID         string                                  `gorm:"column:id;primary_key;type:uuid" json:"id"`
	SessionID  string                                  `gorm:"column:session_id;type:uuid;not null;index" json:"session_id"`
	FromStatus types.CheckoutSessionStatus             `gorm:"column:from_status;type:varchar(16)" json:"from_status"`
	ToStatus   types.CheckoutSessionStatus             `gorm:"column:to_status;type:varchar(16);not null" json:"to_status"`
	Reason     string                                  `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	Before     datatypes.JSONType[*CheckoutSession]    `gorm:"column:before;type:jsonb" json:"before"`
	After      datatypes.JSONType[*CheckoutSession]    `gorm:"column:after;type:jsonb" json:"after"`
	Extra      datatypes.JSONMap                       `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt  time.Time                               `json:"created_at"`
}

func (CheckoutSessionLog) TableName() string {
	return "checkout_session_log"
}
