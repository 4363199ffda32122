package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/api/server"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/checkout"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/pricing"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/reminder"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/app/service/subscription"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/platform/db"
	"github.com/ntdung7899/subscription-tracker-sub000/internal/platform/mail"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
	"github.com/ntdung7899/subscription-tracker-sub000/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	mail.Module,
	server.Module,
	pricing.Module,
	subscription.Module,
	checkout.Module,
	reminder.Module,
)
