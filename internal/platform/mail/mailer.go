package mail

import (
	"go.uber.org/fx"
	"gopkg.in/gomail.v2"

	"github.com/ntdung7899/subscription-tracker-sub000/pkg/config"
)

// Mailer sends a single message. Delivery guarantees are the SMTP relay's
// problem, not part of the core contract.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	return &SMTPMailer{cfg: cfg.SMTP, dialer: dialer}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromAddress)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

var Module = fx.Options(
	fx.Provide(NewSMTPMailer),
)
