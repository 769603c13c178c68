package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/config"
	"github.com/talkincode/sheetshop/internal/session"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer notifies the shop owner of every submitted order.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	to       string
	currency string
}

// NewMailer returns nil when smtp is not configured.
func NewMailer(cfg config.SmtpConfig, currency string) *Mailer {
	if cfg.Host == "" || cfg.NotifyTo == "" {
		return nil
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     from,
		to:       cfg.NotifyTo,
		currency: currency,
	}
}

// Compose builds the notification for evt without sending it.
func (m *Mailer) Compose(evt session.SubmittedEvent) *gomail.Message {
	sub := evt.Submission
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("New order: %s x%d (%s%s)",
		sub.Draft.Product.Name, sub.Draft.Quantity, m.currency, sub.Total))
	msg.SetBody("text/plain", sub.Message+"\n\n"+sub.Link)
	return msg
}

func (m *Mailer) SendOrder(evt session.SubmittedEvent) error {
	if err := m.dialer.DialAndSend(m.Compose(evt)); err != nil {
		return errors.Wrap(err, "mail: send order notification")
	}
	zap.L().Info("order notification mailed",
		zap.String("namespace", "mail"),
		zap.String("to", m.to),
		zap.String("visitor", evt.VisitorID),
	)
	return nil
}
