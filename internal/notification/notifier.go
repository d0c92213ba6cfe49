// Package notification delivers participant emails for ticket activity.
// Delivery is best-effort: callers record failures but never roll back the
// write that triggered them.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/ticketreport/backend/internal/config"
)

// Notifier sends a ticket-message notification to one recipient.
type Notifier interface {
	NotifyTicketMessage(ctx context.Context, recipientEmail, ticketTitle, messageContent, senderName string) error
}

// SMTPNotifier delivers notifications over SMTP.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPNotifier builds a notifier from SMTP settings.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *SMTPNotifier) NotifyTicketMessage(_ context.Context, recipientEmail, ticketTitle, messageContent, senderName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipientEmail)
	m.SetHeader("Subject", fmt.Sprintf("New message on ticket: %s", ticketTitle))
	m.SetBody("text/plain", fmt.Sprintf("%s added a message:\n\n%s", senderName, messageContent))
	return n.dialer.DialAndSend(m)
}

// LogNotifier logs notifications instead of sending them. Used when SMTP is
// not configured (development and tests).
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds the log-only notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyTicketMessage(_ context.Context, recipientEmail, ticketTitle, messageContent, senderName string) error {
	n.logger.Info("ticket message notification",
		zap.String("to", recipientEmail),
		zap.String("ticket_title", ticketTitle),
		zap.String("sender", senderName),
		zap.Int("content_length", len(messageContent)),
	)
	return nil
}
