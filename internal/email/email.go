// Package email sends plain-text mail. Delivery is best effort; callers
// decide what a failure means (checkout refuses to clear the cart on one).
package email

import (
	"context"

	"github.com/rsnteam/telemart-golang/internal/logger"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes the message to the log instead of sending it. Used when
// no SMTP host is configured, so the flow can be exercised without an
// account.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	logger.Log.Infoln("====================================================")
	logger.Log.Infof("--- NEW EMAIL (LOG ONLY) ---")
	logger.Log.Infof("To: %s", to)
	logger.Log.Infof("Subject: %s", subject)
	logger.Log.Infoln("--- Body ---")
	logger.Log.Infoln(body)
	logger.Log.Infoln("====================================================")

	return nil
}
