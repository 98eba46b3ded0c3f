// Package mail sends transactional email.
package mail

import (
	"context"
	"log/slog"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of delivering them. It is
// used when no SMTP host is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) Send(ctx context.Context, msg Message) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "mail not sent (no SMTP host configured)",
		"to", msg.To, "subject", msg.Subject, "body", msg.HTML)
	return nil
}
