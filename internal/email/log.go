package email

import (
	"context"
	"log/slog"
)

// LogSender accepts every message and writes it to the logger. Used in
// development when no relay is available.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs msg and reports success.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	s.logger.Info("email (log provider)",
		"id", msg.ID,
		"from", msg.From,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"body", msg.TextBody,
	)
	return nil
}

var _ Sender = (*LogSender)(nil)
