package mailer

import (
	"context"
	"log/slog"

	"meetapp.app/api/common/logger"
)

// LogSender writes messages to the log instead of delivering them. Used in
// development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(l *slog.Logger) *LogSender {
	if l == nil {
		l = slog.Default()
	}
	return &LogSender{logger: l}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email captured",
		"provider", "log",
		"to", logger.RedactEmail(msg.To),
		"subject", msg.Subject,
		"body", msg.Text)
	return nil
}
