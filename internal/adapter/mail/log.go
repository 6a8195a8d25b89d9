package mail

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// LogSender writes outgoing mail to the log instead of delivering it.
// Used when no SMTP host is configured.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log.With("component", "mail")}
}

// Send logs msg and never fails.
func (s *LogSender) Send(ctx context.Context, msg domain.Email) error {
	s.log.InfoContext(ctx, "email not sent (smtp disabled)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("body_bytes", len(msg.Body)),
	)
	return nil
}
