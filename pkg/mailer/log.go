package mailer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/moethet/portfolio/pkg/sanitizer"
)

// LogSender writes emails to a logger instead of delivering them.
// Useful in development and when no provider is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger uses slog.Default.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the email and always succeeds. An email without a text part
// is logged as the text content of its HTML.
func (s *LogSender) Send(ctx context.Context, email *Email) error {
	text := email.Text
	if text == "" {
		text = strings.TrimSpace(sanitizer.StripTags(email.HTML))
	}
	s.logger.InfoContext(ctx, "email not delivered: no provider configured",
		slog.Any("to", email.To),
		slog.String("reply_to", email.ReplyTo),
		slog.String("subject", email.Subject),
		slog.String("text", text),
	)
	return nil
}

var _ Sender = (*LogSender)(nil)
