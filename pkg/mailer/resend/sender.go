// Package resend delivers mailer emails through the Resend API.
package resend

import (
	"context"
	"fmt"
	"sort"

	"github.com/resend/resend-go/v3"

	"github.com/moethet/portfolio/pkg/mailer"
)

// Sender implements mailer.Sender.
type Sender struct {
	client *resend.Client
	from   string
}

// New creates a Sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		from:   mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if _, err := s.client.Emails.SendWithContext(ctx, s.request(email)); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) request(email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = s.from
	}
	return &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
		Tags:    convertTags(email.Tags),
	}
}

// convertTags returns tags sorted by name so requests are deterministic.
func convertTags(tags mailer.Tags) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		out = append(out, resend.Tag{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var _ mailer.Sender = (*Sender)(nil)
