package contact

import (
	"context"

	"github.com/moethet/portfolio/pkg/mailer"
)

// Message is the payload handed to a Dispatcher.
type Message struct {
	SenderName  string
	SenderEmail string
	Body        string
	Recipient   string
}

// Dispatcher delivers a Message. Any error counts as a failed delivery;
// callers do not distinguish transient from permanent failures.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, msg Message) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// TemplateContactMessage is the mail template used for contact messages.
const TemplateContactMessage = "contact_message.md"

type templateMailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// MailDispatcher sends messages as templated emails. Replies go straight to
// the visitor.
type MailDispatcher struct {
	mailer   templateMailer
	template string
}

// NewMailDispatcher creates a MailDispatcher using TemplateContactMessage.
func NewMailDispatcher(m templateMailer) *MailDispatcher {
	return &MailDispatcher{mailer: m, template: TemplateContactMessage}
}

// Dispatch implements Dispatcher.
func (d *MailDispatcher) Dispatch(ctx context.Context, msg Message) error {
	return d.mailer.Send(ctx, mailer.SendParams{
		To:       msg.Recipient,
		Template: d.template,
		ReplyTo:  mailer.Recipient(msg.SenderName, msg.SenderEmail),
		Tags:     mailer.Tags{"category": "contact"},
		Data:     msg,
	})
}

var _ Dispatcher = (*MailDispatcher)(nil)
