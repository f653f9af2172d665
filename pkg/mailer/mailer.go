package mailer

import (
	"context"
	"errors"
)

// Mailer renders templates and sends them through a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes one templated email.
type SendParams struct {
	Data     any
	Headers  map[string]string
	Tags     Tags
	To       string
	Template string
	Subject  string // overrides the template subject
	Layout   string // overrides the default layout
	From     string
	ReplyTo  string
}

// Send renders params.Template and delivers it.
// Subject resolution: params.Subject, then template frontmatter, then
// Config.FallbackSubject.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	res, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject = res.Subject
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	email := &Email{
		To:      []string{params.To},
		Subject: subject,
		HTML:    res.HTML,
		Text:    res.Text,
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Headers: params.Headers,
		Tags:    params.Tags,
	}
	if err := email.Validate(); err != nil {
		return err
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
