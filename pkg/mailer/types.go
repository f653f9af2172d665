package mailer

import (
	"context"
	"fmt"
	"strings"
)

// Sender delivers a fully prepared Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Tags are provider-side labels used for filtering delivery logs.
type Tags map[string]string

// Email is a message ready for delivery.
type Email struct {
	Headers map[string]string
	Tags    Tags
	Subject string
	HTML    string
	Text    string
	From    string
	ReplyTo string
	To      []string
}

// Validate reports missing required parts.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case strings.TrimSpace(e.Subject) == "":
		return ErrNoSubject
	case e.HTML == "" && e.Text == "":
		return ErrNoContent
	}
	return nil
}

// Recipient formats a name and address as "Name <email>". Characters that
// would break the header are dropped from the name.
func Recipient(name, email string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\r', '\n':
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return email
	}
	return fmt.Sprintf("%q <%s>", name, email)
}
