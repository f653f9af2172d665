package contact_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/pkg/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}

func TestMailDispatcher(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`<html><body>{{.Content}}</body></html>`)},
		contact.TemplateContactMessage: {Data: []byte(
			"---\nSubject: New message from {{.SenderName}}\n---\nFrom **{{.SenderName}}** ({{.SenderEmail}})\n\n{{quote .Body}}\n",
		)},
	}

	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return assert.ObjectsAreEqual([]string{"owner@example.com"}, e.To) &&
			e.Subject == "New message from Al" &&
			e.ReplyTo == `"Al" <al@x.com>` &&
			e.Tags["category"] == "contact"
	})).Return(nil).Once()

	m := mailer.New(sender, mailer.NewRenderer(fsys, mailer.RendererConfig{}), mailer.Config{DefaultLayout: "base.html"})
	d := contact.NewMailDispatcher(m)

	err := d.Dispatch(context.Background(), contact.Message{
		SenderName:  "Al",
		SenderEmail: "al@x.com",
		Body:        "Hi there, interested in working together",
		Recipient:   "owner@example.com",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}
