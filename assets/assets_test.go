package assets_test

import (
	"io/fs"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/assets"
	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/pkg/i18n"
	"github.com/moethet/portfolio/pkg/mailer"
	"github.com/moethet/portfolio/pkg/storage"
)

var languages = []string{"en", "my"}

func TestContentIsValid(t *testing.T) {
	t.Parallel()

	c, err := content.NewCatalog(assets.FS, languages...)
	require.NoError(t, err)
	require.Equal(t, len(languages), c.Len())

	en, my := c.Site("en"), c.Site("my")
	assert.Len(t, my.Projects, len(en.Projects))
	for i := range en.Projects {
		assert.Equal(t, en.Projects[i].Slug, my.Projects[i].Slug, "project slugs must match across languages")
	}
	for i := range en.Nav {
		assert.Equal(t, en.Nav[i].Anchor, my.Nav[i].Anchor)
	}
}

func TestTranslationsMatch(t *testing.T) {
	t.Parallel()

	locales, err := fs.Sub(assets.FS, assets.LocalesDir)
	require.NoError(t, err)

	svc, err := i18n.New(i18n.WithYAMLDir(locales), i18n.WithLanguages(languages...))
	require.NoError(t, err)

	en := svc.Keys("en", "ui")
	require.NotEmpty(t, en)
	assert.Equal(t, en, svc.Keys("my", "ui"))

	for _, key := range []string{
		contact.KeyNameRequired, contact.KeyNameMinLength, contact.KeyNameMaxLength,
		contact.KeyEmailRequired, contact.KeyEmailInvalid,
		contact.KeyMessageRequired, contact.KeyMessageMinLength, contact.KeyMessageMaxLength,
	} {
		assert.Contains(t, en, key)
	}

	got := svc.T("en", "ui", contact.KeyMessageMinLength, i18n.M{"min": 10})
	assert.Equal(t, "Message must be at least 10 characters", got)
}

func TestContactMailTemplate(t *testing.T) {
	t.Parallel()

	r := mailer.NewRenderer(assets.FS, mailer.RendererConfig{
		TemplateDir: assets.MailDir,
		LayoutDir:   path.Join(assets.MailDir, "layouts"),
	})
	require.NoError(t, r.Preload("base.html", contact.TemplateContactMessage))

	res, err := r.Render("base.html", contact.TemplateContactMessage, contact.Message{
		SenderName:  "Al",
		SenderEmail: "al@x.com",
		Body:        "Hello\n<b>hi</b>",
		Recipient:   "me@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "New message from Al", res.Subject)
	assert.Contains(t, res.HTML, "al@x.com")
	assert.Contains(t, res.HTML, "<blockquote>")
	assert.NotContains(t, res.HTML, "<b>hi</b>")
}

func TestContactMailTemplate_VisitorTextStaysInert(t *testing.T) {
	t.Parallel()

	r := mailer.NewRenderer(assets.FS, mailer.RendererConfig{
		TemplateDir: assets.MailDir,
		LayoutDir:   path.Join(assets.MailDir, "layouts"),
	})

	msg := contact.Message{
		SenderName:  "[Claim your prize](https://evil.example/login)",
		SenderEmail: "al@x.com",
		Body:        "hello ![x](https://tracker.example/p.png) there\n**bold** <https://evil.example> www.evil.example",
		Recipient:   "me@example.com",
	}
	res, err := r.Render("base.html", contact.TemplateContactMessage, msg)
	require.NoError(t, err)

	assert.NotContains(t, res.HTML, "<a href")
	assert.NotContains(t, res.HTML, "<img")
	assert.NotContains(t, res.HTML, "<strong>bold</strong>")
	assert.Contains(t, res.HTML, "[Claim your prize](https://evil.example/login)")

	assert.Equal(t, "New message from "+msg.SenderName, res.Subject)
	assert.Contains(t, res.Text, msg.SenderName)
	assert.Contains(t, res.Text, "> hello ![x](https://tracker.example/p.png) there")
	assert.NotContains(t, res.Text, `\`)
}

func TestBundledCV(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(assets.FS, path.Join(assets.StaticDir, assets.CVFile))
	require.NoError(t, err)
	assert.True(t, storage.IsMIME(data, "application/pdf"))
}
