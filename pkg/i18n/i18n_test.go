package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/pkg/i18n"
)

var localesFS = fstest.MapFS{
	"en/ui.yaml": {Data: []byte(`
nav:
  about: About
  contact: Contact
contact:
  min: "At least {{min}} characters"
only_en: English only
`)},
	"my/ui.yml": {Data: []byte(`
nav:
  about: ကျွန်ုပ်အကြောင်း
`)},
	"README.md": {Data: []byte("ignored")},
}

func newI18n(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()
	inst, err := i18n.New(append([]i18n.Option{
		i18n.WithDefaultLanguage("en"),
		i18n.WithLanguages("my", "en"),
		i18n.WithYAMLDir(localesFS),
	}, opts...)...)
	require.NoError(t, err)
	return inst
}

func TestI18n_T(t *testing.T) {
	t.Parallel()
	inst := newI18n(t)

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{name: "exact", lang: "en", key: "nav.about", want: "About"},
		{name: "other language", lang: "my", key: "nav.about", want: "ကျွန်ုပ်အကြောင်း"},
		{name: "falls back to default", lang: "my", key: "only_en", want: "English only"},
		{name: "regional tag uses base", lang: "en-GB", key: "nav.contact", want: "Contact"},
		{name: "missing returns key", lang: "en", key: "nope", want: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inst.T(tt.lang, "ui", tt.key))
		})
	}
}

func TestI18n_Placeholders(t *testing.T) {
	t.Parallel()
	inst := newI18n(t)

	assert.Equal(t, "At least 10 characters", inst.T("en", "ui", "contact.min", i18n.M{"min": 10}))

	tr := i18n.NewTranslator(inst, "my", "ui")
	assert.Equal(t, "At least 2 characters", tr.TranslateMessage("contact.min", map[string]any{"min": 2}))
}

func TestI18n_Languages(t *testing.T) {
	t.Parallel()
	inst := newI18n(t)

	assert.Equal(t, []string{"en", "my"}, inst.Languages())
	assert.True(t, inst.Supports("my"))
	assert.False(t, inst.Supports("fr"))
	assert.Equal(t, []string{"nav.about"}, inst.Keys("my", "ui"))
}

func TestI18n_MissingKeyHandler(t *testing.T) {
	t.Parallel()

	var missing []string
	inst := newI18n(t, i18n.WithMissingKeyHandler(func(lang, ns, key string) {
		missing = append(missing, lang+":"+ns+":"+key)
	}))

	inst.T("my", "ui", "ghost")
	assert.Equal(t, []string{"my:ui:ghost"}, missing)
}

func TestI18n_Errors(t *testing.T) {
	t.Parallel()

	_, err := i18n.New(i18n.WithDefaultLanguage(""))
	require.ErrorIs(t, err, i18n.ErrEmptyLanguage)

	_, err = i18n.New(i18n.WithTranslations("en", "", map[string]any{"a": "b"}))
	require.ErrorIs(t, err, i18n.ErrEmptyNamespace)

	_, err = i18n.New(i18n.WithYAMLDir(fstest.MapFS{"ui.yaml": {Data: []byte("a: b")}}))
	require.ErrorIs(t, err, i18n.ErrInvalidFile)

	_, err = i18n.New(i18n.WithYAMLDir(fstest.MapFS{"en/ui.yaml": {Data: []byte("a: [")}}))
	require.ErrorIs(t, err, i18n.ErrInvalidFile)
}

func TestTranslator_DefaultLanguage(t *testing.T) {
	t.Parallel()
	inst := newI18n(t)

	tr := i18n.NewTranslator(inst, "", "ui")
	assert.Equal(t, "en", tr.Language())
	assert.Equal(t, "ui", tr.Namespace())
	assert.Equal(t, "About", tr.T("nav.about"))

	assert.Panics(t, func() { i18n.NewTranslator(nil, "en", "ui") })
}

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hi {{name}}", i18n.ReplacePlaceholders("Hi {{name}}", nil))
	assert.Equal(t, "Hi Al, {{x}}", i18n.ReplacePlaceholders("Hi {{name}}, {{x}}", i18n.M{"name": "Al"}))
}
