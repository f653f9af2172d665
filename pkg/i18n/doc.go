// Package i18n holds the UI translations of the portfolio.
//
// Translations are loaded once at construction into a flat map and never
// change afterwards, so an *I18n is safe for concurrent use. Keys are
// addressed by language, namespace and a dotted path:
//
//	inst, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithLanguages("en", "my"),
//		i18n.WithYAMLDir(localesFS),
//	)
//	inst.T("my", "ui", "nav.about")
//
// Lookups fall back from a regional tag to its base language and then to the
// default language. A key missing everywhere is returned as is.
//
// The visitor's language is negotiated from the Accept-Language header with
// golang.org/x/text/language; see Matcher.
package i18n
