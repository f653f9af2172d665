package middlewares

import (
	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/pkg/i18n"
	"github.com/moethet/portfolio/pkg/logger"
)

// LanguageCookie holds the language the visitor picked explicitly.
const LanguageCookie = "lang"

type I18nConfig struct {
	Namespace    string
	Extractor    web.Extractor
	extractorSet bool
}

type I18nOption func(*I18nConfig)

// WithI18nNamespace sets the namespace of the request translator.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Namespace = ns
	}
}

// WithI18nExtractor replaces the cookie, then Accept-Language chain.
func WithI18nExtractor(ext web.Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// FromAcceptLanguage negotiates the Accept-Language header against the
// supported languages.
func FromAcceptLanguage(m *i18n.Matcher) web.ExtractorSource {
	return func(c web.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return m.Match(header), true
	}
}

// I18n resolves the visitor's language and stores a Translator and the
// language code in the context. Values that are not a supported language
// are ignored.
func I18n(svc *i18n.I18n, opts ...I18nOption) web.Middleware {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	matcher := i18n.NewMatcher(svc.Languages()...)
	if !cfg.extractorSet {
		cfg.Extractor = web.NewExtractor(
			web.FromCookie(LanguageCookie),
			FromAcceptLanguage(matcher),
		)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			lang := svc.DefaultLanguage()
			if raw, ok := cfg.Extractor.Extract(c); ok {
				if norm, err := matcher.Normalize(raw); err == nil {
					lang = norm
				}
			}

			c.Set(web.TranslatorKey{}, i18n.NewTranslator(svc, lang, cfg.Namespace))
			c.Set(web.LanguageKey{}, lang)

			return next(c)
		}
	}
}

// GetTranslator returns the request translator or nil.
func GetTranslator(c web.Context) *i18n.Translator {
	return web.ContextValue[*i18n.Translator](c, web.TranslatorKey{})
}

// GetLanguage returns the resolved language or "".
func GetLanguage(c web.Context) string {
	return web.ContextValue[string](c, web.LanguageKey{})
}

// LanguageExtractor adds lang to log entries.
func LanguageExtractor() logger.ContextExtractor {
	return logger.StringExtractor(web.LanguageKey{}, "lang")
}
