package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// I18n stores translations keyed by "lang:namespace:key.path".
type I18n struct {
	translations      map[string]string
	missingKeyHandler func(lang, namespace, key string)
	defaultLang       string
	languages         []string
}

// Option configures an I18n during construction.
type Option func(*I18n) error

// New creates an I18n from opts.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if len(i.languages) == 0 {
		i.languages = []string{i.defaultLang}
	}
	if i.languages[0] != i.defaultLang {
		i.languages = append([]string{i.defaultLang}, slices.DeleteFunc(i.languages, func(l string) bool {
			return l == i.defaultLang
		})...)
	}

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages. The default language always
// comes first; the order of the rest is kept.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		seen := make(map[string]bool, len(langs))
		i.languages = i.languages[:0]
		for _, l := range langs {
			if l == "" || seen[l] {
				continue
			}
			seen[l] = true
			i.languages = append(i.languages, l)
		}
		return nil
	}
}

// WithTranslations adds a nested translation map for one language and
// namespace.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler registers fn to be called when a key is missing in
// every fallback language.
func WithMissingKeyHandler(fn func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = fn
		return nil
	}
}

// T returns the translation of key with placeholders replaced.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if s, ok := i.lookup(lang, namespace, key); ok {
		return replaceMerged(s, placeholders...)
	}
	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Has reports whether key resolves in lang, fallbacks included.
func (i *I18n) Has(lang, namespace, key string) bool {
	_, ok := i.lookup(lang, namespace, key)
	return ok
}

// Keys returns the sorted keys defined for lang in namespace, without
// fallbacks. check-content uses it to compare catalogs.
func (i *I18n) Keys(lang, namespace string) []string {
	prefix := lang + ":" + namespace + ":"
	var keys []string
	for k := range i.translations {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			keys = append(keys, rest)
		}
	}
	slices.Sort(keys)
	return keys
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Supports reports whether lang is one of the configured languages.
func (i *I18n) Supports(lang string) bool {
	return slices.Contains(i.languages, lang)
}

func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	if s, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return s, true
	}
	base := baseLanguage(lang)
	if base != lang {
		if s, ok := i.translations[buildKey(base, namespace, key)]; ok {
			return s, true
		}
	}
	if base != i.defaultLang {
		if s, ok := i.translations[buildKey(i.defaultLang, namespace, key)]; ok {
			return s, true
		}
	}
	return "", false
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flatten(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[full] = v
		case map[string]any:
			maps.Copy(result, flatten(v, full))
		case map[string]string:
			for sub, s := range v {
				result[full+"."+sub] = s
			}
		default:
			result[full] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func replaceMerged(template string, placeholders ...M) string {
	switch len(placeholders) {
	case 0:
		return template
	case 1:
		return ReplacePlaceholders(template, placeholders[0])
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}

// baseLanguage strips the region: "en-US" becomes "en".
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
