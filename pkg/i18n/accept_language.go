package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header handed to the parser.
const maxAcceptLanguageLength = 4096

// Matcher negotiates a supported language from client preferences.
type Matcher struct {
	matcher   language.Matcher
	supported []string
}

// NewMatcher builds a Matcher over supported, the first entry being the
// fallback.
func NewMatcher(supported ...string) *Matcher {
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}
	return &Matcher{matcher: language.NewMatcher(tags), supported: supported}
}

// Match returns the best supported language for an Accept-Language header.
// An empty or unparsable header yields the fallback.
func (m *Matcher) Match(header string) string {
	if len(m.supported) == 0 {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return m.supported[0]
	}

	_, idx, conf := m.matcher.Match(prefs...)
	if conf == language.No {
		return m.supported[0]
	}
	return m.supported[idx]
}

// Normalize returns the supported language equal to code, ignoring case
// and region ("MY-mm" matches "my").
func (m *Matcher) Normalize(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", ErrUnknownLanguage
	}
	base, _ := tag.Base()
	for _, s := range m.supported {
		if sb, _ := language.Make(s).Base(); sb == base {
			return s, nil
		}
	}
	return "", ErrUnknownLanguage
}
