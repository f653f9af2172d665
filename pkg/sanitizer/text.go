package sanitizer

import (
	"strings"
	"unicode"
)

// NormalizeNewlines converts CRLF and CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// StripControl removes control characters except newlines and tabs.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Email trims an address and lowercases its domain. The local part is
// case-sensitive and kept as typed.
func Email(s string) string {
	s = strings.TrimSpace(s)
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return s
	}
	return s[:at+1] + strings.ToLower(s[at+1:])
}

// SingleLine prepares short free text such as a person's name. Line breaks
// and tabs become spaces and other control characters are dropped; the text
// itself is kept as typed.
func SingleLine(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s))
}

// MultiLine prepares long free text such as a message body. Line endings
// become LF and control characters other than LF and tab are dropped.
func MultiLine(s string) string {
	return strings.TrimSpace(StripControl(NormalizeNewlines(s)))
}
