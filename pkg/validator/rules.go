package validator

import (
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

// Translation keys produced by the built-in rules.
const (
	KeyRequired    = "validation.required"
	KeyMinLength   = "validation.min_length"
	KeyMaxLength   = "validation.max_length"
	KeyExactLength = "validation.exact_length"
	KeyEmail       = "validation.email"
	KeyRange       = "validation.range"
	KeyURL         = "validation.url"
)

// Rule is a single check with the error it reports on failure.
type Rule struct {
	Check func() bool
	Error ValidationError
	chain []Rule
}

// WithKey returns a copy of r that reports key instead of its default
// translation key. Placeholder values are kept.
func (r Rule) WithKey(key string) Rule {
	r.Error.TranslationKey = key
	return r
}

// WithMessage returns a copy of r with a different fallback message.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

func newRule(field, msg, key string, values map[string]any, check func() bool) Rule {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// RequiredString fails when value is empty after trimming spaces.
func RequiredString(field, value string) Rule {
	return newRule(field, "is required", KeyRequired, nil, func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinLenString fails when value has fewer than n characters.
func MinLenString(field, value string, n int) Rule {
	return newRule(field, "is too short", KeyMinLength, map[string]any{"min": n}, func() bool {
		return utf8.RuneCountInString(value) >= n
	})
}

// MaxLenString fails when value has more than n characters.
func MaxLenString(field, value string, n int) Rule {
	return newRule(field, "is too long", KeyMaxLength, map[string]any{"max": n}, func() bool {
		return utf8.RuneCountInString(value) <= n
	})
}

// LenString fails unless value has exactly n characters.
func LenString(field, value string, n int) Rule {
	return newRule(field, "has invalid length", KeyExactLength, map[string]any{"length": n}, func() bool {
		return utf8.RuneCountInString(value) == n
	})
}

var shapes = playground.New()

// Email fails when value is not a syntactically valid email address.
func Email(field, value string) Rule {
	return newRule(field, "is not a valid email address", KeyEmail, nil, func() bool {
		return shapes.Var(value, "required,email") == nil
	})
}

// RangeInt fails when value is outside [lo, hi].
func RangeInt(field string, value, lo, hi int) Rule {
	return newRule(field, "is out of range", KeyRange, map[string]any{"min": lo, "max": hi}, func() bool {
		return value >= lo && value <= hi
	})
}

// URL fails when value is not an absolute URL. Empty values pass; combine
// with RequiredString when the URL is mandatory.
func URL(field, value string) Rule {
	return newRule(field, "is not a valid URL", KeyURL, nil, func() bool {
		return value == "" || shapes.Var(value, "url") == nil
	})
}
