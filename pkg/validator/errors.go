package validator

import (
	"errors"
	"strings"
)

// ValidationError describes a single failed rule.
type ValidationError struct {
	TranslationValues map[string]any
	Field             string
	Message           string
	TranslationKey    string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors is a list of failed rules in evaluation order.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsEmpty reports whether there are no errors.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Has reports whether at least one error belongs to field.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Get returns every message reported for field.
func (e ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, ve := range e {
		if ve.Field == field {
			msgs = append(msgs, ve.Message)
		}
	}
	return msgs
}

// First returns the first message reported for field, or an empty string.
func (e ValidationErrors) First(field string) string {
	for _, ve := range e {
		if ve.Field == field {
			return ve.Message
		}
	}
	return ""
}

// Fields maps each failing field to its first message.
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, ve := range e {
		if _, ok := out[ve.Field]; !ok {
			out[ve.Field] = ve.Message
		}
	}
	return out
}

// Only returns the errors that belong to field.
func (e ValidationErrors) Only(field string) ValidationErrors {
	var out ValidationErrors
	for _, ve := range e {
		if ve.Field == field {
			out = append(out, ve)
		}
	}
	return out
}

// Translate rewrites every message that has a translation key using fn.
// A nil fn leaves the messages untouched.
func (e ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}

// IsValidationError reports whether err is or wraps ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
