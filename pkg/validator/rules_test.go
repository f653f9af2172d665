package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/pkg/validator"
)

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  validator.Rule
		valid bool
	}{
		{"required with value", validator.RequiredString("name", "Al"), true},
		{"required empty", validator.RequiredString("name", ""), false},
		{"required whitespace", validator.RequiredString("name", "   "), false},
		{"min length met", validator.MinLenString("name", "Al", 2), true},
		{"min length short", validator.MinLenString("name", "A", 2), false},
		{"min length counts runes", validator.MinLenString("name", "ဇော်", 4), true},
		{"max length met", validator.MaxLenString("message", "hello", 5), true},
		{"max length exceeded", validator.MaxLenString("message", "hello!", 5), false},
		{"exact length", validator.LenString("code", "1234", 4), true},
		{"exact length mismatch", validator.LenString("code", "123", 4), false},
		{"email valid", validator.Email("email", "al@x.com"), true},
		{"email with subdomain", validator.Email("email", "first.last@mail.example.org"), true},
		{"email missing at", validator.Email("email", "al.x.com"), false},
		{"email missing domain", validator.Email("email", "al@"), false},
		{"email empty", validator.Email("email", ""), false},
		{"range inside", validator.RangeInt("level", 95, 0, 100), true},
		{"range bounds", validator.RangeInt("level", 100, 0, 100), true},
		{"range above", validator.RangeInt("level", 101, 0, 100), false},
		{"range below", validator.RangeInt("level", -1, 0, 100), false},
		{"url absolute", validator.URL("url", "https://github.com/moethet"), true},
		{"url empty", validator.URL("url", ""), true},
		{"url relative", validator.URL("url", "github.com"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(tt.rule)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, validator.IsValidationError(err))
		})
	}
}

func TestTranslationKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule           validator.Rule
		expectedKey    string
		expectedValues map[string]any
	}{
		{validator.RequiredString("email", ""), validator.KeyRequired, map[string]any{"field": "email"}},
		{validator.MinLenString("name", "A", 2), validator.KeyMinLength, map[string]any{"field": "name", "min": 2}},
		{validator.MaxLenString("message", "x", 1000), validator.KeyMaxLength, map[string]any{"field": "message", "max": 1000}},
		{validator.LenString("code", "1", 6), validator.KeyExactLength, map[string]any{"field": "code", "length": 6}},
		{validator.Email("email", "bad"), validator.KeyEmail, map[string]any{"field": "email"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expectedKey, tt.rule.Error.TranslationKey)
		assert.Equal(t, tt.expectedValues, tt.rule.Error.TranslationValues)
	}
}

func TestRule_WithKey(t *testing.T) {
	t.Parallel()

	r := validator.MinLenString("name", "A", 2).WithKey("contact.validation.name_min_length")

	assert.Equal(t, "contact.validation.name_min_length", r.Error.TranslationKey)
	assert.Equal(t, 2, r.Error.TranslationValues["min"])

	r = r.WithMessage("name is too short")
	assert.Equal(t, "name is too short", r.Error.Message)
	assert.Equal(t, "contact.validation.name_min_length", r.Error.TranslationKey)
}

func TestFirstOf(t *testing.T) {
	t.Parallel()

	t.Run("reports only the first failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.FirstOf(
			validator.RequiredString("name", ""),
			validator.MinLenString("name", "", 2),
		))

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 1)
		assert.Equal(t, validator.KeyRequired, ve[0].TranslationKey)
	})

	t.Run("falls through to later rules", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.FirstOf(
			validator.RequiredString("name", "A"),
			validator.MinLenString("name", "A", 2),
		))

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 1)
		assert.Equal(t, validator.KeyMinLength, ve[0].TranslationKey)
	})

	t.Run("passes when every rule passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.FirstOf(
			validator.RequiredString("name", "Al"),
			validator.MinLenString("name", "Al", 2),
		)))
	})

	t.Run("independent fields are all reported", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.FirstOf(validator.RequiredString("name", ""), validator.MinLenString("name", "", 2)),
			validator.FirstOf(validator.RequiredString("email", "al@x.com"), validator.Email("email", "al@x.com")),
			validator.FirstOf(validator.RequiredString("message", "short"), validator.MinLenString("message", "short", 10)),
		)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 2)
		assert.True(t, ve.Has("name"))
		assert.True(t, ve.Has("message"))
		assert.False(t, ve.Has("email"))
	})
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	assert.False(t, validator.IsValidationError(errors.New("boom")))

	wrapped := fmt.Errorf("bind: %w", validator.Apply(validator.RequiredString("name", "")))
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Len(t, validator.ExtractValidationErrors(wrapped), 1)
}
