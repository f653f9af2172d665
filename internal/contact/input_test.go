package contact_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/internal/contact"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	rules := contact.DefaultRules()
	valid := contact.Input{Name: "Al", Email: "al@x.com", Message: "Hi there, interested in working together"}

	tests := []struct {
		name   string
		mutate func(in *contact.Input)
		keys   map[string]string
	}{
		{
			name:   "valid input",
			mutate: func(*contact.Input) {},
		},
		{
			name: "empty name and short message",
			mutate: func(in *contact.Input) {
				in.Name = ""
				in.Message = "short"
			},
			keys: map[string]string{
				contact.FieldName:    contact.KeyNameRequired,
				contact.FieldMessage: contact.KeyMessageMinLength,
			},
		},
		{
			name:   "name below minimum",
			mutate: func(in *contact.Input) { in.Name = "A" },
			keys:   map[string]string{contact.FieldName: contact.KeyNameMinLength},
		},
		{
			name:   "name above maximum",
			mutate: func(in *contact.Input) { in.Name = strings.Repeat("a", 101) },
			keys:   map[string]string{contact.FieldName: contact.KeyNameMaxLength},
		},
		{
			name:   "email empty",
			mutate: func(in *contact.Input) { in.Email = "" },
			keys:   map[string]string{contact.FieldEmail: contact.KeyEmailRequired},
		},
		{
			name:   "email malformed",
			mutate: func(in *contact.Input) { in.Email = "al-at-x.com" },
			keys:   map[string]string{contact.FieldEmail: contact.KeyEmailInvalid},
		},
		{
			name:   "message empty",
			mutate: func(in *contact.Input) { in.Message = "" },
			keys:   map[string]string{contact.FieldMessage: contact.KeyMessageRequired},
		},
		{
			name:   "message at maximum",
			mutate: func(in *contact.Input) { in.Message = strings.Repeat("m", 1000) },
		},
		{
			name:   "message above maximum",
			mutate: func(in *contact.Input) { in.Message = strings.Repeat("m", 1001) },
			keys:   map[string]string{contact.FieldMessage: contact.KeyMessageMaxLength},
		},
		{
			name: "every field invalid",
			mutate: func(in *contact.Input) {
				*in = contact.Input{}
			},
			keys: map[string]string{
				contact.FieldName:    contact.KeyNameRequired,
				contact.FieldEmail:   contact.KeyEmailRequired,
				contact.FieldMessage: contact.KeyMessageRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.mutate(&in)

			errs := contact.Validate(in, rules)
			if len(tt.keys) == 0 {
				assert.Empty(t, errs)
				return
			}

			require.Len(t, errs, len(tt.keys), "one error per failing field")
			for _, e := range errs {
				assert.Equal(t, tt.keys[e.Field], e.TranslationKey, e.Field)
			}
		})
	}
}

func TestValidate_UsesConfiguredRules(t *testing.T) {
	t.Parallel()

	rules := contact.Rules{NameMinLength: 5, NameMaxLength: 10, MessageMinLength: 3, MessageMaxLength: 5}
	errs := contact.Validate(contact.Input{Name: "Alan", Email: "al@x.com", Message: "hey!!"}, rules)

	require.Len(t, errs, 1)
	assert.Equal(t, contact.KeyNameMinLength, errs[0].TranslationKey)
	assert.Equal(t, 5, errs[0].TranslationValues["min"])
}

func TestValidateField(t *testing.T) {
	t.Parallel()

	in := contact.Input{Name: "", Email: "bad", Message: "short"}
	rules := contact.DefaultRules()

	errs := contact.ValidateField(contact.FieldEmail, in, rules)
	require.Len(t, errs, 1)
	assert.Equal(t, contact.FieldEmail, errs[0].Field)
	assert.Equal(t, contact.KeyEmailInvalid, errs[0].TranslationKey)

	assert.Empty(t, contact.ValidateField("unknown", in, rules))
	assert.Empty(t, contact.ValidateField(contact.FieldName, contact.Input{Name: "Al"}, rules))
}

func TestRules_Check(t *testing.T) {
	t.Parallel()

	require.NoError(t, contact.DefaultRules().Check())
	require.ErrorIs(t, contact.Rules{NameMinLength: 0, NameMaxLength: 10, MessageMinLength: 1, MessageMaxLength: 2}.Check(), contact.ErrInvalidRules)
	require.ErrorIs(t, contact.Rules{NameMinLength: 2, NameMaxLength: 100, MessageMinLength: 10, MessageMaxLength: 5}.Check(), contact.ErrInvalidRules)
}

func TestInput_Normalize(t *testing.T) {
	t.Parallel()

	in := contact.Input{
		Name:    "  Al <b>Smith</b>\x00 ",
		Email:   " Al@X.COM ",
		Message: "  Hello\r\n<script>x()</script> &amp; there  ",
	}.Normalize()

	assert.Equal(t, "Al <b>Smith</b>", in.Name)
	assert.Equal(t, "Al@x.com", in.Email)
	assert.Equal(t, "Hello\n<script>x()</script> &amp; there", in.Message)
	assert.False(t, in.IsZero())
	assert.True(t, contact.Input{}.IsZero())
	assert.Equal(t, "Al@x.com", in.Value(contact.FieldEmail))
	assert.Empty(t, in.Value("other"))
}
