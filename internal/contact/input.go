package contact

import (
	"fmt"

	"github.com/moethet/portfolio/pkg/sanitizer"
	"github.com/moethet/portfolio/pkg/validator"
)

// Form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldMessage}

// Translation keys for field errors.
const (
	KeyNameRequired     = "contact.validation.name_required"
	KeyNameMinLength    = "contact.validation.name_min_length"
	KeyNameMaxLength    = "contact.validation.name_max_length"
	KeyEmailRequired    = "contact.validation.email_required"
	KeyEmailInvalid     = "contact.validation.email_invalid"
	KeyMessageRequired  = "contact.validation.message_required"
	KeyMessageMinLength = "contact.validation.message_min_length"
	KeyMessageMaxLength = "contact.validation.message_max_length"
)

// Input is what the visitor typed into the contact form.
type Input struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

// Normalize trims the fields and drops control characters. The text is
// otherwise kept as typed; escaping happens where it is rendered.
func (in Input) Normalize() Input {
	return Input{
		Name:    sanitizer.SingleLine(in.Name),
		Email:   sanitizer.Email(in.Email),
		Message: sanitizer.MultiLine(in.Message),
	}
}

// IsZero reports whether every field is empty.
func (in Input) IsZero() bool {
	return in == Input{}
}

// Value returns the field by name.
func (in Input) Value(field string) string {
	switch field {
	case FieldName:
		return in.Name
	case FieldEmail:
		return in.Email
	case FieldMessage:
		return in.Message
	}
	return ""
}

// Rules holds the configurable field limits.
type Rules struct {
	NameMinLength    int `env:"NAME_MIN" envDefault:"2"`
	NameMaxLength    int `env:"NAME_MAX" envDefault:"100"`
	MessageMinLength int `env:"MESSAGE_MIN" envDefault:"10"`
	MessageMaxLength int `env:"MESSAGE_MAX" envDefault:"1000"`
}

// DefaultRules returns the limits used when none are configured.
func DefaultRules() Rules {
	return Rules{
		NameMinLength:    2,
		NameMaxLength:    100,
		MessageMinLength: 10,
		MessageMaxLength: 1000,
	}
}

// Check reports inconsistent limits.
func (r Rules) Check() error {
	if r.NameMinLength < 1 || r.NameMaxLength < r.NameMinLength {
		return fmt.Errorf("%w: name length %d..%d", ErrInvalidRules, r.NameMinLength, r.NameMaxLength)
	}
	if r.MessageMinLength < 1 || r.MessageMaxLength < r.MessageMinLength {
		return fmt.Errorf("%w: message length %d..%d", ErrInvalidRules, r.MessageMinLength, r.MessageMaxLength)
	}
	return nil
}

func (r Rules) fieldRule(field string, in Input) validator.Rule {
	switch field {
	case FieldName:
		return validator.FirstOf(
			validator.RequiredString(FieldName, in.Name).WithKey(KeyNameRequired),
			validator.MinLenString(FieldName, in.Name, r.NameMinLength).WithKey(KeyNameMinLength),
			validator.MaxLenString(FieldName, in.Name, r.NameMaxLength).WithKey(KeyNameMaxLength),
		)
	case FieldEmail:
		return validator.FirstOf(
			validator.RequiredString(FieldEmail, in.Email).WithKey(KeyEmailRequired),
			validator.Email(FieldEmail, in.Email).WithKey(KeyEmailInvalid),
		)
	case FieldMessage:
		return validator.FirstOf(
			validator.RequiredString(FieldMessage, in.Message).WithKey(KeyMessageRequired),
			validator.MinLenString(FieldMessage, in.Message, r.MessageMinLength).WithKey(KeyMessageMinLength),
			validator.MaxLenString(FieldMessage, in.Message, r.MessageMaxLength).WithKey(KeyMessageMaxLength),
		)
	}
	return validator.Rule{}
}

// Validate checks every field and returns at most one error per field.
// Fields fail independently. A nil result means the input may be submitted.
func Validate(in Input, rules Rules) validator.ValidationErrors {
	all := make([]validator.Rule, 0, len(Fields))
	for _, f := range Fields {
		all = append(all, rules.fieldRule(f, in))
	}
	return validator.ExtractValidationErrors(validator.Apply(all...))
}

// ValidateField checks a single field, as the form does when a field loses
// focus or changes after it was touched.
func ValidateField(field string, in Input, rules Rules) validator.ValidationErrors {
	return validator.ExtractValidationErrors(validator.Apply(rules.fieldRule(field, in)))
}
