// Package validator provides rule-based validation with translatable errors.
//
// Rules are plain values built by constructors such as RequiredString or
// MinLenString and evaluated together by Apply:
//
//	err := validator.Apply(
//		validator.RequiredString("name", in.Name),
//		validator.MinLenString("name", in.Name, 2),
//		validator.Email("email", in.Email),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		errs.Translate(translator.TranslateMessage)
//	}
//
// Every error carries a translation key and the values for its placeholders,
// so messages can be rendered in the visitor's language after validation.
package validator
