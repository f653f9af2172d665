package contact

import (
	"errors"

	"github.com/moethet/portfolio/pkg/validator"
)

var (
	ErrSubmitInProgress = errors.New("contact: submit already in progress")
	ErrClosed           = errors.New("contact: workflow closed")
	ErrUnknownStatus    = errors.New("contact: unknown status")
	ErrInvalidRules     = errors.New("contact: invalid validation rules")
	ErrNoRecipient      = errors.New("contact: recipient is required")
	ErrNoVisitor        = errors.New("contact: visitor id is required")
)

// ValidationError is returned by Submit when the input breaks a field rule.
// The workflow state is left untouched.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return "contact: " + e.Errors.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Errors
}

// DispatchError wraps a failed delivery. Its detail is for logs only.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return "contact: dispatch failed: " + e.Err.Error()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// IsDispatchError reports whether err is a delivery failure.
func IsDispatchError(err error) bool {
	var de *DispatchError
	return errors.As(err, &de)
}
