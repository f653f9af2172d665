package middlewares

import (
	"errors"
	"fmt"
)

// PanicError carries a value recovered by Recover to the error handler.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error, so that
// panic(err) can still be matched with errors.Is.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// AsPanicError returns the *PanicError in err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsPanicError reports whether err came from a recovered panic.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}
