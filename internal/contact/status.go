package contact

import "fmt"

// Status is the observable state of a Workflow.
type Status uint8

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

var statusNames = [...]string{
	StatusIdle:       "idle",
	StatusSubmitting: "submitting",
	StatusSuccess:    "success",
	StatusError:      "error",
}

// String returns the lowercase status name.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus converts a status name back to a Status.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return StatusIdle, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// Busy reports whether a dispatch is in flight.
func (s Status) Busy() bool {
	return s == StatusSubmitting
}
