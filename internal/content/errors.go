package content

import "errors"

var (
	ErrInvalidContent = errors.New("content: invalid")
	ErrNotFound       = errors.New("content: language not found")
)
