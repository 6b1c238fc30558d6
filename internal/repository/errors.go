package repository

import (
	"errors"
	"fmt"
)

// NotFoundError is an error type for when a resource is not found.
type NotFoundError struct {
	message string
}

// NewNotFoundError builds a NotFoundError for the named resource.
func NewNotFoundError(format string, args ...interface{}) NotFoundError {
	return NotFoundError{message: fmt.Sprintf(format, args...)}
}

// Error returns the error message.
func (e NotFoundError) Error() string {
	return e.message
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
