package service

import (
	"errors"
	"fmt"
)

// ErrRecipeSearchFailed marks a failed upstream recipe search, as opposed to
// a search that simply found nothing.
var ErrRecipeSearchFailed = errors.New("recipe search failed")

// ValidationError reports unusable caller input.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...interface{}) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
