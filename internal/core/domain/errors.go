package domain

import (
	"errors"
	"strings"
)

// Domain errors. ErrAccessDenied is terminal: once access fails, the
// field rules are never evaluated.
var (
	ErrAccessDenied      = errors.New("Access denied")
	ErrUserNotFound      = errors.New("user not found")
	ErrTricountNotFound  = errors.New("tricount not found")
	ErrOperationNotFound = errors.New("operation not found")
)

// ValidationError carries the complete list of rule violations for one
// submission. Callers display all messages at once, so rules never stop
// at the first failure.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError wraps a non-empty message list; it returns nil when
// every rule passed so call sites can return the result directly.
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
