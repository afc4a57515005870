package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")

	// ErrAlreadyResolved is an ErrInvalidState that callers can tell apart:
	// someone else already acted on the approval.
	ErrAlreadyResolved = fmt.Errorf("%w: approval already resolved", ErrInvalidState)
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError builds an ErrNotFound for the given entity and id.
func NotFoundError(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

// InvalidStateError builds an ErrInvalidState describing the offending state.
func InvalidStateError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
