package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrMissingIdentity is returned when the caller carries no user identifier.
	ErrMissingIdentity = errors.New("missing user identity")
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited is returned when the caller must wait before retrying.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrFixedDateEvent is returned when a fixed-date event would be rescheduled.
	ErrFixedDateEvent = errors.New("fixed-date event cannot be placed")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError carries the user-facing message for a missing record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// translateNotFound maps gorm's missing-row error onto a NotFoundError.
func translateNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(format, args...)
	}
	return err
}
