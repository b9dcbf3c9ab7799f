package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// ErrDuplicateSubmission is returned by stores when a timesheet with the
	// same contractor and idempotency key was inserted concurrently.
	ErrDuplicateSubmission = errors.New("duplicate submission")
)

var (
	ErrTimesheetNotFound = fmt.Errorf("timesheet %w", ErrNotFound)
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)
	ErrCannotDeleteSelf  = fmt.Errorf("cannot delete own account: %w", ErrPermissionDenied)
)

// InvalidInput wraps ErrInvalidInput with a caller-facing reason.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
