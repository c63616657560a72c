package apperr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Services wrap these with %w so the command
// surface can map them to short user-facing strings without leaking
// store internals.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrInUse         = errors.New("in use")
	// ErrUnsaved marks a contract violation: mutating a row that was
	// never persisted (no id yet).
	ErrUnsaved = errors.New("record not saved")
)

func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
