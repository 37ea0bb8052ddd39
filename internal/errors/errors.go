package errors

import (
	"errors"
	"fmt"
)

// Common error types for the PetPlace client
var (
	// Session errors
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrSessionTerminated = errors.New("session terminated")
	ErrNoRefreshToken    = errors.New("no refresh token available")
	ErrBootstrapFailed   = errors.New("session bootstrap failed")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("session snapshot not found")
	ErrSnapshotCorrupt  = errors.New("session snapshot corrupt")

	// Validation errors
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidCoordinates = errors.New("coordinates out of range")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
