package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for persistence operations.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrPermissionDenied is returned when the backend refuses the operation.
	ErrPermissionDenied = errors.New("permission denied")
)

// TransientError wraps a failure that is worth retrying, such as a network
// timeout or a momentarily unavailable backend. Autosave retries only errors
// wrapped this way; everything else fails fast.
type TransientError struct{ Err error }

// Transient wraps an error as a TransientError.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *TransientError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient checks if an error is wrapped with TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// RetryWithBackoff retries fn up to 3 times with exponential backoff.
// Only errors wrapped with Transient will trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsTransient(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
