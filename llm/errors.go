package llm

import (
	"errors"
	"time"
)

// Error types for classifying LLM errors.

// TransientError represents a temporary error that may succeed on retry.
type TransientError struct {
	err error

	// retryAfter is a server-provided pacing hint, zero when absent.
	retryAfter time.Duration
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// NewTransientError wraps an error as transient (retryable).
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// NewTransientErrorWithRetryAfter wraps an error as transient and carries the
// delay the server asked for before the next attempt.
func NewTransientErrorWithRetryAfter(err error, retryAfter time.Duration) error {
	return &TransientError{err: err, retryAfter: retryAfter}
}

// FatalError represents a permanent error that should not be retried.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// NewFatalError wraps an error as fatal (non-retryable).
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// IsTransient returns true if the error is transient and should be retried.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal returns true if the error is fatal and should not be retried.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// RetryAfterHint returns the server-provided retry delay attached to a
// transient error, if any.
func RetryAfterHint(err error) (time.Duration, bool) {
	var transient *TransientError
	if errors.As(err, &transient) && transient.retryAfter > 0 {
		return transient.retryAfter, true
	}
	return 0, false
}
