package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a cache backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries transient failures with exponentially growing pauses.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	// MaxDelay caps a single pause. Zero means no cap.
	MaxDelay time.Duration
}

// ConnectBackoff is used while waiting for a backend to accept connections.
var ConnectBackoff = Backoff{Attempts: 3, Delay: 500 * time.Millisecond, MaxDelay: 5 * time.Second}

// Retry calls fn until it succeeds, fails with an error not marked
// Retryable, or b.Attempts calls have failed. Cancelling ctx ends the wait
// between attempts with ctx.Err().
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for i := 0; i < max(b.Attempts, 1); i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if b.MaxDelay > 0 && delay > b.MaxDelay {
				delay = b.MaxDelay
			}
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}
