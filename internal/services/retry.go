package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alfredoptarigan/resume-forge/internal/logger"
)

// RetryPolicy runs an outbound call under a per-attempt deadline and retries
// it at most MaxRetries times.
type RetryPolicy struct {
	Timeout    time.Duration
	MaxRetries int
	Delay      time.Duration
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func isPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Do calls fn until it succeeds, fails permanently, the parent context ends
// or the retry budget is spent. An attempt that outlives Timeout returns an
// error wrapping context.DeadlineExceeded.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := p.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := p.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", op, lastErr)
		}
		if isPermanent(err) {
			return fmt.Errorf("%s: %w", op, lastErr)
		}

		if attempt < attempts {
			logger.Warnf("⚠️ %s attempt %d/%d failed: %v. Retrying...", op, attempt, attempts, err)

			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", op, lastErr)
			case <-time.After(p.Delay):
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", op, attempts, lastErr)
}

func (p RetryPolicy) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	attemptCtx := ctx
	cancel := context.CancelFunc(func() {})
	if p.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
	}
	defer cancel()

	err := fn(attemptCtx)
	if err == nil {
		return nil
	}

	// Some clients report an expired deadline with their own error type.
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", context.DeadlineExceeded, p.Timeout, err)
	}
	return err
}
