package retry

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Policy is a bounded exponential backoff. The zero value never retries.
type Policy struct {
	// MaxRetries is the number of attempts made after the first one
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	// Jitter adds up to 10% random noise to each delay
	Jitter bool
}

// GenerationPolicy is used for generative model calls: 2 additional attempts
func GenerationPolicy() Policy {
	return Policy{
		MaxRetries: 2,
		BaseDelay:  1 * time.Second,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// RateLimitPolicy is used for rate limited source host calls: a single backoff-and-retry
func RateLimitPolicy() Policy {
	return Policy{
		MaxRetries: 1,
		BaseDelay:  2 * time.Second,
		MaxDelay:   60 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// Attempts returns the total number of attempts allowed
func (x Policy) Attempts() int {
	return x.MaxRetries + 1
}

// Delay returns the wait before the retry following attempt n (1-origin)
func (x Policy) Delay(n int) time.Duration {
	multiplier := x.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	delay := float64(x.BaseDelay) * math.Pow(multiplier, float64(n-1))
	if x.MaxDelay > 0 && delay > float64(x.MaxDelay) {
		delay = float64(x.MaxDelay)
	}

	if x.Jitter && delay > 0 {
		jitterRange := delay * 0.1
		delay += (rand.Float64() - 0.5) * 2 * jitterRange
		if delay < 0 {
			delay = float64(x.BaseDelay)
		}
	}

	return time.Duration(delay)
}

type stopError struct {
	err error
}

func (x *stopError) Error() string { return x.err.Error() }
func (x *stopError) Unwrap() error { return x.err }

// Stop marks err as permanent. Do returns the wrapped error without retrying.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &stopError{err: err}
}

// AfterHinter is implemented by errors carrying a server provided wait, e.g. Retry-After
type AfterHinter interface {
	RetryAfter() time.Duration
}

// Do calls op until it succeeds, returns a permanent error or the retry budget is exhausted. op receives the attempt number starting from 1. The last error of op is returned as is. A server provided wait longer than MaxDelay ends retries immediately.
func (x Policy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	var lastErr error

	for attempt := 1; attempt <= x.Attempts(); attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return goerr.Wrap(err, "retry is cancelled")
		}

		err := op(ctx, attempt)
		if err == nil {
			return nil
		}

		var stop *stopError
		if errors.As(err, &stop) {
			return stop.err
		}
		lastErr = err

		if attempt == x.Attempts() {
			break
		}

		delay := x.Delay(attempt)
		var hint AfterHinter
		if errors.As(err, &hint) {
			if after := hint.RetryAfter(); after > delay {
				if x.MaxDelay > 0 && after > x.MaxDelay {
					logging.From(ctx).Warn("server requested wait exceeds retry policy",
						slog.Duration("retry_after", after),
						slog.Duration("max_delay", x.MaxDelay),
					)
					return err
				}
				delay = after
			}
		}

		logging.From(ctx).Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", x.Attempts()),
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)

		if err := wait(ctx, delay); err != nil {
			return lastErr
		}
	}

	return lastErr
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
