// Package retry provides a bounded retry policy with exponential backoff.
package retry

import (
	"context"
	"time"
)

// Policy bounds how many times an operation is attempted and how long to wait between attempts.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration // delay before the second attempt; doubles after each failure
	MaxBackoff  time.Duration // zero means uncapped
}

// Default returns three attempts starting at 500ms backoff.
func Default() Policy {
	return Policy{MaxAttempts: 3, Backoff: 500 * time.Millisecond, MaxBackoff: 5 * time.Second}
}

// None runs an operation exactly once.
func None() Policy {
	return Policy{MaxAttempts: 1}
}

// Delay returns the wait before the given attempt (attempt 2 is the first retry).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 1 || p.Backoff <= 0 {
		return 0
	}
	d := p.Backoff
	for i := 2; i < attempt; i++ {
		d *= 2
		if p.MaxBackoff > 0 && d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// Do calls fn until it succeeds, returns an error retryable rejects, attempts run
// out, or ctx is done. The last error from fn is returned.
func (p Policy) Do(ctx context.Context, retryable func(error) bool, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if d := p.Delay(attempt); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				return err
			case <-t.C:
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
