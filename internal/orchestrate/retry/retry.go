// Package retry re-invokes failed effect calls with exponential backoff until
// the call succeeds, the attempt budget is exhausted, or the per-call timeout
// elapses.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Policy defines retry behavior for one effect group.
type Policy struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
	Timeout         time.Duration // overall budget for all attempts, 0 = none
}

// Result reports how a retried call ended.
type Result struct {
	Attempts int
	Duration time.Duration
	Err      error // nil on success
}

// Do invokes fn under the given policy. Context cancellation mid-backoff is
// surfaced as the call's failure, never swallowed. The last attempt's error
// is wrapped with the attempt count.
func Do(ctx context.Context, policy Policy, fn func(context.Context) error) Result {
	start := time.Now()

	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{Attempts: attempt, Duration: time.Since(start), Err: err}
		}

		err := fn(ctx)
		if err == nil {
			return Result{Attempts: attempt + 1, Duration: time.Since(start)}
		}
		lastErr = err

		if attempt == policy.MaxAttempts-1 {
			break
		}

		delay := backoffDelay(attempt, policy)
		select {
		case <-ctx.Done():
			return Result{
				Attempts: attempt + 1,
				Duration: time.Since(start),
				Err:      fmt.Errorf("aborted after %d attempts: %w", attempt+1, ctx.Err()),
			}
		case <-time.After(delay):
		}
	}

	return Result{
		Attempts: policy.MaxAttempts,
		Duration: time.Since(start),
		Err:      fmt.Errorf("failed after %d attempts: %w", policy.MaxAttempts, lastErr),
	}
}

func backoffDelay(attempt int, policy Policy) time.Duration {
	delay := float64(policy.InitialDelay) * math.Pow(policy.BackoffMultiple, float64(attempt))
	if delay > float64(policy.MaxDelay) {
		delay = float64(policy.MaxDelay)
	}
	return time.Duration(delay)
}
