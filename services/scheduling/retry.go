package scheduling

import (
	"context"
	"time"
)

// retryWithFixedDelay runs fn up to attempts times with a fixed delay between
// attempts: no backoff and no jitter, so the worst-case latency stays bounded
// for callers that are themselves inside a synchronous request.
//
// fn returns done=true to stop early; a non-nil error aborts the loop and is
// returned as-is. When the budget is exhausted without fn reporting done, the
// result is (false, nil).
func retryWithFixedDelay(ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) (bool, error)) (bool, error) {
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}
		done, err := fn(ctx)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
	}
	return false, nil
}
