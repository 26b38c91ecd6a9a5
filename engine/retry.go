package engine

import (
	"context"
	"time"
)

// invokeFunc produces one AttemptOutcome. The retry controller treats it as
// opaque; the dispatcher binds it to a worker and the timeout enforcer.
type invokeFunc func(ctx context.Context) AttemptOutcome

// runWithRetry executes invoke under bounded retry-with-delay semantics.
//
// maxRetries=N allows N retries after the first attempt, so at most N+1
// attempts. The delay applies only between attempts, never after the final
// one. Success and Timeout return immediately as terminal. The suspension
// during the inter-attempt delay is a select on a timer, so it never blocks
// sibling workers and honors ctx cancellation.
//
// Returns the terminal outcome and the number of attempts made.
func runWithRetry(ctx context.Context, invoke invokeFunc, maxRetries int, delay time.Duration) (AttemptOutcome, int) {
	attempts := 0
	for {
		attempts++
		outcome := invoke(ctx)

		if !outcome.Retryable() || attempts > maxRetries {
			return outcome, attempts
		}

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				// Caller is gone; report the last real outcome
				return outcome, attempts
			}
		}
	}
}
