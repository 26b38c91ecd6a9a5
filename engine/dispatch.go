package engine

import (
	"context"
	"sync"
)

// workerOutcome pairs a worker index with its terminal outcome and the
// number of attempts its retry loop made.
type workerOutcome struct {
	worker   int
	outcome  AttemptOutcome
	attempts int
}

// dispatch runs the request against every resolved worker concurrently and
// joins all of them. Workers are independent remote targets: one worker's
// failure or timeout never blocks or cancels a sibling, and total latency
// is bounded by the slowest worker. Each goroutine writes only its own slot
// of the results slice.
func dispatch(ctx context.Context, runner Runner, req ExecutionRequest, workers []int) []workerOutcome {
	results := make([]workerOutcome, len(workers))

	var wg sync.WaitGroup
	for i, worker := range workers {
		wg.Add(1)
		go func(slot, worker int) {
			defer wg.Done()

			invoke := func(ctx context.Context) AttemptOutcome {
				return attempt(ctx, runner, worker, req.Command, req.Timeout)
			}
			outcome, attempts := runWithRetry(ctx, invoke, req.MaxRetries, req.RetryDelay)
			results[slot] = workerOutcome{worker: worker, outcome: outcome, attempts: attempts}
		}(i, worker)
	}
	wg.Wait()

	return results
}
