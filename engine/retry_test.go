package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryExhaustsAfterMaxRetries(t *testing.T) {
	attempts := 0
	invoke := func(ctx context.Context) AttemptOutcome {
		attempts++
		return AttemptOutcome{Kind: OutcomeCommandFailure, ExitCode: 1}
	}

	outcome, made := runWithRetry(context.Background(), invoke, 3, 0)

	assert.Equal(t, 4, attempts) // first attempt + 3 retries
	assert.Equal(t, 4, made)
	assert.Equal(t, OutcomeCommandFailure, outcome.Kind)
}

func TestRetryZeroMeansSingleAttempt(t *testing.T) {
	attempts := 0
	invoke := func(ctx context.Context) AttemptOutcome {
		attempts++
		return AttemptOutcome{Kind: OutcomeTransportError, Message: "connection refused"}
	}

	start := time.Now()
	_, made := runWithRetry(context.Background(), invoke, 0, 500*time.Millisecond)

	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, made)
	// No trailing delay after the final attempt
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestRetrySuccessReturnsImmediately(t *testing.T) {
	attempts := 0
	invoke := func(ctx context.Context) AttemptOutcome {
		attempts++
		return AttemptOutcome{Kind: OutcomeSuccess, Stdout: "ok"}
	}

	outcome, made := runWithRetry(context.Background(), invoke, 5, time.Second)

	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, made)
	assert.Equal(t, OutcomeSuccess, outcome.Kind)
}

func TestRetryTimeoutIsTerminal(t *testing.T) {
	attempts := 0
	invoke := func(ctx context.Context) AttemptOutcome {
		attempts++
		return AttemptOutcome{Kind: OutcomeTimeout}
	}

	outcome, made := runWithRetry(context.Background(), invoke, 5, 0)

	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, made)
	assert.Equal(t, OutcomeTimeout, outcome.Kind)
}

func TestRetryDelaySpacing(t *testing.T) {
	const delay = 60 * time.Millisecond
	var starts []time.Time
	invoke := func(ctx context.Context) AttemptOutcome {
		starts = append(starts, time.Now())
		return AttemptOutcome{Kind: OutcomeCommandFailure, ExitCode: 2}
	}

	runWithRetry(context.Background(), invoke, 2, delay)

	if assert.Len(t, starts, 3) {
		for i := 1; i < len(starts); i++ {
			assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), delay,
				"attempt starts must be spaced by at least the retry delay")
		}
	}
}

func TestRetryStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	invoke := func(ctx context.Context) AttemptOutcome {
		attempts++
		cancel() // cancel while the controller is in its inter-attempt delay
		return AttemptOutcome{Kind: OutcomeCommandFailure, ExitCode: 1}
	}

	outcome, made := runWithRetry(ctx, invoke, 10, time.Hour)

	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, made)
	assert.Equal(t, OutcomeCommandFailure, outcome.Kind)
}
