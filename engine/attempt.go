package engine

import (
	"context"
	"time"
)

// attempt runs one invocation of the primitive under a hard wall-clock
// bound. Each attempt gets a fresh timeout window; cancellation reaches the
// runner through ctx, which kills the local gcloud process. The SSH session
// teardown normally hangs up the remote shell, but remote termination is
// best effort and not verified here.
func attempt(ctx context.Context, runner Runner, worker int, command string, timeout time.Duration) AttemptOutcome {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := runner.Run(attemptCtx, worker, command)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return AttemptOutcome{Kind: OutcomeTimeout, Message: "command timed out after " + timeout.String()}
		}
		return AttemptOutcome{Kind: OutcomeTransportError, Message: err.Error()}
	}

	if res.ExitCode != 0 {
		return AttemptOutcome{
			Kind:     OutcomeCommandFailure,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}

	return AttemptOutcome{
		Kind:   OutcomeSuccess,
		Stdout: res.Stdout,
		Stderr: res.Stderr,
	}
}
