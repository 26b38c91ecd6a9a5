package engine

import "context"

// Runner is the remote-execution primitive the engine drives. Implementations
// run the shell command on one worker and block until it finishes or ctx is
// cancelled. Cancellation must tear down the underlying invocation so the
// timeout enforcer can abandon an attempt without leaking it locally;
// remote-side termination is best effort.
type Runner interface {
	Run(ctx context.Context, worker int, command string) (RunResult, error)
}

// RunResult is the raw result of one remote invocation that actually ran.
// A non-nil error from Run means the invocation itself could not complete
// (transport failure or cancellation), in which case RunResult is ignored.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// WorkerCounter supplies the slice's current worker count. Implemented by
// the TPU collaborator from `gcloud compute tpus describe`.
type WorkerCounter interface {
	WorkerCount(ctx context.Context) (int, error)
}

// AttemptOutcome classifies one invocation of the primitive for one worker.
type AttemptOutcome struct {
	Kind     OutcomeKind
	ExitCode int
	Stdout   string
	Stderr   string
	Message  string // transport error detail, empty otherwise
}

// OutcomeKind is the terminal classification of a single attempt
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeCommandFailure OutcomeKind = "command_failure"
	OutcomeTimeout        OutcomeKind = "timeout"
	OutcomeTransportError OutcomeKind = "transport_error"
)

// Retryable reports whether the retry controller may try again after this
// outcome. Success is terminal; Timeout is terminal because retrying the
// same bounded-duration call is assumed futile.
func (o AttemptOutcome) Retryable() bool {
	return o.Kind == OutcomeCommandFailure || o.Kind == OutcomeTransportError
}
