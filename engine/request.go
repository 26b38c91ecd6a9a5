package engine

import (
	"strconv"
	"time"

	"github.com/podrun/podrun/errors"
)

// WorkerSelector names the workers a request targets: every worker of the
// slice, or one specific index. Resolved against the slice's worker count
// at dispatch time.
type WorkerSelector struct {
	all   bool
	index int
}

// AllWorkers selects every worker of the slice
func AllWorkers() WorkerSelector {
	return WorkerSelector{all: true}
}

// Worker selects a single worker by index
func Worker(index int) WorkerSelector {
	return WorkerSelector{index: index}
}

// ParseWorkerSelector parses the CLI form: "all" or a non-negative integer.
func ParseWorkerSelector(s string) (WorkerSelector, error) {
	if s == "" || s == "all" {
		return AllWorkers(), nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return WorkerSelector{}, errors.NewValidationError("invalid worker selector %q (want \"all\" or a non-negative index)", s)
	}
	return Worker(i), nil
}

// Resolve expands the selector into an ordered set of worker indices in
// [0, count). An index at or beyond count is a validation error, not a
// silent no-op.
func (s WorkerSelector) Resolve(count int) ([]int, error) {
	if count <= 0 {
		return nil, errors.NewValidationError("worker count must be positive, got %d", count)
	}
	if s.all {
		workers := make([]int, count)
		for i := range workers {
			workers[i] = i
		}
		return workers, nil
	}
	if s.index >= count {
		return nil, errors.NewValidationError("worker index %d out of range [0, %d)", s.index, count)
	}
	return []int{s.index}, nil
}

func (s WorkerSelector) String() string {
	if s.all {
		return "all"
	}
	return strconv.Itoa(s.index)
}

// ExecutionRequest is the caller's logical ask: run this command, with
// these retry/timeout/worker parameters. Immutable once constructed.
type ExecutionRequest struct {
	Command    string
	Workers    WorkerSelector
	MaxRetries int           // retries after the first attempt; 0 means exactly one attempt
	RetryDelay time.Duration // between attempts only, never after the final one
	Timeout    time.Duration // per-attempt wall-clock bound
}

// Validate checks the request parameters before any remote work starts
func (r ExecutionRequest) Validate() error {
	if r.Command == "" {
		return errors.NewValidationError("command must not be empty")
	}
	if r.MaxRetries < 0 {
		return errors.NewValidationError("max retries must be >= 0, got %d", r.MaxRetries)
	}
	if r.RetryDelay < 0 {
		return errors.NewValidationError("retry delay must be >= 0, got %s", r.RetryDelay)
	}
	if r.Timeout <= 0 {
		return errors.NewValidationError("timeout must be > 0, got %s", r.Timeout)
	}
	return nil
}
