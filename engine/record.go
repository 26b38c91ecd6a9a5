package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the request-level terminal status stored in the history.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusTimedOut Status = "timed_out"
)

// IsValidStatus returns true if s names a known terminal status
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusSuccess, StatusFailed, StatusTimedOut:
		return true
	}
	return false
}

// WorkerResult is the terminal outcome of one worker's retried attempt
// sequence, kept on the record so a partial-fleet failure stays diagnosable.
type WorkerResult struct {
	Worker   int         `json:"worker"`
	Outcome  OutcomeKind `json:"outcome"`
	ExitCode int         `json:"exit_code"`
	Attempts int         `json:"attempts"`
	Message  string      `json:"message,omitempty"`
}

// ExecutionRecord is the durable, terminal summary of one ExecutionRequest.
// Exactly one record exists per submitted request, however many per-worker
// attempts happened underneath it. Immutable once appended.
type ExecutionRecord struct {
	ID             string         `json:"id"` // EXR_{random}_{timestamp}
	CreatedAt      time.Time      `json:"created_at"`
	Command        string         `json:"command"`
	WorkerScope    string         `json:"worker_scope"` // "all" or a worker index
	Status         Status         `json:"status"`
	OutputExcerpt  string         `json:"output_excerpt"`
	RetryCountUsed int            `json:"retry_count_used"` // max retries consumed by any worker
	WorkersTotal   int            `json:"workers_total"`
	WorkersFailed  int            `json:"workers_failed"`
	Workers        []WorkerResult `json:"workers"`
}

// NewRecordID generates a unique execution record ID
func NewRecordID() string {
	return fmt.Sprintf("EXR_%s_%d", strings.Split(uuid.NewString(), "-")[0], time.Now().Unix())
}

// aggregateStatus collapses per-worker outcomes into the request status.
// Success only when every worker succeeded. TimedOut only when at least one
// worker timed out and nothing actually failed; any CommandFailure or
// TransportError makes the request Failed.
func aggregateStatus(results []WorkerResult) Status {
	timedOut := false
	for _, r := range results {
		switch r.Outcome {
		case OutcomeCommandFailure, OutcomeTransportError:
			return StatusFailed
		case OutcomeTimeout:
			timedOut = true
		}
	}
	if timedOut {
		return StatusTimedOut
	}
	return StatusSuccess
}
