// Package engine is podrun's command execution core: worker fanout with
// per-worker retry and timeout enforcement, plus the durable execution
// history. The remote-execution primitive and the worker-count provider are
// collaborators injected at construction.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/podrun/podrun/errors"
	"github.com/podrun/podrun/internal/util"
)

// DefaultExcerptChars bounds the output excerpt stored on a record
const DefaultExcerptChars = 500

// Engine executes requests against a TPU slice and records every terminal
// outcome. Safe for concurrent Submit calls; the store serializes appends.
type Engine struct {
	runner       Runner
	counter      WorkerCounter
	store        *RecordStore
	excerptChars int
	logger       *zap.SugaredLogger
}

// New creates an engine. excerptChars <= 0 falls back to DefaultExcerptChars.
func New(runner Runner, counter WorkerCounter, store *RecordStore, excerptChars int, logger *zap.SugaredLogger) *Engine {
	if excerptChars <= 0 {
		excerptChars = DefaultExcerptChars
	}
	return &Engine{
		runner:       runner,
		counter:      counter,
		store:        store,
		excerptChars: excerptChars,
		logger:       logger.Named("engine"),
	}
}

// Submit runs one request to completion and appends exactly one record,
// blocking until the record is durably written. Validation failures return
// before any remote invocation and append nothing. A store write failure is
// returned alongside the record: the command may have succeeded, but the
// engine does not pretend the history is intact.
func (e *Engine) Submit(ctx context.Context, req ExecutionRequest) (*ExecutionRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	count, err := e.counter.WorkerCount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve worker count")
	}

	workers, err := req.Workers.Resolve(count)
	if err != nil {
		return nil, err
	}

	e.logger.Infow("Dispatching command",
		"command", req.Command,
		"workers", len(workers),
		"scope", req.Workers.String(),
		"max_retries", req.MaxRetries,
		"timeout", req.Timeout,
	)

	outcomes := dispatch(ctx, e.runner, req, workers)
	record := e.buildRecord(req, outcomes)

	if err := e.store.Append(record); err != nil {
		e.logger.Errorw("Failed to persist execution record",
			"record_id", record.ID,
			"error", err,
		)
		return record, err
	}

	e.logger.Infow("Execution recorded",
		"record_id", record.ID,
		"status", record.Status,
		"workers_failed", record.WorkersFailed,
	)
	return record, nil
}

func (e *Engine) buildRecord(req ExecutionRequest, outcomes []workerOutcome) *ExecutionRecord {
	results := make([]WorkerResult, len(outcomes))
	retriesUsed := 0
	failed := 0

	var excerpt strings.Builder
	for i, wo := range outcomes {
		results[i] = WorkerResult{
			Worker:   wo.worker,
			Outcome:  wo.outcome.Kind,
			ExitCode: wo.outcome.ExitCode,
			Attempts: wo.attempts,
			Message:  wo.outcome.Message,
		}
		if wo.outcome.Kind != OutcomeSuccess {
			failed++
		}
		if used := wo.attempts - 1; used > retriesUsed {
			retriesUsed = used
		}
		appendWorkerExcerpt(&excerpt, wo)
	}

	return &ExecutionRecord{
		ID:             NewRecordID(),
		CreatedAt:      time.Now().UTC(),
		Command:        req.Command,
		WorkerScope:    req.Workers.String(),
		Status:         aggregateStatus(results),
		OutputExcerpt:  util.Truncate(excerpt.String(), e.excerptChars),
		RetryCountUsed: retriesUsed,
		WorkersTotal:   len(outcomes),
		WorkersFailed:  failed,
		Workers:        results,
	}
}

func appendWorkerExcerpt(b *strings.Builder, wo workerOutcome) {
	fmt.Fprintf(b, "[worker %d: %s] ", wo.worker, wo.outcome.Kind)
	switch wo.outcome.Kind {
	case OutcomeTransportError, OutcomeTimeout:
		b.WriteString(wo.outcome.Message)
	default:
		out := strings.TrimSpace(wo.outcome.Stdout)
		if out == "" {
			out = strings.TrimSpace(wo.outcome.Stderr)
		}
		b.WriteString(out)
	}
	b.WriteString("\n")
}
