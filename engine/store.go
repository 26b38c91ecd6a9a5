package engine

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/podrun/podrun/db"
	"github.com/podrun/podrun/errors"
)

// RecordStore persists the append-only execution history. Appends are
// serialized through a mutex so concurrent in-flight requests cannot
// interleave partial records; reads go straight to SQLite (WAL mode keeps
// them consistent during writes). The store does no business logic.
type RecordStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewRecordStore creates a record store over an opened, migrated database
func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Append durably writes one execution record. A write failure is returned
// to the caller, never swallowed. Records are never mutated or deleted by
// the engine; Prune exists for the CLI's history cap.
func (s *RecordStore) Append(record *ExecutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail, err := json.Marshal(record.Workers)
	if err != nil {
		return errors.Wrap(errors.ErrStoreWrite, err.Error())
	}

	query := `
		INSERT INTO executions (
			id, created_at, command, worker_scope, status,
			output_excerpt, retry_count_used,
			workers_total, workers_failed, worker_detail
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		record.ID,
		record.CreatedAt.UTC().Format(time.RFC3339),
		record.Command,
		record.WorkerScope,
		string(record.Status),
		record.OutputExcerpt,
		record.RetryCountUsed,
		record.WorkersTotal,
		record.WorkersFailed,
		string(detail),
	)
	if err != nil {
		if db.IsDatabaseClosed(err) {
			err = db.ErrDatabaseClosed
		}
		wrapped := errors.Wrap(errors.ErrStoreWrite, err.Error())
		wrapped = errors.WithDetailf(wrapped, "Record ID: %s", record.ID)
		return wrapped
	}

	return nil
}

// Query returns the most recent limit records, newest first, optionally
// filtered by status. limit=0 returns an empty slice without error.
func (s *RecordStore) Query(statusFilter *Status, limit int) ([]*ExecutionRecord, error) {
	if limit <= 0 {
		return []*ExecutionRecord{}, nil
	}

	query := `
		SELECT id, created_at, command, worker_scope, status,
		       output_excerpt, retry_count_used,
		       workers_total, workers_failed, worker_detail
		FROM executions
	`
	args := []interface{}{}
	if statusFilter != nil {
		query += " WHERE status = ?"
		args = append(args, string(*statusFilter))
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	return s.query(query, args...)
}

// QueryErrors returns the most recent failed and timed-out records, newest
// first. Backs the `podrun errors` view.
func (s *RecordStore) QueryErrors(limit int) ([]*ExecutionRecord, error) {
	if limit <= 0 {
		return []*ExecutionRecord{}, nil
	}

	query := `
		SELECT id, created_at, command, worker_scope, status,
		       output_excerpt, retry_count_used,
		       workers_total, workers_failed, worker_detail
		FROM executions
		WHERE status IN (?, ?)
		ORDER BY created_at DESC, rowid DESC LIMIT ?
	`
	return s.query(query, string(StatusFailed), string(StatusTimedOut), limit)
}

// Prune deletes everything but the newest keep records and returns how many
// were removed. The engine never calls this; it serves the CLI's history cap.
func (s *RecordStore) Prune(keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}

	result, err := s.db.Exec(`
		DELETE FROM executions
		WHERE id NOT IN (
			SELECT id FROM executions ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prune executions")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get rows affected")
	}
	return int(deleted), nil
}

func (s *RecordStore) query(query string, args ...interface{}) ([]*ExecutionRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		if db.IsDatabaseClosed(err) {
			return nil, errors.Wrap(db.ErrDatabaseClosed, "failed to query executions")
		}
		return nil, errors.Wrap(err, "failed to query executions")
	}
	defer rows.Close()

	var records []*ExecutionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating executions")
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (*ExecutionRecord, error) {
	var record ExecutionRecord
	var createdAt, status, detail string

	err := rows.Scan(
		&record.ID,
		&createdAt,
		&record.Command,
		&record.WorkerScope,
		&status,
		&record.OutputExcerpt,
		&record.RetryCountUsed,
		&record.WorkersTotal,
		&record.WorkersFailed,
		&detail,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan execution")
	}

	record.Status = Status(status)

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timestamp on record %s", record.ID)
	}
	record.CreatedAt = ts

	if err := json.Unmarshal([]byte(detail), &record.Workers); err != nil {
		return nil, errors.Wrapf(err, "invalid worker detail on record %s", record.ID)
	}

	return &record, nil
}
