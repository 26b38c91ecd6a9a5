package engine

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podrun/podrun/db"
	"github.com/podrun/podrun/errors"
	podruntest "github.com/podrun/podrun/internal/testing"
)

func testRecord(id string, createdAt time.Time, status Status) *ExecutionRecord {
	return &ExecutionRecord{
		ID:            id,
		CreatedAt:     createdAt,
		Command:       "uptime",
		WorkerScope:   "all",
		Status:        status,
		OutputExcerpt: "[worker 0: " + string(status) + "]",
		WorkersTotal:  1,
		Workers:       []WorkerResult{{Worker: 0, Outcome: OutcomeSuccess, Attempts: 1}},
	}
}

func TestAppendAndQuery(t *testing.T) {
	store := NewRecordStore(podruntest.CreateTestDB(t))

	rec := testRecord("EXR_a_1", time.Now().UTC(), StatusSuccess)
	rec.RetryCountUsed = 2
	require.NoError(t, store.Append(rec))

	records, err := store.Query(nil, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Command, got.Command)
	assert.Equal(t, rec.WorkerScope, got.WorkerScope)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, 2, got.RetryCountUsed)
	require.Len(t, got.Workers, 1)
	assert.Equal(t, OutcomeSuccess, got.Workers[0].Outcome)
}

func TestQueryNewestFirst(t *testing.T) {
	store := NewRecordStore(podruntest.CreateTestDB(t))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("EXR_%d", i), base.Add(time.Duration(i)*time.Minute), StatusSuccess)
		require.NoError(t, store.Append(rec))
	}

	records, err := store.Query(nil, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "EXR_4", records[0].ID)
	assert.Equal(t, "EXR_3", records[1].ID)
	assert.Equal(t, "EXR_2", records[2].ID)
}

func TestQueryStatusFilter(t *testing.T) {
	store := NewRecordStore(podruntest.CreateTestDB(t))

	now := time.Now().UTC()
	require.NoError(t, store.Append(testRecord("EXR_ok", now, StatusSuccess)))
	require.NoError(t, store.Append(testRecord("EXR_bad", now.Add(time.Second), StatusFailed)))
	require.NoError(t, store.Append(testRecord("EXR_hung", now.Add(2*time.Second), StatusTimedOut)))

	failed := StatusFailed
	records, err := store.Query(&failed, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "EXR_bad", records[0].ID)
}

func TestQueryLimitZero(t *testing.T) {
	store := NewRecordStore(podruntest.CreateTestDB(t))
	require.NoError(t, store.Append(testRecord("EXR_a", time.Now().UTC(), StatusSuccess)))

	records, err := store.Query(nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestQueryErrors(t *testing.T) {
	store := NewRecordStore(podruntest.CreateTestDB(t))

	now := time.Now().UTC()
	require.NoError(t, store.Append(testRecord("EXR_ok", now, StatusSuccess)))
	require.NoError(t, store.Append(testRecord("EXR_bad", now.Add(time.Second), StatusFailed)))
	require.NoError(t, store.Append(testRecord("EXR_hung", now.Add(2*time.Second), StatusTimedOut)))

	records, err := store.QueryErrors(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "EXR_hung", records[0].ID)
	assert.Equal(t, "EXR_bad", records[1].ID)
}

func TestPruneKeepsNewest(t *testing.T) {
	store := NewRecordStore(podruntest.CreateTestDB(t))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Append(testRecord(fmt.Sprintf("EXR_%02d", i), base.Add(time.Duration(i)*time.Minute), StatusSuccess)))
	}

	deleted, err := store.Prune(3)
	require.NoError(t, err)
	assert.Equal(t, 7, deleted)

	records, err := store.Query(nil, 100)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "EXR_09", records[0].ID)
	assert.Equal(t, "EXR_07", records[2].ID)
}

func TestConcurrentAppends(t *testing.T) {
	store := NewRecordStore(podruntest.CreateTestDB(t))

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := testRecord(fmt.Sprintf("EXR_c%02d", i), time.Now().UTC(), StatusSuccess)
			assert.NoError(t, store.Append(rec))
		}(i)
	}
	wg.Wait()

	records, err := store.Query(nil, n*2)
	require.NoError(t, err)
	assert.Len(t, records, n)
}

func TestClosedDatabaseIsClassified(t *testing.T) {
	database := podruntest.CreateTestDB(t)
	store := NewRecordStore(database)
	require.NoError(t, database.Close())

	err := store.Append(testRecord("EXR_late", time.Now().UTC(), StatusSuccess))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStoreWrite))
	assert.True(t, db.IsDatabaseClosed(err))

	_, err = store.Query(nil, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrDatabaseClosed))
}

func TestStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	open := func() *sql.DB {
		database, err := db.Open(path, nil)
		require.NoError(t, err)
		require.NoError(t, db.Migrate(database, nil))
		return database
	}

	first := open()
	store := NewRecordStore(first)
	require.NoError(t, store.Append(testRecord("EXR_persist", time.Now().UTC(), StatusFailed)))
	require.NoError(t, first.Close())

	second := open()
	defer second.Close()
	reopened := NewRecordStore(second)

	records, err := reopened.Query(nil, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "EXR_persist", records[0].ID)
}
