package db

import (
	"strings"

	"github.com/podrun/podrun/errors"
)

// ErrDatabaseClosed marks operations attempted after the history database
// handle was closed.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err indicates a closed database. Matches
// both wrapped ErrDatabaseClosed and the raw database/sql and sqlite driver
// errors, which cannot be wrapped at the source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "database is closed") ||
		strings.Contains(errMsg, "sql: database is closed")
}
