// Package testutil provides database helpers for repository and integration
// tests.
//
// Repository tests run against go-sqlmock so the suite stays hermetic; the
// SQL they assert on is the exact text the repositories send to PostgreSQL
// and MySQL. Integration tests use the live-database helpers in livedb.go,
// which connect to real servers (DSNs overridable via TEST_POSTGRES_DSN and
// TEST_MYSQL_DSN), run migrations and truncate between tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// NewMockDB creates a sqlmock-backed *sql.DB and closes it when the test ends.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, mock
}
