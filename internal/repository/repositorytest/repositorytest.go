// Package repositorytest opens throwaway databases with the production schema
// for package tests.
package repositorytest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/stretchr/testify/require"
)

// PostgresEnv names the DSN of a disposable Postgres database. Tests that
// need real row locking skip when it is unset.
const PostgresEnv = "PLANNER_TEST_POSTGRES_URL"

func Open(t testing.TB) *sql.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "planner.db") + "?_pragma=busy_timeout(5000)"
	return open(t, repository.DriverSQLite, dsn)
}

// OpenPostgres migrates the database named by PostgresEnv. Rows are not
// cleaned up; callers use fresh ids.
func OpenPostgres(t testing.TB) *sql.DB {
	t.Helper()

	dsn := os.Getenv(PostgresEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresEnv)
	}
	return open(t, repository.DriverPostgres, dsn)
}

func open(t testing.TB, driver, dsn string) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := repository.Open(ctx, driver, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.Migrate(ctx, db))
	return db
}
