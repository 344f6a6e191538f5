package postgresql_test

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

var testDB *database.DB

// TestMain connects to TEST_DATABASE_URL when set, otherwise starts a
// throwaway PostgreSQL container. Without either the tests are skipped.
func TestMain(m *testing.M) {
	flag.Parse()
	ctx := context.Background()

	var container *postgres.PostgresContainer
	if !testing.Short() {
		dsn := os.Getenv("TEST_DATABASE_URL")
		if dsn == "" {
			var err error
			container, err = postgres.Run(ctx, "postgres:16-alpine",
				postgres.WithDatabase("presenz_test"),
				postgres.WithUsername("test"),
				postgres.WithPassword("test"),
				testcontainers.WithWaitStrategy(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(60*time.Second),
				),
			)
			if err != nil {
				slog.Warn("postgres container unavailable, skipping repository tests", "error", err)
			} else {
				dsn, err = container.ConnectionString(ctx, "sslmode=disable")
				if err != nil {
					slog.Warn("failed to get connection string", "error", err)
					dsn = ""
				}
			}
		}

		if dsn != "" {
			db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10, MinConns: 1})
			if err != nil {
				slog.Warn("failed to connect to test database", "error", err)
			} else if err := db.Migrate(ctx); err != nil {
				slog.Warn("failed to migrate test database", "error", err)
				db.Close()
			} else {
				testDB = db
			}
		}
	}

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			slog.Warn("failed to terminate postgres container", "error", err)
		}
	}
	os.Exit(code)
}

// setupTestDB skips the test when no database is available and truncates
// every table otherwise.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("no test database available")
	}

	ctx := context.Background()
	tables := []string{
		"refresh_tokens",
		"users",
		"staff",
		"attendance_days",
		"settings",
		"miss_punch_requests",
		"leave_requests",
		"timesheets",
	}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err, "truncate %s", table)
	}
	return testDB
}

func strPtr(s string) *string { return &s }
