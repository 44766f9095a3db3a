package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL container for testing and applies the
// schema. Returns a cleanup function that must be called after tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	applySchema(t, ctx, pool)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// applySchema creates the evaluation_results table. Kept in sync with the
// embedded migration; inlined here because the migrations package depends on
// this one.
func applySchema(t *testing.T, ctx context.Context, pool *Pool) {
	t.Helper()

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS evaluation_results (
			eval_id         TEXT PRIMARY KEY,
			actual_id       TEXT NOT NULL,
			predicted_id    TEXT NOT NULL,
			metric          TEXT NOT NULL,
			seasonality_m   INTEGER NOT NULL DEFAULT 1,
			intersect_range BOOLEAN NOT NULL DEFAULT TRUE,
			value           DOUBLE PRECISION NOT NULL,
			created_at_ms   BIGINT NOT NULL
		)
	`)
	require.NoError(t, err, "failed to create evaluation_results table")

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_evaluation_results_metric_created
		ON evaluation_results (metric, created_at_ms)
	`)
	require.NoError(t, err, "failed to create index")
}
