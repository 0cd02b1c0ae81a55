package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/gridplan/gridplan/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

// setupDB gives each test a migrated, empty database. Tests are skipped
// entirely when no Postgres is reachable.
func setupDB(t *testing.T) (context.Context, *pgxpool.Pool) {
	t.Helper()
	pool := testutil.NewTestPool(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)
	return ctx, pool
}
