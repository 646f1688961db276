// Package dbtest opens a migrated pool for integration tests.
package dbtest

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/cafelove/internal/db"
)

// Open skips the test unless CAFE_TEST_DSN points at a disposable database.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	dsn := os.Getenv("CAFE_TEST_DSN")
	if dsn == "" {
		t.Skip("skipping postgres integration test: CAFE_TEST_DSN not set")
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	log := logrus.NewEntry(l)

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(ctx, pool, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}
