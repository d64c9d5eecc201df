// Package dbtest gives repository and service tests a throwaway SQLite store.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eaglebank/registry/shared/database"
	"github.com/stretchr/testify/require"
)

// Open creates a fresh SQLite database in the test's temp dir, applies
// schema and closes it when the test ends.
func Open(t testing.TB, schema database.Schema) *database.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background(), schema))
	return db
}
