package helpers

import (
	"database/sql"
	"path"
	"testing"

	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/migrations"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated paywall database in a temporary directory.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.NewSQLiteDB(path.Join(t.TempDir(), "paywall.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, migrations.RunMigrations(logger.NewNopLogger(), database))

	return database
}
