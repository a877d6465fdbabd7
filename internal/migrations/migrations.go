package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
)

//go:embed 001_marketplace.sql
var mig001 string

//go:embed 002_sync_state.sql
var mig002 string

//go:embed 003_wallet_revision.sql
var mig003 string

// All returns the schema migrations of the paywall database in order.
func All() []db.Migration {
	return []db.Migration{
		{ID: "001_marketplace.sql", SQL: mig001},
		{ID: "002_sync_state.sql", SQL: mig002},
		{ID: "003_wallet_revision.sql", SQL: mig003},
	}
}

// RunMigrations brings the paywall database schema up to date.
func RunMigrations(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrations(log, database, All())
}
