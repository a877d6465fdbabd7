package checkpoint

import (
	"database/sql"
	"fmt"

	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/ChainPaywall/pkg/checkpoint"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
)

// New returns the checkpoint store selected by cfg.Backend.
func New(
	cfg config.CheckpointConfig,
	database *sql.DB,
	maintenance db.Maintenance,
	log *logger.Logger,
) (pkgcheckpoint.Store, error) {
	log = log.WithComponent(common.ComponentCheckpoint)

	switch cfg.Backend {
	case config.CheckpointBackendFile:
		return NewFileStore(cfg.Path, log)
	case config.CheckpointBackendSQLite:
		return NewSQLiteStore(database, maintenance, log), nil
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", cfg.Backend)
	}
}
