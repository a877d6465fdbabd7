package checkpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/ChainPaywall/pkg/checkpoint"
)

var _ pkgcheckpoint.Store = (*SQLiteStore)(nil)

// SQLiteStore keeps the checkpoint in the single-row sync_state table.
type SQLiteStore struct {
	db          *sql.DB
	maintenance db.Maintenance
	log         *logger.Logger
}

func NewSQLiteStore(database *sql.DB, maintenance db.Maintenance, log *logger.Logger) *SQLiteStore {
	if maintenance == nil {
		maintenance = db.NoOpMaintenance{}
	}

	return &SQLiteStore{db: database, maintenance: maintenance, log: log}
}

func (s *SQLiteStore) Load(ctx context.Context) (uint64, bool, error) {
	var state pkgcheckpoint.State
	err := db.QueryRow(ctx, s.db, &state, `SELECT * FROM sync_state WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get sync state: %w", err)
	}

	return state.NextBlock, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, next uint64) error {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_state (id, next_block, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET next_block = excluded.next_block, updated_at = excluded.updated_at`,
		next, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	s.log.Debugf("saved checkpoint: next block %d", next)
	return nil
}
