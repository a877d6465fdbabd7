package db

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	"github.com/stretchr/testify/require"
)

func newMaintenanceTestDB(t *testing.T, rows int) (*MaintenanceCoordinator, string) {
	t.Helper()

	db, dbPath := newTestDB(t)

	_, err := db.Exec(`CREATE TABLE test_data (id INTEGER PRIMARY KEY, data TEXT)`)
	require.NoError(t, err)

	for range rows {
		_, err := db.Exec(`INSERT INTO test_data (data) VALUES (?)`, "test data with some content")
		require.NoError(t, err)
	}

	cfg := config.MaintenanceConfig{WALCheckpointMode: "TRUNCATE"}
	cfg.ApplyDefaults()

	return newMaintenanceCoordinator(dbPath, db, cfg, logger.NewNopLogger()), dbPath
}

func TestNewMaintenanceCoordinator_NilConfig(t *testing.T) {
	m := NewMaintenanceCoordinator("unused.db", nil, nil, logger.NewNopLogger())
	require.IsType(t, NoOpMaintenance{}, m)

	require.NoError(t, m.Start(context.Background()))
	m.AcquireOperationLock()()
	require.NoError(t, m.RunMaintenance(context.Background()))
	require.NoError(t, m.Stop())
}

func TestMaintenanceCoordinator_RunMaintenance(t *testing.T) {
	m, dbPath := newMaintenanceTestDB(t, 2000)

	walInfo, err := os.Stat(dbPath + "-wal")
	require.NoError(t, err)
	require.Positive(t, walInfo.Size())

	require.NoError(t, m.RunMaintenance(context.Background()))

	stats := m.Stats()
	require.Equal(t, uint64(1), stats.Runs)
	require.False(t, stats.LastRun.IsZero())
	require.NoError(t, stats.LastError)
}

func TestMaintenanceCoordinator_BlocksOperations(t *testing.T) {
	m, _ := newMaintenanceTestDB(t, 10)

	unlock := m.AcquireOperationLock()

	var done atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, m.RunMaintenance(context.Background()))
		done.Store(true)
	}()

	time.Sleep(50 * time.Millisecond)
	require.False(t, done.Load(), "maintenance must wait for in-flight operations")

	unlock()
	wg.Wait()
	require.True(t, done.Load())
}

func TestMaintenanceCoordinator_Background(t *testing.T) {
	m, _ := newMaintenanceTestDB(t, 10)
	m.config.Enabled = true
	m.config.CheckInterval = common.NewDuration(20 * time.Millisecond)

	require.NoError(t, m.Start(context.Background()))
	require.Eventually(t, func() bool { return m.Stats().Runs >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Stop())
}

func TestMaintenanceCoordinator_CancelledContext(t *testing.T) {
	m, _ := newMaintenanceTestDB(t, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, m.RunMaintenance(ctx), context.Canceled)
}
