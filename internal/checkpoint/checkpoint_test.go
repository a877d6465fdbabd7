package checkpoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/ChainPaywall/pkg/checkpoint"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	"github.com/goran-ethernal/ChainPaywall/tests/helpers"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) pkgcheckpoint.Store{
		config.CheckpointBackendFile: func(t *testing.T) pkgcheckpoint.Store {
			t.Helper()
			cfg := config.CheckpointConfig{
				Backend: config.CheckpointBackendFile,
				Path:    filepath.Join(t.TempDir(), "nested", "state.json"),
			}
			store, err := New(cfg, nil, nil, logger.NewNopLogger())
			require.NoError(t, err)
			return store
		},
		config.CheckpointBackendSQLite: func(t *testing.T) pkgcheckpoint.Store {
			t.Helper()
			cfg := config.CheckpointConfig{Backend: config.CheckpointBackendSQLite}
			store, err := New(cfg, helpers.NewTestDB(t), nil, logger.NewNopLogger())
			require.NoError(t, err)
			return store
		},
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, found, err := store.Load(ctx)
			require.NoError(t, err)
			require.False(t, found)

			require.NoError(t, store.Save(ctx, 16913050))
			require.NoError(t, store.Save(ctx, 16915051))

			next, found, err := store.Load(ctx)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, uint64(16915051), next)
		})
	}
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := NewFileStore(path, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, 101))

	second, err := NewFileStore(path, logger.NewNopLogger())
	require.NoError(t, err)

	next, found, err := second.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(101), next)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"next_block":101`)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path, logger.NewNopLogger())
	require.NoError(t, err)

	_, _, err = store.Load(context.Background())
	require.Error(t, err)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(config.CheckpointConfig{Backend: "redis"}, nil, nil, logger.NewNopLogger())
	require.Error(t, err)
}
