package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_Examples(t *testing.T) {
	for _, path := range []string{
		"../../config.example.yaml",
		"../../config.example.json",
		"../../config.example.toml",
	} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			cfg, err := LoadFromFile(path)
			require.NoError(t, err)
			validateConfig(t, cfg, filepath.Ext(path))
		})
	}
}

func TestLoadFromFile_UnsupportedFormat(t *testing.T) {
	_, err := LoadFromFile("config.txt")
	require.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadFromYAML_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain:\n  rpc_url: \"\"\ndb:\n  path: x.db\n"), 0o600))

	_, err := LoadFromYAML(path)
	require.ErrorContains(t, err, "chain.rpc_url is required")
}

// validateConfig checks that the loaded config has expected values
func validateConfig(t *testing.T, cfg *config.Config, format string) {
	t.Helper()

	require.NotEmpty(t, cfg.Chain.RPCURL, "[%s] chain.rpc_url should not be empty", format)
	require.Equal(t, config.DefaultTokenAddress, cfg.Chain.TokenAddress, "[%s] token address", format)
	require.Equal(t, int32(6), cfg.Chain.TokenDecimals, "[%s] token decimals", format)
	require.NotNil(t, cfg.Chain.Retry, "[%s] retry defaults", format)

	require.Equal(t, uint64(config.DefaultStartBlock), cfg.Watcher.FirstBlock(), "[%s] start block", format)
	require.Equal(t, uint64(config.DefaultBlockRange), cfg.Watcher.BlockRange, "[%s] block range", format)
	require.Equal(t, 5*time.Second, cfg.Watcher.AddressRefreshInterval.Duration, "[%s] refresh interval", format)
	require.NotEmpty(t, cfg.Watcher.Checkpoint.Backend, "[%s] checkpoint backend", format)

	require.NotEmpty(t, cfg.DB.Path, "[%s] db.path should not be empty", format)
	require.NotEmpty(t, cfg.DB.JournalMode, "[%s] db.journal_mode should have default value", format)
	require.NotEmpty(t, cfg.DB.Synchronous, "[%s] db.synchronous should have default value", format)

	require.NotNil(t, cfg.Identity, "[%s] identity", format)
	require.NotNil(t, cfg.API, "[%s] api", format)
	require.True(t, cfg.API.Enabled, "[%s] api enabled", format)
	require.NotNil(t, cfg.Logging, "[%s] logging", format)
	require.Equal(t, "debug", cfg.Logging.GetComponentLevel("watcher"), "[%s] watcher level", format)
}

func TestConfigDefaults(t *testing.T) {
	cfg := &config.Config{
		Chain: config.ChainConfig{RPCURL: "https://test.com"},
		DB:    config.DatabaseConfig{Path: "./test.db"},
	}

	cfg.ApplyDefaults()

	require.Equal(t, "latest", cfg.Chain.Finality)
	require.Equal(t, 5, cfg.Chain.Retry.MaxAttempts)
	require.Equal(t, config.LiveModePoll, cfg.Watcher.LiveMode)
	require.Equal(t, config.CheckpointBackendFile, cfg.Watcher.Checkpoint.Backend)
	require.Equal(t, "state.json", cfg.Watcher.Checkpoint.Path)
	require.Equal(t, "WAL", cfg.DB.JournalMode)
	require.Equal(t, "NORMAL", cfg.DB.Synchronous)
	require.Equal(t, 5000, cfg.DB.BusyTimeout)
	require.Equal(t, 25, cfg.DB.MaxOpenConnections)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Chain: config.ChainConfig{RPCURL: "https://test.com"},
			DB:    config.DatabaseConfig{Path: "./test.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(*config.Config) {}},
		{
			name:    "missing rpc_url",
			mutate:  func(c *config.Config) { c.Chain.RPCURL = "" },
			wantErr: "chain.rpc_url",
		},
		{
			name:    "invalid finality",
			mutate:  func(c *config.Config) { c.Chain.Finality = "invalid" },
			wantErr: "chain.finality",
		},
		{
			name:    "invalid token address",
			mutate:  func(c *config.Config) { c.Chain.TokenAddress = "0x1234" },
			wantErr: "chain.token_address",
		},
		{
			name:    "invalid live mode",
			mutate:  func(c *config.Config) { c.Watcher.LiveMode = "push" },
			wantErr: "watcher.live_mode",
		},
		{
			name: "subscribe over http",
			mutate: func(c *config.Config) {
				c.Watcher.LiveMode = config.LiveModeSubscribe
			},
			wantErr: "requires a ws(s) or IPC chain.rpc_url",
		},
		{
			name: "subscribe over websocket",
			mutate: func(c *config.Config) {
				c.Chain.RPCURL = "wss://base.example.com"
				c.Watcher.LiveMode = config.LiveModeSubscribe
			},
		},
		{
			name: "subscribe over ipc",
			mutate: func(c *config.Config) {
				c.Chain.RPCURL = "/var/run/geth.ipc"
				c.Watcher.LiveMode = config.LiveModeSubscribe
			},
		},
		{
			name:    "invalid checkpoint backend",
			mutate:  func(c *config.Config) { c.Watcher.Checkpoint.Backend = "redis" },
			wantErr: "watcher.checkpoint.backend",
		},
		{
			name: "api without identity",
			mutate: func(c *config.Config) {
				c.API = &config.APIConfig{Enabled: true}
			},
			wantErr: "identity must be configured",
		},
		{
			name: "unknown logging component",
			mutate: func(c *config.Config) {
				c.Logging = &config.LoggingConfig{ComponentLevels: map[string]string{"downloader": "debug"}}
			},
			wantErr: "unknown component",
		},
		{
			name:    "missing db path",
			mutate:  func(c *config.Config) { c.DB.Path = "" },
			wantErr: "db.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			cfg.ApplyDefaults()

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv(EnvRPCURL, "wss://base.example.com/v1/secret")
	t.Setenv(EnvIdentityAPIKey, "from-env")

	cfg, err := LoadFromFile("../../config.example.yaml")
	require.NoError(t, err)
	require.Equal(t, "wss://base.example.com/v1/secret", cfg.Chain.RPCURL)
	require.Equal(t, "from-env", cfg.Identity.APIKey)
}

func TestLoadFromYAML_StartBlock(t *testing.T) {
	tests := []struct {
		name     string
		watcher  string
		expected uint64
	}{
		{"unset", "", config.DefaultStartBlock},
		{"genesis", "watcher:\n  start_block: 0\n", 0},
		{"explicit", "watcher:\n  start_block: 42\n", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			body := "chain:\n  rpc_url: \"http://localhost:8545\"\ndb:\n  path: x.db\n" + tt.watcher
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

			cfg, err := LoadFromYAML(path)
			require.NoError(t, err)
			require.NotNil(t, cfg.Watcher.StartBlock)
			require.Equal(t, tt.expected, cfg.Watcher.FirstBlock())
		})
	}
}
