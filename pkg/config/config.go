package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
)

const (
	// DefaultTokenAddress is the USDC contract on Base.
	DefaultTokenAddress = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"

	// DefaultStartBlock is used when no checkpoint has been saved yet.
	DefaultStartBlock = 16913050

	// DefaultBlockRange is the widest eth_getLogs window requested from the provider.
	DefaultBlockRange = 2000

	LiveModeSubscribe = "subscribe"
	LiveModePoll      = "poll"

	CheckpointBackendFile   = "file"
	CheckpointBackendSQLite = "sqlite"
)

// Config represents the complete configuration for the paywall service.
type Config struct {
	// Chain contains the blockchain provider and token settings
	Chain ChainConfig `yaml:"chain" json:"chain" toml:"chain"`

	// Watcher contains the payment watcher settings
	Watcher WatcherConfig `yaml:"watcher" json:"watcher" toml:"watcher"`

	// DB contains the marketplace database configuration
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// Maintenance contains optional database maintenance settings
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`

	// Identity configures the frame action validator used to resolve buyers and sellers
	Identity *IdentityConfig `yaml:"identity,omitempty" json:"identity,omitempty" toml:"identity,omitempty"`

	// API contains REST API server configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// ChainConfig represents the chain provider and the watched token.
type ChainConfig struct {
	// RPCURL is the Ethereum RPC endpoint URL (http(s) or ws(s))
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// TokenAddress is the ERC20 contract whose Transfer events are watched
	TokenAddress string `yaml:"token_address" json:"token_address" toml:"token_address"`

	// TokenDecimals is the fixed-point precision of the token (6 for USDC)
	TokenDecimals int32 `yaml:"token_decimals" json:"token_decimals" toml:"token_decimals"`

	// Finality specifies the head used by the watcher: "finalized", "safe", or "latest"
	Finality string `yaml:"finality" json:"finality" toml:"finality"`

	// FinalizedLag is the number of blocks behind head to consider final.
	// Only used when Finality is set to "latest"
	FinalizedLag uint64 `yaml:"finalized_lag" json:"finalized_lag" toml:"finalized_lag"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`
}

// ApplyDefaults sets default values for optional chain configuration fields.
func (c *ChainConfig) ApplyDefaults() {
	if c.TokenAddress == "" {
		c.TokenAddress = DefaultTokenAddress
	}
	if c.TokenDecimals == 0 {
		c.TokenDecimals = 6
	}
	if c.Finality == "" {
		c.Finality = "latest"
	}
	if c.Retry == nil {
		c.Retry = &RetryConfig{}
	}
	c.Retry.ApplyDefaults()
}

// Validate checks the chain configuration.
func (c *ChainConfig) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("chain.rpc_url is required")
	}
	if !common.IsHexAddress(c.TokenAddress) {
		return fmt.Errorf("chain.token_address is not a valid address: %q", c.TokenAddress)
	}
	if c.TokenDecimals < 1 || c.TokenDecimals > 18 {
		return fmt.Errorf("chain.token_decimals must be between 1 and 18")
	}
	if c.Finality != "finalized" && c.Finality != "safe" && c.Finality != "latest" {
		return fmt.Errorf("chain.finality must be one of: 'finalized', 'safe', or 'latest'")
	}
	return nil
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff icommon.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff icommon.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = icommon.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = icommon.NewDuration(30 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// WatcherConfig configures the payment watcher.
type WatcherConfig struct {
	// StartBlock is the first block scanned when no checkpoint exists.
	// Unset means DefaultStartBlock; 0 scans from genesis.
	StartBlock *uint64 `yaml:"start_block,omitempty" json:"start_block,omitempty" toml:"start_block,omitempty"`

	// BlockRange caps the number of blocks per eth_getLogs request
	BlockRange uint64 `yaml:"block_range" json:"block_range" toml:"block_range"`

	// LiveMode selects how new transfers are followed once caught up: "subscribe" or "poll"
	LiveMode string `yaml:"live_mode" json:"live_mode" toml:"live_mode"`

	// PollInterval is the wait between head checks in poll mode
	PollInterval icommon.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// AddressRefreshInterval is how often the seller address set is re-checked.
	// It bounds how long a new seller's payments can go unnoticed.
	AddressRefreshInterval icommon.Duration `yaml:"address_refresh_interval" json:"address_refresh_interval" toml:"address_refresh_interval"` //nolint:lll

	// Checkpoint configures where the scan position is persisted
	Checkpoint CheckpointConfig `yaml:"checkpoint" json:"checkpoint" toml:"checkpoint"`
}

// ApplyDefaults sets default values for optional watcher configuration fields.
func (w *WatcherConfig) ApplyDefaults() {
	if w.StartBlock == nil {
		start := uint64(DefaultStartBlock)
		w.StartBlock = &start
	}
	if w.BlockRange == 0 {
		w.BlockRange = DefaultBlockRange
	}
	if w.LiveMode == "" {
		w.LiveMode = LiveModePoll
	}
	if w.PollInterval.Duration == 0 {
		w.PollInterval = icommon.NewDuration(4 * time.Second) //nolint:mnd
	}
	if w.AddressRefreshInterval.Duration == 0 {
		w.AddressRefreshInterval = icommon.NewDuration(5 * time.Second) //nolint:mnd
	}
	w.Checkpoint.ApplyDefaults()
}

// FirstBlock returns the block scanned first when no checkpoint exists.
func (w *WatcherConfig) FirstBlock() uint64 {
	if w.StartBlock == nil {
		return DefaultStartBlock
	}
	return *w.StartBlock
}

// Validate checks the watcher configuration.
func (w *WatcherConfig) Validate() error {
	if w.LiveMode != LiveModeSubscribe && w.LiveMode != LiveModePoll {
		return fmt.Errorf("watcher.live_mode must be one of: 'subscribe', 'poll'")
	}
	if w.AddressRefreshInterval.Duration < time.Second {
		return fmt.Errorf("watcher.address_refresh_interval must be at least 1s")
	}
	return w.Checkpoint.Validate()
}

// CheckpointConfig selects the checkpoint backend.
type CheckpointConfig struct {
	// Backend is "file" (default) or "sqlite"
	Backend string `yaml:"backend" json:"backend" toml:"backend"`

	// Path is the checkpoint file, used by the file backend
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for checkpoint configuration.
func (c *CheckpointConfig) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = CheckpointBackendFile
	}
	if c.Backend == CheckpointBackendFile && c.Path == "" {
		c.Path = "state.json"
	}
}

// Validate checks the checkpoint configuration.
func (c *CheckpointConfig) Validate() error {
	switch c.Backend {
	case CheckpointBackendFile:
		if c.Path == "" {
			return fmt.Errorf("watcher.checkpoint.path is required for the file backend")
		}
	case CheckpointBackendSQLite:
	default:
		return fmt.Errorf("watcher.checkpoint.backend must be one of: 'file', 'sqlite'")
	}
	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
}

// Validate checks the database configuration.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	if !slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("db.journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}
	if !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("db.synchronous must be one of: FULL, NORMAL, OFF")
	}
	return nil
}

// MaintenanceConfig configures database maintenance behavior.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often to run maintenance (e.g., "30m", "1h")
	CheckInterval icommon.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = icommon.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if !slices.Contains([]string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}, m.WALCheckpointMode) {
		return fmt.Errorf("maintenance.wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
	}
	return nil
}

// IdentityConfig configures the frame action validation endpoint.
type IdentityConfig struct {
	// URL is the validation endpoint receiving signed frame actions
	URL string `yaml:"url" json:"url" toml:"url"`

	// APIKey is sent in the api_key header
	APIKey string `yaml:"api_key" json:"api_key" toml:"api_key"`

	// Timeout bounds a single validation request
	Timeout icommon.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
}

// ApplyDefaults sets default values for identity configuration.
func (i *IdentityConfig) ApplyDefaults() {
	if i.Timeout.Duration == 0 {
		i.Timeout = icommon.NewDuration(10 * time.Second) //nolint:mnd
	}
}

// Validate checks the identity configuration.
func (i *IdentityConfig) Validate() error {
	if i.URL == "" {
		return fmt.Errorf("identity.url is required")
	}
	if i.APIKey == "" {
		return fmt.Errorf("identity.api_key is required")
	}
	return nil
}

// APIConfig configures the REST API server.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	ReadTimeout  icommon.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout icommon.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout  icommon.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS configures cross-origin requests from the frame UI
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures CORS headers.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for the API configuration.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = icommon.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = icommon.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = icommon.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - watcher: Transfer scanning and reconciliation
	//   - address-book: Seller address set refresh
	//   - ledger: Invoice numbering and payment status
	//   - store: Users, content items and purchases
	//   - checkpoint: Scan position persistence
	//   - rpc: Chain provider calls
	//   - identity: Frame action validation
	//   - api: REST API
	//   - maintenance: Database maintenance
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[icommon.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := icommon.AllComponents[icommon.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[icommon.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if level, ok := l.ComponentLevels[component]; ok {
		return icommon.ToLowerWithTrim(level)
	}
	return l.GetDefaultLevel()
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l.DefaultLevel == "" {
		return "info"
	}
	return icommon.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if !strings.HasPrefix(m.Path, "/") {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Chain.ApplyDefaults()
	c.Watcher.ApplyDefaults()
	c.DB.ApplyDefaults()

	if c.Maintenance != nil {
		c.Maintenance.ApplyDefaults()
	}
	if c.Identity != nil {
		c.Identity.ApplyDefaults()
	}
	if c.API != nil {
		c.API.ApplyDefaults()
	}
	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}
	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return err
	}
	if err := c.Watcher.Validate(); err != nil {
		return err
	}
	if c.Watcher.LiveMode == LiveModeSubscribe && !SupportsSubscriptions(c.Chain.RPCURL) {
		return fmt.Errorf("watcher.live_mode 'subscribe' requires a ws(s) or IPC chain.rpc_url")
	}
	if err := c.DB.Validate(); err != nil {
		return err
	}

	if c.Maintenance != nil {
		if err := c.Maintenance.Validate(); err != nil {
			return err
		}
	}

	if c.API != nil && c.API.Enabled && c.Identity == nil {
		return fmt.Errorf("identity must be configured when the API is enabled")
	}
	if c.Identity != nil {
		if err := c.Identity.Validate(); err != nil {
			return err
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}

// SupportsSubscriptions reports whether the RPC endpoint can push log
// notifications. IPC endpoints are plain file paths.
func SupportsSubscriptions(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "ws", "wss", "":
		return u.Path != "" || u.Host != ""
	default:
		return false
	}
}
