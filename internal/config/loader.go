package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/ChainPaywall/pkg/config"
	"gopkg.in/yaml.v3"
)

// Environment variables that override secrets and endpoints from the config file.
const (
	EnvRPCURL         = "PAYWALL_RPC_URL"
	EnvIdentityAPIKey = "PAYWALL_IDENTITY_API_KEY"
)

type decodeFunc func(data []byte, cfg *pkgconfig.Config) error

var decoders = map[string]decodeFunc{
	".yaml": func(data []byte, cfg *pkgconfig.Config) error { return yaml.Unmarshal(data, cfg) },
	".yml":  func(data []byte, cfg *pkgconfig.Config) error { return yaml.Unmarshal(data, cfg) },
	".json": func(data []byte, cfg *pkgconfig.Config) error { return json.Unmarshal(data, cfg) },
	".toml": func(data []byte, cfg *pkgconfig.Config) error { return toml.Unmarshal(data, cfg) },
}

// LoadFromFile loads configuration from a file, picking the format by extension.
// Supported formats: .yaml, .yml, .json, .toml
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}

	return load(path, strings.ToUpper(strings.TrimPrefix(ext, ".")), decode)
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	return load(path, "YAML", decoders[".yaml"])
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	return load(path, "JSON", decoders[".json"])
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	return load(path, "TOML", decoders[".toml"])
}

func load(path, format string, decode decodeFunc) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", format, err)
	}

	applyEnv(&cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnv keeps provider URLs with embedded keys and the identity API key out of config files.
func applyEnv(cfg *pkgconfig.Config) {
	if url := os.Getenv(EnvRPCURL); url != "" {
		cfg.Chain.RPCURL = url
	}
	if key := os.Getenv(EnvIdentityAPIKey); key != "" && cfg.Identity != nil {
		cfg.Identity.APIKey = key
	}
}
