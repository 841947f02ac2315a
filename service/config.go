package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables read into the config.
// SPECSTUDIO_ADDR overrides addr, SPECSTUDIO_STORE_DIR overrides
// store_dir, and so on.
const envPrefix = "SPECSTUDIO_"

// Config holds the service configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `koanf:"addr"`

	// StoreDir is the directory for persisted snapshots. Empty keeps
	// snapshots in memory only.
	StoreDir string `koanf:"store_dir"`

	// DebounceWindow is the quiescence window for live validation over the
	// WebSocket endpoint. Only the last edit within the window triggers a
	// validation pass.
	DebounceWindow time.Duration `koanf:"debounce_window"`

	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		DebounceWindow: 400 * time.Millisecond,
		LogLevel:       "info",
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// and SPECSTUDIO_-prefixed environment variables, in ascending precedence.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("service: load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("service: load environment: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("service: unmarshal config: %w", err)
	}
	return cfg, nil
}
