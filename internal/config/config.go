// Package config provides configuration loading for timetrack.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/Brottuetchen/TimeTrack/internal/aggregator"
)

// PrivacyIndefinite marks privacy mode with no expiry.
const PrivacyIndefinite = "indefinite"

// Config is the full timetrack configuration
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Aggregation aggregator.Config `koanf:"aggregation"`
	Privacy     PrivacyConfig     `koanf:"privacy"`
}

// ServerConfig holds the HTTP API listen address
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// DatabaseConfig holds the SQLite database location
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// PrivacyConfig controls which ingested window events are marked private.
// Blacklisted processes are always private; when privacy mode is active
// every event is private.
type PrivacyConfig struct {
	Whitelist        []string `koanf:"whitelist"`
	Blacklist        []string `koanf:"blacklist"`
	PrivacyModeUntil string   `koanf:"privacy_mode_until"` // RFC3339 or "indefinite"
}

// Default returns the built-in configuration defaults
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8420,
		},
		Database: DatabaseConfig{
			Path: "", // resolved to ~/.timetrack/timetrack.db by db.Initialize
		},
		Aggregation: aggregator.DefaultConfig(),
	}
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".timetrack", "config.yaml"), nil
}

// Load reads configuration from the YAML file at path (the default path
// when empty), then overrides with TIMETRACK_-prefixed environment
// variables. A missing file is not an error; defaults apply.
//
// Precedence (highest first): env vars, YAML file, defaults.
// Example: TIMETRACK_SERVER_PORT=9000 -> server.port.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = defaultPath
	}

	k := koanf.New(".")

	if content, err := os.ReadFile(path); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider("TIMETRACK_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "TIMETRACK_")
		s = strings.ToLower(s)
		// First underscore separates section from key: SERVER_PORT ->
		// server.port, AGGREGATION_MAX_BREAK_MINUTES -> aggregation.max_break_minutes
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return cfg, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// PrivacyActive reports whether privacy mode is in effect at the given
// time. An unparsable timestamp is treated as inactive.
func (p PrivacyConfig) PrivacyActive(now time.Time) bool {
	if p.PrivacyModeUntil == "" {
		return false
	}
	if strings.EqualFold(p.PrivacyModeUntil, PrivacyIndefinite) {
		return true
	}
	until, err := time.Parse(time.RFC3339, p.PrivacyModeUntil)
	if err != nil {
		return false
	}
	return now.Before(until)
}

// IsProcessPrivate reports whether events of the given process must be
// stored as private. Blacklist wins over whitelist; with a non-empty
// whitelist everything not on it is private.
func (p PrivacyConfig) IsProcessPrivate(process string) bool {
	for _, entry := range p.Blacklist {
		if strings.EqualFold(entry, process) {
			return true
		}
	}
	if len(p.Whitelist) > 0 {
		for _, entry := range p.Whitelist {
			if strings.EqualFold(entry, process) {
				return false
			}
		}
		return true
	}
	return false
}
