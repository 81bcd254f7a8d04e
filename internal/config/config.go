// Package config loads the todod configuration.
//
// Values are layered in priority order:
//  1. Defaults
//  2. Config file (--config; .yaml, .yml or .toml)
//  3. Environment variables (TODOD_*)
//  4. Command-line flag overrides
//
// The merged result is checked against an embedded CUE schema.
package config

import (
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server   Server   `yaml:"server" toml:"server" json:"server"`
	Database Database `yaml:"database" toml:"database" json:"database"`
	Log      Log      `yaml:"log" toml:"log" json:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `yaml:"addr" toml:"addr" json:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" toml:"idle_timeout" json:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" toml:"max_body_bytes" json:"max_body_bytes"`
}

// Database configures the SQLite store.
type Database struct {
	Path        string        `yaml:"path" toml:"path" json:"path"`
	Driver      string        `yaml:"driver" toml:"driver" json:"driver"`
	BusyTimeout time.Duration `yaml:"busy_timeout" toml:"busy_timeout" json:"busy_timeout"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"` // "json" | "console"
}

// Default values.
const (
	DefaultAddr            = ":5000"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
	DefaultDatabasePath    = "instance/todos.db"
	DefaultDriver          = "sqlite3"
	DefaultBusyTimeout     = 5 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
)

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
		Database: Database{
			Path:        DefaultDatabasePath,
			Driver:      DefaultDriver,
			BusyTimeout: DefaultBusyTimeout,
		},
		Log: Log{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
