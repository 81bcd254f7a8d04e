package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "instance/todos.db", cfg.Database.Path)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "todod.yaml", `
server:
  addr: "127.0.0.1:8080"
  shutdown_timeout: 2s
database:
  path: /var/lib/todod/todos.db
  driver: sqlite
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultReadTimeout, cfg.Server.ReadTimeout, "unset keys keep defaults")
	assert.Equal(t, "/var/lib/todod/todos.db", cfg.Database.Path)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "todod.toml", `
[server]
addr = ":9090"
read_timeout = "3s"
max_body_bytes = 4096

[log]
format = "console"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(4096), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_UnknownKeys(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "todod.yaml", "server:\n  adr: \":1\"\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "adr")
	})
	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "todod.toml", "[database]\ndrvier = \"sqlite\"\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.drvier")
	})
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "todod.json", `{}`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "todod.yaml", "server:\n  addr: \":7000\"\n")
	t.Setenv(EnvAddr, ":7001")
	t.Setenv(EnvDBPath, "/tmp/env.db")
	t.Setenv(EnvDBDriver, "sqlite")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvLogFormat, "console")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Server.Addr)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv(EnvAddr, ":7001")

	cfg, err := Load("", func(c *Config) { c.Server.Addr = ":7002" })
	require.NoError(t, err)
	assert.Equal(t, ":7002", cfg.Server.Addr)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad driver", func(c *Config) { c.Database.Driver = "postgres" }, "database.driver"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"addr without port", func(c *Config) { c.Server.Addr = "localhost" }, "server.addr"},
		{"unbracketed ipv6 addr", func(c *Config) { c.Server.Addr = "::1:5000" }, "server.addr"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "server.shutdown_timeout"},
		{"negative read timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }, "server.read_timeout"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}
}

func TestValidate_AcceptsAddrs(t *testing.T) {
	for _, addr := range []string{":5000", "127.0.0.1:8080", "localhost:0", "[::1]:5000", "[::]:80", "[fe80::1%eth0]:5000"} {
		t.Run(addr, func(t *testing.T) {
			cfg := Default()
			cfg.Server.Addr = addr
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoad_InvalidResultRejected(t *testing.T) {
	t.Setenv(EnvDBDriver, "mysql")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
