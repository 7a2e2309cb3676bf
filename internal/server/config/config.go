// Package config handles configuration for the server component: defaults,
// then environment (.env aware), then an optional JSON file, then
// command-line flags. Each later source overrides the earlier ones.
package config

import (
	"fmt"
	"time"
)

// Storage backends accepted by StorageBackend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds runtime settings for the srvtrack server.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP API.
//   - StorageBackend: one of memory, postgres, sqlite.
//   - DatabaseDSN: pgx DSN for postgres, file path for sqlite.
//   - LogLevel / LogFormat: debug|info|warn|error and text|json|zap.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - MaxBatchSize: upper bound of one CreateBatchServers call.
//   - AdminUsername / AdminPassword: account seeded into an empty user table.
//     An empty password is replaced by a random one at seed time.
type Config struct {
	HTTPAddr        string
	StorageBackend  string
	DatabaseDSN     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	MaxBatchSize    int
	AdminUsername   string
	AdminPassword   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.StorageBackend = BackendMemory
	c.DatabaseDSN = ""
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ShutdownTimeout = 10 * time.Second
	c.MaxBatchSize = 500
	c.AdminUsername = "admin"
	c.AdminPassword = ""
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres, BackendSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("storage backend %q requires a database DSN", c.StorageBackend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("max batch size must be positive, got %d", c.MaxBatchSize)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
