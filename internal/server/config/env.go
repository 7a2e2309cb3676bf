package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr        = "SRVTRACK_HTTP_ADDR"
	EnvStorageBackend  = "SRVTRACK_STORAGE"
	EnvDatabaseDSN     = "SRVTRACK_DATABASE_DSN"
	EnvLogLevel        = "SRVTRACK_LOG_LEVEL"
	EnvLogFormat       = "SRVTRACK_LOG_FORMAT"
	EnvShutdownTimeout = "SRVTRACK_SHUTDOWN_TIMEOUT"
	EnvMaxBatchSize    = "SRVTRACK_MAX_BATCH_SIZE"
	EnvAdminUsername   = "SRVTRACK_ADMIN_USERNAME"
	EnvAdminPassword   = "SRVTRACK_ADMIN_PASSWORD"
)

// parseEnv overlays SRVTRACK_* variables onto config. A .env file in the
// working directory is loaded first; variables already set in the process
// environment win over it. Malformed numeric or duration values panic, like
// the other sources.
func parseEnv(config *Config) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString(&config.HTTPAddr, EnvHTTPAddr)
	setString(&config.StorageBackend, EnvStorageBackend)
	setString(&config.DatabaseDSN, EnvDatabaseDSN)
	setString(&config.LogLevel, EnvLogLevel)
	setString(&config.LogFormat, EnvLogFormat)
	setString(&config.AdminUsername, EnvAdminUsername)
	setString(&config.AdminPassword, EnvAdminPassword)

	if v, ok := os.LookupEnv(EnvShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.ShutdownTimeout = d
	}

	if v, ok := os.LookupEnv(EnvMaxBatchSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.MaxBatchSize = n
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
