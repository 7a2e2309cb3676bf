package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/srvtrack/internal/flagx"
	"github.com/dmitrijs2005/srvtrack/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	StorageBackend  string         `json:"storage"`
	DatabaseDSN     string         `json:"database_dsn"`
	LogLevel        string         `json:"log_level"`
	LogFormat       string         `json:"log_format"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	MaxBatchSize    int            `json:"max_batch_size"`
	AdminUsername   string         `json:"admin_username"`
	AdminPassword   string         `json:"admin_password"`
}

// parseJson loads the file named by -c/-config into config. Only fields
// present (non-zero) in the file override existing values. Unreadable files
// and invalid JSON panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.HTTPAddr, c.HTTPAddr)
	overlay(&config.StorageBackend, c.StorageBackend)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.LogFormat, c.LogFormat)
	overlay(&config.ShutdownTimeout, c.ShutdownTimeout.Duration)
	overlay(&config.MaxBatchSize, c.MaxBatchSize)
	overlay(&config.AdminUsername, c.AdminUsername)
	overlay(&config.AdminPassword, c.AdminPassword)
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
