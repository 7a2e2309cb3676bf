package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   storage backend: memory, postgres or sqlite
//	-d string   database DSN (postgres) or file path (sqlite)
//	-l string   log level
//	-f string   log format: text, json or zap
//	-t int      shutdown timeout, seconds
//	-m int      max batch size
//
// Other flags in os.Args are filtered out with flagx.FilterArgs, so the
// -config flag handled by parseJson does not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-l", "-f", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (memory, postgres, sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN or sqlite file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (text, json, zap)")
	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	fs.IntVar(&config.MaxBatchSize, "m", config.MaxBatchSize, "max servers per batch")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
