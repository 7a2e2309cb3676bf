// Package server initializes and runs the srvtrack application: it opens the
// configured storage backend, applies migrations, seeds the bootstrap admin
// and serves the HTTP API until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/logging"
	"github.com/dmitrijs2005/srvtrack/internal/server/config"
	"github.com/dmitrijs2005/srvtrack/internal/server/httpapi"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/srvtrack/internal/server/services"
	"github.com/dmitrijs2005/srvtrack/internal/validation"
)

const adminPasswordBytes = 12

type App struct {
	config    *config.Config
	logger    logging.Logger
	manager   repomanager.RepositoryManager
	inventory *services.Inventory
	validator *validation.Validator
}

// NewApp builds every component from c. The storage backend is opened and
// migrated, and the admin account is seeded when no users exist yet.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	rm, err := openManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	v := validation.New()
	inv := services.NewInventory(rm,
		services.WithLogger(logger),
		services.WithValidator(v),
		services.WithMaxBatchSize(c.MaxBatchSize),
	)

	if err := seedAdmin(ctx, inv, logger, c); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	return &App{config: c, logger: logger, manager: rm, inventory: inv, validator: v}, nil
}

// seedAdmin creates the bootstrap admin on an empty user table. Without a
// configured password a random one is generated and logged once.
func seedAdmin(ctx context.Context, inv *services.Inventory, logger logging.Logger, c *config.Config) error {
	password := c.AdminPassword
	generated := password == ""
	if generated {
		var err error
		if password, err = common.MakeRandHexString(adminPasswordBytes); err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
	}

	admin, err := inv.SeedDefaults(ctx, c.AdminUsername, password)
	if err != nil {
		return err
	}
	if admin != nil && generated {
		logger.Warn(ctx, "generated bootstrap admin password", "username", admin.Username, "password", password)
	}
	return nil
}

func openManager(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.StorageBackend {
	case config.BackendPostgres:
		return repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	case config.BackendSQLite:
		return repomanager.NewSQLiteRepositoryManager(ctx, c.DatabaseDSN)
	case config.BackendMemory:
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.HTTPAddr, app.logger, app.inventory, app.validator, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the storage backend.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.manager.Name(), "address", app.config.HTTPAddr)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "close storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
