package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/srvtrack/internal/dbx"
	"github.com/dmitrijs2005/srvtrack/internal/filex"
	"github.com/dmitrijs2005/srvtrack/internal/server/migrations"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/activities"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/details"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/locations"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/notes"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/sequences"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/servermodels"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/servers"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/transfers"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends SQL-backed repositories bound either to the
// pool or to a transaction, and runs the embedded goose migrations.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect dbx.Dialect
	repos   *Repositories
}

// NewSQLRepositoryManager wraps an already opened database.
func NewSQLRepositoryManager(db *sql.DB, d dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, dialect: d, repos: bindSQL(db, d)}
}

// NewPostgresRepositoryManager opens a pgx pool for dsn and checks that the
// server answers.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*SQLRepositoryManager, error) {
	db, err := sql.Open(dbx.Postgres.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	m := NewSQLRepositoryManager(db, dbx.Postgres)
	if err := m.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// NewSQLiteRepositoryManager opens (creating if needed) the database file at
// path. SQLite allows one writer, so the pool is limited to one connection.
func NewSQLiteRepositoryManager(ctx context.Context, path string) (*SQLRepositoryManager, error) {
	abs, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dbx.SQLite.DriverName, abs)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	m := NewSQLRepositoryManager(db, dbx.SQLite)
	if err := m.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

func bindSQL(db dbx.DBTX, d dbx.Dialect) *Repositories {
	return &Repositories{
		Users:        users.NewSQLRepository(db, d),
		Locations:    locations.NewSQLRepository(db, d),
		ServerModels: servermodels.NewSQLRepository(db, d),
		Servers:      servers.NewSQLRepository(db, d),
		Notes:        notes.NewSQLRepository(db, d),
		Transfers:    transfers.NewSQLRepository(db, d),
		Details:      details.NewSQLRepository(db, d),
		Activities:   activities.NewSQLRepository(db, d),
		Sequences:    sequences.NewSQLRepository(db, d),
	}
}

func (m *SQLRepositoryManager) Name() string { return m.dialect.Name }

func (m *SQLRepositoryManager) DB() *sql.DB { return m.db }

func (m *SQLRepositoryManager) Repositories() *Repositories { return m.repos }

func (m *SQLRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, bindSQL(tx, m.dialect))
	})
}

func (m *SQLRepositoryManager) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", m.dialect.Name, dbx.Classify(err))
	}
	return nil
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, m.dialect.Name); err != nil {
		return err
	}
	return nil
}
