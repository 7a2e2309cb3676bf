// Package repomanager binds the per-entity repositories to a storage backend
// and provides the unit of work every mutating inventory operation runs in.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/activities"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/details"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/locations"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/notes"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/sequences"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/servermodels"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/servers"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/transfers"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/users"
)

// Repositories is one consistent set of repositories. Inside WithTx every
// member shares the same transaction.
type Repositories struct {
	Users        users.Repository
	Locations    locations.Repository
	ServerModels servermodels.Repository
	Servers      servers.Repository
	Notes        notes.Repository
	Transfers    transfers.Repository
	Details      details.Repository
	Activities   activities.Repository
	Sequences    sequences.Repository
}

type RepositoryManager interface {
	// Name identifies the backend in logs.
	Name() string
	// RunMigrations prepares the schema. It is a no-op for backends without one.
	RunMigrations(ctx context.Context) error
	// Repositories returns repositories that run each call on its own.
	Repositories() *Repositories
	// WithTx runs fn as a single unit of work: either everything fn wrote is
	// kept or, when fn returns an error, none of it is.
	WithTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error
	Ping(ctx context.Context) error
	Close() error
}
