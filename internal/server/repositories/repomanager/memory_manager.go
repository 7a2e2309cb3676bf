package repomanager

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/memory"
)

// InMemoryRepositoryManager keeps all data in process memory. Data is lost
// when the process exits.
type InMemoryRepositoryManager struct {
	store *memory.Store
	repos *Repositories
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	st := memory.NewStore()
	return &InMemoryRepositoryManager{store: st, repos: bindMemory(st.Session())}
}

func bindMemory(ss *memory.Session) *Repositories {
	return &Repositories{
		Users:        ss.Users(),
		Locations:    ss.Locations(),
		ServerModels: ss.ServerModels(),
		Servers:      ss.Servers(),
		Notes:        ss.Notes(),
		Transfers:    ss.Transfers(),
		Details:      ss.Details(),
		Activities:   ss.Activities(),
		Sequences:    ss.Sequences(),
	}
}

func (m *InMemoryRepositoryManager) Name() string { return "memory" }

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Repositories() *Repositories { return m.repos }

// WithTx holds the store lock for the whole of fn, so units of work are
// serialised.
func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.store.Atomic(func(ss *memory.Session) error {
		return fn(ctx, bindMemory(ss))
	})
}

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Close() error { return nil }
