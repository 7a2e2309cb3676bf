// Package services holds the inventory engine. Inventory implements every
// business rule once, on top of whichever repomanager backend it is given,
// and records an activity inside the same unit of work as each mutation.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/logging"
	"github.com/dmitrijs2005/srvtrack/internal/server/activity"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/srvtrack/internal/server/serverid"
	"github.com/dmitrijs2005/srvtrack/internal/validation"
)

// DefaultMaxBatchSize caps CreateBatchServers when no limit is configured.
const DefaultMaxBatchSize = 500

// unassigned names the source of a transfer for servers without a location.
const unassigned = "unassigned"

type Inventory struct {
	rm       repomanager.RepositoryManager
	logger   logging.Logger
	validate *validation.Validator
	policy   TransitionPolicy
	recorder *activity.Recorder
	ids      *serverid.Generator
	now      func() time.Time
	maxBatch int
}

type Option func(*Inventory)

func WithLogger(l logging.Logger) Option {
	return func(s *Inventory) { s.logger = l }
}

// WithClock replaces time.Now for every timestamp the engine writes.
func WithClock(now func() time.Time) Option {
	return func(s *Inventory) { s.now = now }
}

func WithTransitionPolicy(p TransitionPolicy) Option {
	return func(s *Inventory) { s.policy = p }
}

func WithMaxBatchSize(n int) Option {
	return func(s *Inventory) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

func WithValidator(v *validation.Validator) Option {
	return func(s *Inventory) { s.validate = v }
}

func NewInventory(rm repomanager.RepositoryManager, opts ...Option) *Inventory {
	s := &Inventory{
		rm:       rm,
		logger:   logging.Nop(),
		policy:   PermissiveTransitions{},
		now:      time.Now,
		maxBatch: DefaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validate == nil {
		s.validate = validation.New()
	}
	s.logger = s.logger.With("module", "inventory", "backend", rm.Name())
	s.recorder = activity.NewRecorder(s.now)
	s.ids = serverid.NewGenerator(s.now)
	return s
}

// timestamp is the engine clock in UTC, truncated to what both backends
// can store without loss.
func (s *Inventory) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Inventory) repos() *repomanager.Repositories {
	return s.rm.Repositories()
}

func (s *Inventory) tx(ctx context.Context, fn func(ctx context.Context, r *repomanager.Repositories) error) error {
	return s.rm.WithTx(ctx, fn)
}

func (s *Inventory) record(ctx context.Context, r *repomanager.Repositories, userID *int64, e activity.Entry) error {
	_, err := s.recorder.Record(ctx, r.Activities, userID, e)
	return err
}

// Ping reports whether the storage backend is reachable.
func (s *Inventory) Ping(ctx context.Context) error {
	return s.rm.Ping(ctx)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

// notFound wraps common.ErrorNotFound with the kind and id of the entity.
func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, common.ErrorNotFound)
}

// named rewrites a bare not-found from a repository into one naming the
// entity and passes every other error through.
func named(err error, kind string, id any) error {
	if errors.Is(err, common.ErrorNotFound) {
		return notFound(kind, id)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
