// Package memory is the ephemeral storage backend: every repository
// interface implemented over maps guarded by a single mutex.
//
// A Session obtained from Store.Session locks per call. Store.Atomic runs a
// whole unit of work under the lock and keeps an undo log, so a unit that
// fails leaves the maps exactly as it found them. Id counters and sequences
// are not rolled back; values are never handed out twice.
package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

type Store struct {
	mu sync.Mutex

	users        map[int64]models.User
	locations    map[int64]models.Location
	serverModels map[int64]models.ServerModel
	servers      map[int64]models.Server
	notes        map[int64]models.ServerNote
	transfers    map[int64]models.ServerTransfer
	details      map[int64]models.ServerDetail
	activities   map[int64]models.Activity

	ids       map[string]int64
	sequences map[string]int64
}

func NewStore() *Store {
	return &Store{
		users:        map[int64]models.User{},
		locations:    map[int64]models.Location{},
		serverModels: map[int64]models.ServerModel{},
		servers:      map[int64]models.Server{},
		notes:        map[int64]models.ServerNote{},
		transfers:    map[int64]models.ServerTransfer{},
		details:      map[int64]models.ServerDetail{},
		activities:   map[int64]models.Activity{},
		ids:          map[string]int64{},
		sequences:    map[string]int64{},
	}
}

// Session binds the repositories to the store.
type Session struct {
	s    *Store
	inTx bool
	undo []func()
}

// Session returns repositories that lock the store on every call.
func (s *Store) Session() *Session {
	return &Session{s: s}
}

// Atomic runs fn while holding the store lock. When fn returns an error or
// panics, every map write made through the session is reverted.
func (s *Store) Atomic(fn func(ss *Session) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ss := &Session{s: s, inTx: true}
	defer func() {
		if p := recover(); p != nil {
			ss.rollback()
			panic(p)
		}
		if err != nil {
			ss.rollback()
		}
	}()

	return fn(ss)
}

func (ss *Session) lock() func() {
	if ss.inTx {
		return func() {}
	}
	ss.s.mu.Lock()
	return ss.s.mu.Unlock
}

func (ss *Session) record(fn func()) {
	if ss.inTx {
		ss.undo = append(ss.undo, fn)
	}
}

func (ss *Session) rollback() {
	for i := len(ss.undo) - 1; i >= 0; i-- {
		ss.undo[i]()
	}
	ss.undo = nil
}

func (ss *Session) nextID(table string) int64 {
	ss.s.ids[table]++
	return ss.s.ids[table]
}

func (ss *Session) Users() *Users               { return &Users{ss: ss} }
func (ss *Session) Locations() *Locations       { return &Locations{ss: ss} }
func (ss *Session) ServerModels() *ServerModels { return &ServerModels{ss: ss} }
func (ss *Session) Servers() *Servers           { return &Servers{ss: ss} }
func (ss *Session) Notes() *Notes               { return &Notes{ss: ss} }
func (ss *Session) Transfers() *Transfers       { return &Transfers{ss: ss} }
func (ss *Session) Details() *Details           { return &Details{ss: ss} }
func (ss *Session) Activities() *Activities     { return &Activities{ss: ss} }
func (ss *Session) Sequences() *Sequences       { return &Sequences{ss: ss} }

func put[V any](ss *Session, m map[int64]V, id int64, v V) {
	old, had := m[id]
	m[id] = v
	ss.record(func() {
		if had {
			m[id] = old
		} else {
			delete(m, id)
		}
	})
}

func remove[V any](ss *Session, m map[int64]V, id int64) bool {
	old, had := m[id]
	if !had {
		return false
	}
	delete(m, id)
	ss.record(func() { m[id] = old })
	return true
}

// removeWhere deletes every value matching match and returns how many went.
func removeWhere[V any](ss *Session, m map[int64]V, match func(V) bool) int64 {
	var n int64
	for _, id := range slices.Sorted(maps.Keys(m)) {
		if match(m[id]) {
			remove(ss, m, id)
			n++
		}
	}
	return n
}

// collect returns copies of the values matching filter, ordered by id.
func collect[V any](m map[int64]V, filter func(V) bool, clone func(V) *V) []*V {
	var out []*V
	for _, id := range slices.Sorted(maps.Keys(m)) {
		v := m[id]
		if filter == nil || filter(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func samePtr(p *int64, v int64) bool {
	return p != nil && *p == v
}
