package memory

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

type Servers struct{ ss *Session }

func cloneServer(s models.Server) *models.Server {
	s.LocationID = copyPtr(s.LocationID)
	return &s
}

func (r *Servers) Create(ctx context.Context, s *models.Server) (*models.Server, error) {
	defer r.ss.lock()()

	for _, existing := range r.ss.s.servers {
		if existing.ServerID == s.ServerID {
			return nil, common.ErrorDuplicateIdentifier
		}
	}
	s.ID = r.ss.nextID("servers")
	put(r.ss, r.ss.s.servers, s.ID, *cloneServer(*s))
	return s, nil
}

func (r *Servers) GetByID(ctx context.Context, id int64) (*models.Server, error) {
	defer r.ss.lock()()

	s, ok := r.ss.s.servers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneServer(s), nil
}

func (r *Servers) GetBySerial(ctx context.Context, serverID string) (*models.Server, error) {
	defer r.ss.lock()()

	found := collect(r.ss.s.servers, func(s models.Server) bool { return s.ServerID == serverID }, cloneServer)
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *Servers) List(ctx context.Context) ([]*models.Server, error) {
	defer r.ss.lock()()
	return collect(r.ss.s.servers, nil, cloneServer), nil
}

func (r *Servers) ListByLocation(ctx context.Context, locationID int64) ([]*models.Server, error) {
	defer r.ss.lock()()
	return collect(r.ss.s.servers, func(s models.Server) bool { return samePtr(s.LocationID, locationID) }, cloneServer), nil
}

func (r *Servers) count(match func(models.Server) bool) int {
	n := 0
	for _, s := range r.ss.s.servers {
		if match(s) {
			n++
		}
	}
	return n
}

func (r *Servers) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	defer r.ss.lock()()
	return r.count(func(s models.Server) bool { return samePtr(s.LocationID, locationID) }), nil
}

func (r *Servers) CountByModel(ctx context.Context, model string) (int, error) {
	defer r.ss.lock()()
	return r.count(func(s models.Server) bool { return s.Model == model }), nil
}

// Update writes every mutable field of s. ServerID and CreatedAt are kept.
func (r *Servers) Update(ctx context.Context, s *models.Server) error {
	defer r.ss.lock()()

	cur, ok := r.ss.s.servers[s.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Model = s.Model
	cur.Specs = s.Specs
	cur.LocationID = copyPtr(s.LocationID)
	cur.Status = s.Status
	cur.IPAddress = s.IPAddress
	cur.Username = s.Username
	cur.Password = s.Password
	cur.UpdatedAt = s.UpdatedAt
	put(r.ss, r.ss.s.servers, cur.ID, cur)
	return nil
}

func (r *Servers) Delete(ctx context.Context, id int64) (bool, error) {
	defer r.ss.lock()()
	return remove(r.ss, r.ss.s.servers, id), nil
}
