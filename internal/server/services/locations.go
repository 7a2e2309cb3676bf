package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
)

func (s *Inventory) CreateLocation(ctx context.Context, in LocationInput) (*models.Location, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	l := &models.Location{
		Name:      in.Name,
		Type:      in.Type,
		Address:   in.Address,
		Capacity:  in.Capacity,
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: s.timestamp(),
	}
	if _, err := s.repos().Locations.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create location %q: %w", in.Name, err)
	}
	return l, nil
}

func (s *Inventory) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	l, err := s.repos().Locations.GetByID(ctx, id)
	if err != nil {
		return nil, named(err, "location", id)
	}
	return l, nil
}

func (s *Inventory) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return s.repos().Locations.List(ctx)
}

// ListLocationSummaries pairs every location with its current server count.
func (s *Inventory) ListLocationSummaries(ctx context.Context) ([]*models.LocationSummary, error) {
	r := s.repos()

	locs, err := r.Locations.List(ctx)
	if err != nil {
		return nil, err
	}
	servers, err := r.Servers.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(locs))
	for _, srv := range servers {
		if srv.LocationID != nil {
			counts[*srv.LocationID]++
		}
	}

	out := make([]*models.LocationSummary, 0, len(locs))
	for _, l := range locs {
		out = append(out, &models.LocationSummary{Location: *l, ServerCount: counts[l.ID]})
	}
	return out, nil
}

func (s *Inventory) UpdateLocation(ctx context.Context, id int64, in LocationInput) (*models.Location, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	l, err := s.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Name = in.Name
	l.Type = in.Type
	l.Address = in.Address
	l.Capacity = in.Capacity
	if in.IsActive != nil {
		l.IsActive = *in.IsActive
	}
	if err := s.repos().Locations.Update(ctx, l); err != nil {
		return nil, named(err, "location", id)
	}
	return l, nil
}

// DeleteLocation refuses while servers are assigned to the location.
func (s *Inventory) DeleteLocation(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		n, err := r.Servers.CountByLocation(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: location %d has %d servers", common.ErrorReferentialConflict, id, n)
		}
		deleted, err = r.Locations.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *Inventory) CreateServerModel(ctx context.Context, in ServerModelInput) (*models.ServerModel, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	m := &models.ServerModel{Name: in.Name, Brand: in.Brand, Specs: in.Specs, CreatedAt: s.timestamp()}
	if _, err := s.repos().ServerModels.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create server model %q: %w", in.Name, err)
	}
	return m, nil
}

func (s *Inventory) GetServerModel(ctx context.Context, id int64) (*models.ServerModel, error) {
	m, err := s.repos().ServerModels.GetByID(ctx, id)
	if err != nil {
		return nil, named(err, "server model", id)
	}
	return m, nil
}

func (s *Inventory) ListServerModels(ctx context.Context) ([]*models.ServerModel, error) {
	return s.repos().ServerModels.List(ctx)
}

// UpdateServerModel refuses to rename a model that servers still refer to,
// since servers store the model by name.
func (s *Inventory) UpdateServerModel(ctx context.Context, id int64, in ServerModelInput) (*models.ServerModel, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	var m *models.ServerModel
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		var err error
		m, err = r.ServerModels.GetByID(ctx, id)
		if err != nil {
			return named(err, "server model", id)
		}
		if in.Name != m.Name {
			n, err := r.Servers.CountByModel(ctx, m.Name)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: model %q is used by %d servers", common.ErrorReferentialConflict, m.Name, n)
			}
		}
		m.Name = in.Name
		m.Brand = in.Brand
		m.Specs = in.Specs
		return r.ServerModels.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteServerModel refuses while any server uses the model.
func (s *Inventory) DeleteServerModel(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		m, err := r.ServerModels.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		n, err := r.Servers.CountByModel(ctx, m.Name)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: model %q is used by %d servers", common.ErrorReferentialConflict, m.Name, n)
		}
		deleted, err = r.ServerModels.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
