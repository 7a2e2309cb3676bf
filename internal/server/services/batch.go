package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/activity"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
)

// CreateBatchServers creates Quantity identical servers of one model at one
// location, each with a generated identifier and its own add activity.
//
// Identifiers are reserved in a unit of work of their own that commits before
// the servers are written, so a failed batch consumes its sequence values on
// every backend and they are never handed out again. Unknown references and
// exceeded capacity are rejected before anything is reserved. The server
// writes are all or nothing: capacity is checked again inside the
// transaction and any failure rolls back every server already written.
func (s *Inventory) CreateBatchServers(ctx context.Context, in BatchInput, userID *int64) ([]*models.Server, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if in.Quantity > s.maxBatch {
		return nil, invalid("quantity %d exceeds the batch limit of %d", in.Quantity, s.maxBatch)
	}

	if _, _, err := batchTarget(ctx, s.repos(), in); err != nil {
		return nil, err
	}

	serials, err := s.reserveServerIDs(ctx, in.Quantity)
	if err != nil {
		return nil, err
	}

	var created []*models.Server
	err = s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		model, loc, err := batchTarget(ctx, r, in)
		if err != nil {
			return err
		}

		now := s.timestamp()
		created = make([]*models.Server, 0, in.Quantity)
		for _, serial := range serials {
			locationID := loc.ID
			srv := &models.Server{
				ServerID:   serial,
				Model:      model.Name,
				Specs:      model.Specs,
				LocationID: &locationID,
				Status:     in.Status,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if _, err := r.Servers.Create(ctx, srv); err != nil {
				return fmt.Errorf("create server %s: %w", serial, err)
			}
			if err := s.record(ctx, r, userID, activity.ServerAdded(srv)); err != nil {
				return err
			}
			created = append(created, srv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "batch created", "model_id", in.ModelID, "location_id", in.LocationID, "quantity", len(created))
	return created, nil
}

// batchTarget resolves the model and location of a batch and checks that the
// location has room for it.
func batchTarget(ctx context.Context, r *repomanager.Repositories, in BatchInput) (*models.ServerModel, *models.Location, error) {
	model, err := r.ServerModels.GetByID(ctx, in.ModelID)
	if err != nil {
		return nil, nil, named(err, "server model", in.ModelID)
	}
	loc, err := r.Locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, nil, named(err, "location", in.LocationID)
	}

	current, err := r.Servers.CountByLocation(ctx, loc.ID)
	if err != nil {
		return nil, nil, err
	}
	if current+in.Quantity > loc.Capacity {
		return nil, nil, fmt.Errorf("%w: %s holds %d of %d, cannot add %d",
			common.ErrorCapacityExceeded, loc.Name, current, loc.Capacity, in.Quantity)
	}
	return model, loc, nil
}

// reserveServerIDs draws n free identifiers and commits the sequence
// advance immediately.
func (s *Inventory) reserveServerIDs(ctx context.Context, n int) ([]string, error) {
	serials := make([]string, 0, n)
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		for range n {
			serial, err := s.ids.Next(ctx, r.Sequences, r.Servers)
			if err != nil {
				return fmt.Errorf("generate server id: %w", err)
			}
			serials = append(serials, serial)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return serials, nil
}
