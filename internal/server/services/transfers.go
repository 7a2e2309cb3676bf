package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/server/activity"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
)

func (s *Inventory) GetServerTransfers(ctx context.Context, serverID int64) ([]*models.ServerTransfer, error) {
	if _, err := s.GetServer(ctx, serverID); err != nil {
		return nil, err
	}
	return s.repos().Transfers.ListByServer(ctx, serverID)
}

// ListTransfers returns every transfer, latest transfer date first.
func (s *Inventory) ListTransfers(ctx context.Context) ([]*models.ServerTransfer, error) {
	return s.repos().Transfers.List(ctx)
}

// CreateTransfer moves a server to another location. The server's location
// becomes the target, its status becomes transit whatever it was before, and
// the transfer activity names both locations. Capacity of the target is not
// checked.
func (s *Inventory) CreateTransfer(ctx context.Context, in TransferInput, userID *int64) (*models.ServerTransfer, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	var transfer *models.ServerTransfer
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, err := r.Servers.GetByID(ctx, in.ServerID)
		if err != nil {
			return named(err, "server", in.ServerID)
		}
		to, err := r.Locations.GetByID(ctx, in.ToLocationID)
		if err != nil {
			return named(err, "location", in.ToLocationID)
		}
		if srv.LocationID != nil && *srv.LocationID == to.ID {
			return invalid("server %s is already at %s", srv.ServerID, to.Name)
		}

		fromName := unassigned
		if srv.LocationID != nil {
			from, err := r.Locations.GetByID(ctx, *srv.LocationID)
			switch {
			case err == nil:
				fromName = from.Name
			case !isNotFound(err):
				return err
			}
		}

		now := s.timestamp()
		date := now
		if in.TransferDate != nil {
			date = in.TransferDate.UTC().Truncate(time.Microsecond)
		}
		transfer = &models.ServerTransfer{
			ServerID:       srv.ID,
			FromLocationID: srv.LocationID,
			ToLocationID:   to.ID,
			TransferredBy:  userID,
			TransferDate:   date,
			Notes:          in.Notes,
			CreatedAt:      now,
		}
		if _, err := r.Transfers.Create(ctx, transfer); err != nil {
			return fmt.Errorf("create transfer: %w", err)
		}

		toID := to.ID
		srv.LocationID = &toID
		srv.Status = models.StatusTransit
		srv.UpdatedAt = now
		if err := r.Servers.Update(ctx, srv); err != nil {
			return fmt.Errorf("move server %s: %w", srv.ServerID, err)
		}

		return s.record(ctx, r, userID, activity.Transferred(srv, fromName, to.Name))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "server transferred", "server", in.ServerID, "to_location", in.ToLocationID)
	return transfer, nil
}
