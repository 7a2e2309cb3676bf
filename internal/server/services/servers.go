package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/srvtrack/internal/server/activity"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
)

func (s *Inventory) GetServer(ctx context.Context, id int64) (*models.Server, error) {
	srv, err := s.repos().Servers.GetByID(ctx, id)
	if err != nil {
		return nil, named(err, "server", id)
	}
	return srv, nil
}

func (s *Inventory) GetServerBySerial(ctx context.Context, serverID string) (*models.Server, error) {
	srv, err := s.repos().Servers.GetBySerial(ctx, serverID)
	if err != nil {
		return nil, named(err, "server", serverID)
	}
	return srv, nil
}

func (s *Inventory) ListServers(ctx context.Context) ([]*models.Server, error) {
	return s.repos().Servers.List(ctx)
}

func (s *Inventory) GetServersByLocation(ctx context.Context, locationID int64) ([]*models.Server, error) {
	if _, err := s.repos().Locations.GetByID(ctx, locationID); err != nil {
		return nil, named(err, "location", locationID)
	}
	return s.repos().Servers.ListByLocation(ctx, locationID)
}

// requireLocation checks that an optional location reference resolves.
func requireLocation(ctx context.Context, r *repomanager.Repositories, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := r.Locations.GetByID(ctx, *id); err != nil {
		return named(err, "location", *id)
	}
	return nil
}

// CreateServer inserts a server with a caller supplied identifier and
// records an add activity. A taken identifier yields
// common.ErrorDuplicateIdentifier.
func (s *Inventory) CreateServer(ctx context.Context, in CreateServerInput, userID *int64) (*models.Server, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	now := s.timestamp()
	srv := &models.Server{
		ServerID:   in.ServerID,
		Model:      in.Model,
		Specs:      in.Specs,
		LocationID: in.LocationID,
		Status:     in.Status,
		IPAddress:  in.IPAddress,
		Username:   in.Username,
		Password:   in.Password,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		if err := requireLocation(ctx, r, srv.LocationID); err != nil {
			return err
		}
		if _, err := r.Servers.Create(ctx, srv); err != nil {
			return fmt.Errorf("create server %s: %w", srv.ServerID, err)
		}
		return s.record(ctx, r, userID, activity.ServerAdded(srv))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "server created", "server_id", srv.ServerID, "id", srv.ID)
	return srv, nil
}

// UpdateServer merges the non-nil fields of in. A status change goes through
// the transition policy and is recorded as a setup activity; any other
// change is recorded as an edit.
func (s *Inventory) UpdateServer(ctx context.Context, id int64, in UpdateServerInput, userID *int64) (*models.Server, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	var srv *models.Server
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		var err error
		srv, err = r.Servers.GetByID(ctx, id)
		if err != nil {
			return named(err, "server", id)
		}

		from := srv.Status
		if in.Model != nil {
			srv.Model = *in.Model
		}
		if in.Specs != nil {
			srv.Specs = *in.Specs
		}
		if in.LocationID != nil {
			if err := requireLocation(ctx, r, in.LocationID); err != nil {
				return err
			}
			loc := *in.LocationID
			srv.LocationID = &loc
		}
		if in.IPAddress != nil {
			srv.IPAddress = *in.IPAddress
		}
		if in.Username != nil {
			srv.Username = *in.Username
		}
		if in.Password != nil {
			srv.Password = *in.Password
		}

		entry := activity.ServerEdited(srv)
		if in.Status != nil && *in.Status != from {
			if err := s.policy.Check(from, *in.Status); err != nil {
				return err
			}
			srv.Status = *in.Status
			entry = activity.StatusChanged(srv, from, srv.Status)
		}
		srv.UpdatedAt = s.timestamp()

		if err := r.Servers.Update(ctx, srv); err != nil {
			return fmt.Errorf("update server %d: %w", id, err)
		}
		return s.record(ctx, r, userID, entry)
	})
	if err != nil {
		return nil, err
	}
	return srv, nil
}

// DeleteServer removes the server with its notes, transfers and details.
// It reports false when there is no such server. The server's activities
// are kept.
func (s *Inventory) DeleteServer(ctx context.Context, id int64, userID *int64) (bool, error) {
	deleted := false
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, err := r.Servers.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}

		if _, err := r.Notes.DeleteByServer(ctx, id); err != nil {
			return fmt.Errorf("delete notes of server %d: %w", id, err)
		}
		if _, err := r.Transfers.DeleteByServer(ctx, id); err != nil {
			return fmt.Errorf("delete transfers of server %d: %w", id, err)
		}
		if _, err := r.Details.DeleteByServer(ctx, id); err != nil {
			return fmt.Errorf("delete details of server %d: %w", id, err)
		}
		ok, err := r.Servers.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete server %d: %w", id, err)
		}
		if !ok {
			return nil
		}

		deleted = true
		return s.record(ctx, r, userID, activity.ServerDeleted(srv))
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info(ctx, "server deleted", "id", id)
	}
	return deleted, nil
}

// GenerateServerID consumes one sequence value and returns the next free
// identifier.
func (s *Inventory) GenerateServerID(ctx context.Context) (string, error) {
	var id string
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		var err error
		id, err = s.ids.Next(ctx, r.Sequences, r.Servers)
		return err
	})
	return id, err
}

// GetServerStats recomputes the status partition from the current servers.
func (s *Inventory) GetServerStats(ctx context.Context) (*models.ServerStats, error) {
	list, err := s.repos().Servers.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.ServerStats{}
	for _, srv := range list {
		stats.Count(srv.Status)
	}
	return stats, nil
}
