package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/srvtrack/internal/server/activity"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
)

func (s *Inventory) GetServerDetails(ctx context.Context, serverID int64) ([]*models.ServerDetail, error) {
	if _, err := s.GetServer(ctx, serverID); err != nil {
		return nil, err
	}
	return s.repos().Details.ListByServer(ctx, serverID)
}

func (s *Inventory) AddServerDetail(ctx context.Context, serverID int64, in DetailInput, userID *int64) (*models.ServerDetail, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	now := s.timestamp()
	d := &models.ServerDetail{
		ServerID:  serverID,
		VMName:    in.VMName,
		IPAddress: in.IPAddress,
		Username:  in.Username,
		Password:  in.Password,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, err := r.Servers.GetByID(ctx, serverID)
		if err != nil {
			return named(err, "server", serverID)
		}
		if _, err := r.Details.Create(ctx, d); err != nil {
			return fmt.Errorf("create vm %s: %w", d.VMName, err)
		}
		return s.record(ctx, r, userID, activity.DetailAdded(srv, d))
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func ownedDetail(ctx context.Context, r *repomanager.Repositories, serverID, detailID int64) (*models.Server, *models.ServerDetail, error) {
	srv, err := r.Servers.GetByID(ctx, serverID)
	if err != nil {
		return nil, nil, named(err, "server", serverID)
	}
	d, err := r.Details.GetByID(ctx, detailID)
	if err != nil {
		return nil, nil, named(err, "vm", detailID)
	}
	if d.ServerID != serverID {
		return nil, nil, notFound("vm", detailID)
	}
	return srv, d, nil
}

func (s *Inventory) UpdateServerDetail(ctx context.Context, serverID, detailID int64, in UpdateDetailInput, userID *int64) (*models.ServerDetail, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	var detail *models.ServerDetail
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, d, err := ownedDetail(ctx, r, serverID, detailID)
		if err != nil {
			return err
		}

		if in.VMName != nil {
			d.VMName = *in.VMName
		}
		if in.IPAddress != nil {
			d.IPAddress = *in.IPAddress
		}
		if in.Username != nil {
			d.Username = *in.Username
		}
		if in.Password != nil {
			d.Password = *in.Password
		}
		if in.Notes != nil {
			d.Notes = *in.Notes
		}
		d.UpdatedAt = s.timestamp()

		if err := r.Details.Update(ctx, d); err != nil {
			return fmt.Errorf("update vm %d: %w", detailID, err)
		}
		detail = d
		return s.record(ctx, r, userID, activity.DetailUpdated(srv, d))
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// DeleteServerDetail reports false when the VM does not exist or belongs to
// another server.
func (s *Inventory) DeleteServerDetail(ctx context.Context, serverID, detailID int64, userID *int64) (bool, error) {
	deleted := false
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		srv, d, err := ownedDetail(ctx, r, serverID, detailID)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}

		ok, err := r.Details.Delete(ctx, detailID)
		if err != nil {
			return fmt.Errorf("delete vm %d: %w", detailID, err)
		}
		if !ok {
			return nil
		}
		deleted = true
		return s.record(ctx, r, userID, activity.DetailDeleted(srv, d))
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
