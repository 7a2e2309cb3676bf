// Package details stores the virtual machines hosted on servers.
package details

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, d *models.ServerDetail) (*models.ServerDetail, error)
	GetByID(ctx context.Context, id int64) (*models.ServerDetail, error)
	ListByServer(ctx context.Context, serverID int64) ([]*models.ServerDetail, error)
	Update(ctx context.Context, d *models.ServerDetail) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByServer(ctx context.Context, serverID int64) (int64, error)
}
