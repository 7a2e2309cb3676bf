// Package servers stores physical servers.
package servers

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// Repository persists servers. Lookups of absent rows return
// common.ErrorNotFound; Delete reports whether a row was removed. Listings
// are ordered by id.
type Repository interface {
	Create(ctx context.Context, s *models.Server) (*models.Server, error)
	GetByID(ctx context.Context, id int64) (*models.Server, error)
	GetBySerial(ctx context.Context, serverID string) (*models.Server, error)
	List(ctx context.Context) ([]*models.Server, error)
	ListByLocation(ctx context.Context, locationID int64) ([]*models.Server, error)
	CountByLocation(ctx context.Context, locationID int64) (int, error)
	CountByModel(ctx context.Context, model string) (int, error)
	Update(ctx context.Context, s *models.Server) error
	Delete(ctx context.Context, id int64) (bool, error)
}
