// Package locations stores depots, offices and field sites.
package locations

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, l *models.Location) (*models.Location, error)
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	List(ctx context.Context) ([]*models.Location, error)
	Update(ctx context.Context, l *models.Location) error
	Delete(ctx context.Context, id int64) (bool, error)
}
