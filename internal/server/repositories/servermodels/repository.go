// Package servermodels stores the hardware model catalogue used for batch
// creation.
package servermodels

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.ServerModel) (*models.ServerModel, error)
	GetByID(ctx context.Context, id int64) (*models.ServerModel, error)
	List(ctx context.Context) ([]*models.ServerModel, error)
	Update(ctx context.Context, m *models.ServerModel) error
	Delete(ctx context.Context, id int64) (bool, error)
}
