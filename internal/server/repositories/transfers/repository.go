// Package transfers stores the immutable history of server moves.
package transfers

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// Repository has no Update: a transfer is a historical fact. Rows only
// disappear when their server is deleted.
type Repository interface {
	Create(ctx context.Context, t *models.ServerTransfer) (*models.ServerTransfer, error)
	GetByID(ctx context.Context, id int64) (*models.ServerTransfer, error)
	ListByServer(ctx context.Context, serverID int64) ([]*models.ServerTransfer, error)
	List(ctx context.Context) ([]*models.ServerTransfer, error)
	DeleteByServer(ctx context.Context, serverID int64) (int64, error)
}
