// Package activities stores the append-only audit trail.
package activities

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// Repository can only append and read. Listings are newest first, ties
// broken by id; a limit <= 0 means no limit.
type Repository interface {
	Create(ctx context.Context, a *models.Activity) (*models.Activity, error)
	List(ctx context.Context, limit int) ([]*models.Activity, error)
	ListByServer(ctx context.Context, serverID int64) ([]*models.Activity, error)
}
