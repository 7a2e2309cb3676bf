// Package notes stores free text notes attached to servers.
package notes

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// Repository persists server notes. ListByServer hides soft-deleted notes
// unless includeDeleted is set; GetByID always returns the row.
type Repository interface {
	Create(ctx context.Context, n *models.ServerNote) (*models.ServerNote, error)
	GetByID(ctx context.Context, id int64) (*models.ServerNote, error)
	ListByServer(ctx context.Context, serverID int64, includeDeleted bool) ([]*models.ServerNote, error)
	Update(ctx context.Context, n *models.ServerNote) error
	DeleteByServer(ctx context.Context, serverID int64) (int64, error)
}
