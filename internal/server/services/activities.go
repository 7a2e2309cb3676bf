package services

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// GetAllActivities returns the global feed, newest first. limit <= 0 returns
// everything.
func (s *Inventory) GetAllActivities(ctx context.Context, limit int) ([]*models.Activity, error) {
	return s.repos().Activities.List(ctx, limit)
}

// GetServerActivities returns the history of one server, newest first. The
// history outlives the server itself.
func (s *Inventory) GetServerActivities(ctx context.Context, serverID int64) ([]*models.Activity, error) {
	return s.repos().Activities.ListByServer(ctx, serverID)
}
