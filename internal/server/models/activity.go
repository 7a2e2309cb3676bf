package models

import "time"

// Activity is an append-only audit entry. ServerID references the row id of
// the affected server and may outlive it.
type Activity struct {
	ID          int64        `json:"id"`
	ServerID    *int64       `json:"serverId"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	UserID      *int64       `json:"userId"`
	CreatedAt   time.Time    `json:"createdAt"`
}
