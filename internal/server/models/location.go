package models

import "time"

type Location struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Type      LocationType `json:"type"`
	Address   string       `json:"address,omitempty"`
	Capacity  int          `json:"capacity"`
	IsActive  bool         `json:"isActive"`
	CreatedAt time.Time    `json:"createdAt"`
}

// LocationSummary is a location together with the number of servers
// currently assigned to it.
type LocationSummary struct {
	Location
	ServerCount int `json:"serverCount"`
}

type ServerModel struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Specs     string    `json:"specs"`
	CreatedAt time.Time `json:"createdAt"`
}
