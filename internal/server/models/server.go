package models

import "time"

// Server is a physical machine tracked by the inventory. ServerID is the
// human readable identifier (SRV-<year>-<seq>); it is unique and never
// changes after creation.
type Server struct {
	ID         int64        `json:"id"`
	ServerID   string       `json:"serverId"`
	Model      string       `json:"model"`
	Specs      string       `json:"specs"`
	LocationID *int64       `json:"locationId"`
	Status     ServerStatus `json:"status"`
	IPAddress  string       `json:"ipAddress,omitempty"`
	Username   string       `json:"username,omitempty"`
	Password   string       `json:"password,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ServerNote is a free text note attached to a server. Deleted notes are
// kept with IsDeleted set.
type ServerNote struct {
	ID        int64      `json:"id"`
	ServerID  int64      `json:"serverId"`
	Note      string     `json:"note"`
	CreatedBy *int64     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy *int64     `json:"updatedBy,omitempty"`
	IsDeleted bool       `json:"isDeleted"`
}

// ServerTransfer records one move of a server between locations. It is
// never modified after creation.
type ServerTransfer struct {
	ID             int64     `json:"id"`
	ServerID       int64     `json:"serverId"`
	FromLocationID *int64    `json:"fromLocationId"`
	ToLocationID   int64     `json:"toLocationId"`
	TransferredBy  *int64    `json:"transferredBy"`
	TransferDate   time.Time `json:"transferDate"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ServerDetail describes a virtual machine hosted on a server.
type ServerDetail struct {
	ID        int64     `json:"id"`
	ServerID  int64     `json:"serverId"`
	VMName    string    `json:"vmName"`
	IPAddress string    `json:"ipAddress"`
	Username  string    `json:"username,omitempty"`
	Password  string    `json:"password,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
