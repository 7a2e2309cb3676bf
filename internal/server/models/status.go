// Package models defines the inventory entities persisted by both storage
// backends, and the enumerations they use.
package models

// ServerStatus is the lifecycle state of a physical server.
type ServerStatus string

const (
	StatusActive    ServerStatus = "active"
	StatusTransit   ServerStatus = "transit"
	StatusSetup     ServerStatus = "setup"
	StatusField     ServerStatus = "field"
	StatusReady     ServerStatus = "ready"
	StatusShippable ServerStatus = "shippable"
	StatusPassive   ServerStatus = "passive"
	StatusInactive  ServerStatus = "inactive"
)

// ServerStatuses lists every accepted status value.
var ServerStatuses = []ServerStatus{
	StatusActive, StatusTransit, StatusSetup, StatusField,
	StatusReady, StatusShippable, StatusPassive, StatusInactive,
}

func (s ServerStatus) Valid() bool {
	for _, v := range ServerStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// LocationType classifies a location.
type LocationType string

const (
	LocationDepot  LocationType = "depot"
	LocationOffice LocationType = "office"
	LocationField  LocationType = "field"
)

// Role is a user's access role. It is stored for the caller's use only.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ActivityType classifies an Activity entry.
type ActivityType string

const (
	ActivityAdd      ActivityType = "add"
	ActivityTransfer ActivityType = "transfer"
	ActivityNote     ActivityType = "note"
	ActivitySetup    ActivityType = "setup"
	ActivityEdit     ActivityType = "edit"
	ActivityStatus   ActivityType = "status"
	ActivityDelete   ActivityType = "delete"
)
