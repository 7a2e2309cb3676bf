package services

import (
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

type CreateServerInput struct {
	ServerID   string              `json:"serverId" validate:"required,max=64"`
	Model      string              `json:"model" validate:"max=255"`
	Specs      string              `json:"specs"`
	LocationID *int64              `json:"locationId" validate:"omitempty,gt=0"`
	Status     models.ServerStatus `json:"status" validate:"required,serverstatus"`
	IPAddress  string              `json:"ipAddress" validate:"max=64"`
	Username   string              `json:"username" validate:"max=255"`
	Password   string              `json:"password" validate:"max=255"`
}

// UpdateServerInput is a partial update: nil fields are left unchanged. The
// server identifier cannot be patched.
type UpdateServerInput struct {
	Model      *string              `json:"model" validate:"omitempty,max=255"`
	Specs      *string              `json:"specs"`
	LocationID *int64               `json:"locationId" validate:"omitempty,gt=0"`
	Status     *models.ServerStatus `json:"status" validate:"omitempty,serverstatus"`
	IPAddress  *string              `json:"ipAddress" validate:"omitempty,max=64"`
	Username   *string              `json:"username" validate:"omitempty,max=255"`
	Password   *string              `json:"password" validate:"omitempty,max=255"`
}

type BatchInput struct {
	ModelID    int64               `json:"modelId" validate:"required,gt=0"`
	LocationID int64               `json:"locationId" validate:"required,gt=0"`
	Quantity   int                 `json:"quantity" validate:"gte=1"`
	Status     models.ServerStatus `json:"status" validate:"required,serverstatus"`
}

type TransferInput struct {
	ServerID     int64      `json:"serverId" validate:"required,gt=0"`
	ToLocationID int64      `json:"toLocationId" validate:"required,gt=0"`
	TransferDate *time.Time `json:"transferDate"`
	Notes        string     `json:"notes" validate:"max=2000"`
}

type DetailInput struct {
	VMName    string `json:"vmName" validate:"required,max=255"`
	IPAddress string `json:"ipAddress" validate:"max=64"`
	Username  string `json:"username" validate:"max=255"`
	Password  string `json:"password" validate:"max=255"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type UpdateDetailInput struct {
	VMName    *string `json:"vmName" validate:"omitempty,min=1,max=255"`
	IPAddress *string `json:"ipAddress" validate:"omitempty,max=64"`
	Username  *string `json:"username" validate:"omitempty,max=255"`
	Password  *string `json:"password" validate:"omitempty,max=255"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

type NoteInput struct {
	Note string `json:"note" validate:"required,max=5000"`
}

type LocationInput struct {
	Name     string              `json:"name" validate:"required,max=255"`
	Type     models.LocationType `json:"type" validate:"required,locationtype"`
	Address  string              `json:"address" validate:"max=500"`
	Capacity int                 `json:"capacity" validate:"gte=0"`
	IsActive *bool               `json:"isActive"`
}

type ServerModelInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Brand string `json:"brand" validate:"max=255"`
	Specs string `json:"specs"`
}

type CreateUserInput struct {
	Username string      `json:"username" validate:"required,min=3,max=64"`
	Password string      `json:"password" validate:"required,min=8,max=256"`
	FullName string      `json:"fullName" validate:"max=255"`
	Email    string      `json:"email" validate:"omitempty,email"`
	Role     models.Role `json:"role" validate:"omitempty,role"`
}

type UpdateUserInput struct {
	FullName *string      `json:"fullName" validate:"omitempty,max=255"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	Role     *models.Role `json:"role" validate:"omitempty,role"`
	IsActive *bool        `json:"isActive"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=256"`
}
