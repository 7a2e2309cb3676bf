package services

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// Storage is the inventory surface consumed by transports. *Inventory
// implements it.
type Storage interface {
	Ping(ctx context.Context) error

	GetServer(ctx context.Context, id int64) (*models.Server, error)
	GetServerBySerial(ctx context.Context, serverID string) (*models.Server, error)
	ListServers(ctx context.Context) ([]*models.Server, error)
	GetServersByLocation(ctx context.Context, locationID int64) ([]*models.Server, error)
	CreateServer(ctx context.Context, in CreateServerInput, userID *int64) (*models.Server, error)
	UpdateServer(ctx context.Context, id int64, in UpdateServerInput, userID *int64) (*models.Server, error)
	DeleteServer(ctx context.Context, id int64, userID *int64) (bool, error)
	CreateBatchServers(ctx context.Context, in BatchInput, userID *int64) ([]*models.Server, error)
	GenerateServerID(ctx context.Context) (string, error)
	GetServerStats(ctx context.Context) (*models.ServerStats, error)

	GetServerNotes(ctx context.Context, serverID int64) ([]*models.ServerNote, error)
	GetServerNote(ctx context.Context, serverID, noteID int64) (*models.ServerNote, error)
	AddServerNote(ctx context.Context, serverID int64, in NoteInput, userID *int64) (*models.ServerNote, error)
	UpdateServerNote(ctx context.Context, serverID, noteID int64, in NoteInput, userID *int64) (*models.ServerNote, error)
	DeleteServerNote(ctx context.Context, serverID, noteID int64, userID *int64) (bool, error)

	GetServerTransfers(ctx context.Context, serverID int64) ([]*models.ServerTransfer, error)
	ListTransfers(ctx context.Context) ([]*models.ServerTransfer, error)
	CreateTransfer(ctx context.Context, in TransferInput, userID *int64) (*models.ServerTransfer, error)

	GetServerDetails(ctx context.Context, serverID int64) ([]*models.ServerDetail, error)
	AddServerDetail(ctx context.Context, serverID int64, in DetailInput, userID *int64) (*models.ServerDetail, error)
	UpdateServerDetail(ctx context.Context, serverID, detailID int64, in UpdateDetailInput, userID *int64) (*models.ServerDetail, error)
	DeleteServerDetail(ctx context.Context, serverID, detailID int64, userID *int64) (bool, error)

	GetAllActivities(ctx context.Context, limit int) ([]*models.Activity, error)
	GetServerActivities(ctx context.Context, serverID int64) ([]*models.Activity, error)

	CreateLocation(ctx context.Context, in LocationInput) (*models.Location, error)
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
	ListLocations(ctx context.Context) ([]*models.Location, error)
	ListLocationSummaries(ctx context.Context) ([]*models.LocationSummary, error)
	UpdateLocation(ctx context.Context, id int64, in LocationInput) (*models.Location, error)
	DeleteLocation(ctx context.Context, id int64) (bool, error)

	CreateServerModel(ctx context.Context, in ServerModelInput) (*models.ServerModel, error)
	GetServerModel(ctx context.Context, id int64) (*models.ServerModel, error)
	ListServerModels(ctx context.Context) ([]*models.ServerModel, error)
	UpdateServerModel(ctx context.Context, id int64, in ServerModelInput) (*models.ServerModel, error)
	DeleteServerModel(ctx context.Context, id int64) (bool, error)

	CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*models.User, error)
	ChangePassword(ctx context.Context, id int64, in ChangePasswordInput) error
	DeleteUser(ctx context.Context, actorID, id int64) (bool, error)
}

var _ Storage = (*Inventory)(nil)
