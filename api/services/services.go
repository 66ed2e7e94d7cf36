package services

import (
	"github.com/homedash/homedash-services/internal/appconfig"
	"github.com/homedash/homedash-services/internal/healthcheck"
	"github.com/homedash/homedash-services/models"
)

// DashboardStore is the persistence surface the handlers depend on. The
// production implementation is *db.DashboardDB; tests substitute a mock.
// Every method is scoped by the authenticated user's id — nothing is ever
// visible or mutable cross-user.
type DashboardStore interface {
	CreateUser(username, passwordHash string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)

	GetGroups(userID int64) ([]models.Group, error)
	CreateGroup(userID int64, name string) (*models.Group, error)
	RenameGroup(userID, groupID int64, name string) error
	DeleteGroup(userID, groupID int64) error
	ReorderGroups(userID int64, orderedIDs []int64) error

	GetTiles(userID int64) ([]models.Tile, error)
	CreateTile(userID int64, req models.TileRequest) (*models.Tile, error)
	UpdateTile(userID, tileID int64, req models.TileRequest) error
	DeleteTile(userID, tileID int64) error
	ReorderTiles(userID int64, groupID *int64, orderedIDs []int64) error
	MoveTile(userID, tileID int64, newGroupID *int64, newPosition int) error

	ExportBackup(userID int64) (*models.BackupDocument, error)
	ImportBackup(userID int64, doc *models.BackupDocument) error
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config  *appconfig.Config
	DB      DashboardStore
	Checker *healthcheck.Checker
}
