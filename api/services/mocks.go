package services

import (
	"github.com/homedash/homedash-services/models"
	"github.com/stretchr/testify/mock"
)

type MockDashboardStore struct {
	mock.Mock
}

func (m *MockDashboardStore) CreateUser(username, passwordHash string) (*models.User, error) {
	args := m.Called(username, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDashboardStore) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDashboardStore) GetUserByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDashboardStore) GetGroups(userID int64) ([]models.Group, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockDashboardStore) CreateGroup(userID int64, name string) (*models.Group, error) {
	args := m.Called(userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockDashboardStore) RenameGroup(userID, groupID int64, name string) error {
	args := m.Called(userID, groupID, name)
	return args.Error(0)
}

func (m *MockDashboardStore) DeleteGroup(userID, groupID int64) error {
	args := m.Called(userID, groupID)
	return args.Error(0)
}

func (m *MockDashboardStore) ReorderGroups(userID int64, orderedIDs []int64) error {
	args := m.Called(userID, orderedIDs)
	return args.Error(0)
}

func (m *MockDashboardStore) GetTiles(userID int64) ([]models.Tile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tile), args.Error(1)
}

func (m *MockDashboardStore) CreateTile(userID int64, req models.TileRequest) (*models.Tile, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tile), args.Error(1)
}

func (m *MockDashboardStore) UpdateTile(userID, tileID int64, req models.TileRequest) error {
	args := m.Called(userID, tileID, req)
	return args.Error(0)
}

func (m *MockDashboardStore) DeleteTile(userID, tileID int64) error {
	args := m.Called(userID, tileID)
	return args.Error(0)
}

func (m *MockDashboardStore) ReorderTiles(userID int64, groupID *int64, orderedIDs []int64) error {
	args := m.Called(userID, groupID, orderedIDs)
	return args.Error(0)
}

func (m *MockDashboardStore) MoveTile(userID, tileID int64, newGroupID *int64, newPosition int) error {
	args := m.Called(userID, tileID, newGroupID, newPosition)
	return args.Error(0)
}

func (m *MockDashboardStore) ExportBackup(userID int64) (*models.BackupDocument, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BackupDocument), args.Error(1)
}

func (m *MockDashboardStore) ImportBackup(userID int64, doc *models.BackupDocument) error {
	args := m.Called(userID, doc)
	return args.Error(0)
}
