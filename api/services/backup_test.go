package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homedash/homedash-services/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestExportBackupService(t *testing.T) {
	mockDB := new(MockDashboardStore)
	svc := testService(mockDB)

	doc := &models.BackupDocument{
		Groups: []models.Group{{ID: 1, UserID: testUserID, Name: "Infra", Position: 0}},
		Tiles: []models.Tile{
			{ID: 10, UserID: testUserID, GroupID: int64Ptr(1), Name: "Proxmox", URL: "https://pve", Icon: "i", Position: 0},
			{ID: 11, UserID: testUserID, Name: "Loose", URL: "https://loose", Icon: "i", Position: 0},
		},
	}
	mockDB.On("ExportBackup", testUserID).Return(doc, nil)

	r := authedRequest(t, http.MethodGet, "/api/backup/export", nil)
	w := httptest.NewRecorder()
	svc.ExportBackupService(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	body, _ := io.ReadAll(w.Result().Body)
	var resp models.BackupDocument
	assert.NoError(t, json.Unmarshal(body, &resp))
	assert.Len(t, resp.Groups, 1)
	assert.Len(t, resp.Tiles, 2)
	assert.Equal(t, int64(1), resp.Groups[0].ID, "export keeps original ids")
}

func TestImportBackupService(t *testing.T) {
	mockDB := new(MockDashboardStore)
	svc := testService(mockDB)

	doc := models.BackupDocument{
		Groups: []models.Group{{ID: 5, Name: "Infra", Position: 0}, {ID: 6, Name: "Media", Position: 1}},
		Tiles: []models.Tile{
			{ID: 1, GroupID: int64Ptr(5), Name: "a", URL: "https://a", Icon: "i", Position: 0},
			{ID: 2, GroupID: int64Ptr(999), Name: "orphan", URL: "https://b", Icon: "i", Position: 0},
			{ID: 3, Name: "loose", URL: "https://c", Icon: "i", Position: 1},
		},
	}
	mockDB.On("ImportBackup", testUserID, mock.MatchedBy(func(d *models.BackupDocument) bool {
		return len(d.Groups) == 2 && len(d.Tiles) == 3
	})).Return(nil)

	r := authedRequest(t, http.MethodPost, "/api/backup/import", doc)
	w := httptest.NewRecorder()
	svc.ImportBackupService(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	mockDB.AssertExpectations(t)
}

func TestImportBackupServiceRejectsMalformedDocument(t *testing.T) {
	mockDB := new(MockDashboardStore)
	svc := testService(mockDB)

	// Missing the tiles array entirely
	r := authedRequest(t, http.MethodPost, "/api/backup/import",
		map[string]interface{}{"groups": []models.Group{}})
	w := httptest.NewRecorder()
	svc.ImportBackupService(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDB.AssertNotCalled(t, "ImportBackup", mock.Anything, mock.Anything)
}

func TestImportBackupServiceAcceptsEmptyDocument(t *testing.T) {
	mockDB := new(MockDashboardStore)
	svc := testService(mockDB)

	mockDB.On("ImportBackup", testUserID, mock.MatchedBy(func(d *models.BackupDocument) bool {
		return len(d.Groups) == 0 && len(d.Tiles) == 0
	})).Return(nil)

	r := authedRequest(t, http.MethodPost, "/api/backup/import",
		models.BackupDocument{Groups: []models.Group{}, Tiles: []models.Tile{}})
	w := httptest.NewRecorder()
	svc.ImportBackupService(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
