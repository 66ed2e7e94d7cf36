package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homedash/homedash-services/models"
	"github.com/stretchr/testify/assert"
)

func TestDashboardService(t *testing.T) {
	mockDB := new(MockDashboardStore)
	svc := testService(mockDB)

	groups := []models.Group{
		{ID: 1, UserID: testUserID, Name: "Infra", Position: 0},
		{ID: 2, UserID: testUserID, Name: "Media", Position: 1},
	}
	tiles := []models.Tile{
		{ID: 10, UserID: testUserID, GroupID: int64Ptr(1), Name: "Proxmox", URL: "https://pve", Icon: "fa-solid fa-server", Position: 0},
	}
	mockDB.On("GetGroups", testUserID).Return(groups, nil)
	mockDB.On("GetTiles", testUserID).Return(tiles, nil)

	r := authedRequest(t, http.MethodGet, "/api/dashboard", nil)
	w := httptest.NewRecorder()
	svc.DashboardService(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	body, _ := io.ReadAll(w.Result().Body)
	var resp models.Dashboard
	assert.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "testuser", resp.Username)
	assert.Len(t, resp.Groups, 2)
	assert.Len(t, resp.Tiles, 1)
	mockDB.AssertExpectations(t)
}

func TestDashboardServiceEmptyCollections(t *testing.T) {
	mockDB := new(MockDashboardStore)
	svc := testService(mockDB)

	mockDB.On("GetGroups", testUserID).Return([]models.Group(nil), nil)
	mockDB.On("GetTiles", testUserID).Return([]models.Tile(nil), nil)

	r := authedRequest(t, http.MethodGet, "/api/dashboard", nil)
	w := httptest.NewRecorder()
	svc.DashboardService(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	// Empty collections serialize as [], not null
	body, _ := io.ReadAll(w.Result().Body)
	assert.Contains(t, string(body), `"groups":[]`)
	assert.Contains(t, string(body), `"tiles":[]`)
}

func TestDashboardServiceNoClaims(t *testing.T) {
	mockDB := new(MockDashboardStore)
	svc := testService(mockDB)

	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	w := httptest.NewRecorder()
	svc.DashboardService(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
