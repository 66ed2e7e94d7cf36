package services

import (
	"net/http"

	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
)

// DashboardService returns the caller's full dashboard: groups and tiles
// ordered by position.
func (svc *Service) DashboardService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	groups, err := svc.DB.GetGroups(claims.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve groups")
		writeStoreError(w, err)
		return
	}
	tiles, err := svc.DB.GetTiles(claims.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve tiles")
		writeStoreError(w, err)
		return
	}

	// Return empty slices rather than nulls
	if groups == nil {
		groups = []models.Group{}
	}
	if tiles == nil {
		tiles = []models.Tile{}
	}

	WriteResponse(w, http.StatusOK, models.Dashboard{
		Username: claims.Username,
		Groups:   groups,
		Tiles:    tiles,
	})
}
