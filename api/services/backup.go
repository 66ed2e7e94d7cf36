package services

import (
	"encoding/json"
	"net/http"

	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
)

// ExportBackupService dumps the caller's groups and tiles as one JSON
// document, original ids included.
func (svc *Service) ExportBackupService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	doc, err := svc.DB.ExportBackup(claims.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to export backup")
		writeStoreError(w, err)
		return
	}

	logger.Info().
		Int("groups", len(doc.Groups)).
		Int("tiles", len(doc.Tiles)).
		Msg("Backup exported")
	WriteResponse(w, http.StatusOK, doc)
}

// ImportBackupService destructively replaces the caller's data with the
// posted document. Either the whole import lands or none of it does.
func (svc *Service) ImportBackupService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	// Both arrays must be present; a half-formed document would otherwise
	// wipe data it cannot replace.
	var raw struct {
		Groups *[]models.Group `json:"groups"`
		Tiles  *[]models.Tile  `json:"tiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw.Groups == nil || raw.Tiles == nil {
		logger.Warn().Msg("Invalid backup document")
		WriteMessage(w, http.StatusBadRequest, "Invalid backup file format.")
		return
	}

	doc := models.BackupDocument{Groups: *raw.Groups, Tiles: *raw.Tiles}
	if err := svc.DB.ImportBackup(claims.UserID, &doc); err != nil {
		logger.Error().Err(err).Msg("Failed to import backup")
		writeStoreError(w, err)
		return
	}

	logger.Info().
		Int("groups", len(doc.Groups)).
		Int("tiles", len(doc.Tiles)).
		Msg("Backup imported")
	WriteMessage(w, http.StatusOK, "Import successful!")
}
