package services

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
)

// CreateTileService creates a tile at the end of its partition.
func (svc *Service) CreateTileService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	var req models.TileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid tile payload")
		WriteMessage(w, http.StatusBadRequest, "Name, URL, and Icon are required")
		return
	}

	tile, err := svc.DB.CreateTile(claims.UserID, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create tile")
		writeStoreError(w, err)
		return
	}

	logger.Info().Int64("tile_id", tile.ID).Msg("Tile created successfully")
	location := fmt.Sprintf("%s/%d", r.URL.Path, tile.ID)
	WriteResponse(w, http.StatusCreated, models.TileResponse{
		ID:       tile.ID,
		Name:     tile.Name,
		URL:      tile.URL,
		Icon:     tile.Icon,
		GroupID:  tile.GroupID,
		Position: tile.Position,
	}, location)
}

// UpdateTileService rewrites a tile's name, url, icon, and group.
func (svc *Service) UpdateTileService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	tileID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteMessage(w, http.StatusBadRequest, "invalid tile id")
		return
	}

	var req models.TileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid tile payload")
		WriteMessage(w, http.StatusBadRequest, "Name, URL, and Icon are required")
		return
	}

	if err := svc.DB.UpdateTile(claims.UserID, tileID, req); err != nil {
		logger.Warn().Err(err).Int64("tile_id", tileID).Msg("Failed to update tile")
		writeStoreError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Tile updated successfully")
}

// DeleteTileService hard-deletes a tile.
func (svc *Service) DeleteTileService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	tileID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteMessage(w, http.StatusBadRequest, "invalid tile id")
		return
	}

	if err := svc.DB.DeleteTile(claims.UserID, tileID); err != nil {
		logger.Warn().Err(err).Int64("tile_id", tileID).Msg("Failed to delete tile")
		writeStoreError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Tile deleted successfully")
}

// ReorderTilesService applies a full reorder of one tile partition: each
// listed id gets its index as position, all-or-nothing.
func (svc *Service) ReorderTilesService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	var req models.TileOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid order payload")
		WriteMessage(w, http.StatusBadRequest, "orderedIds must be an array")
		return
	}

	if err := svc.DB.ReorderTiles(claims.UserID, req.GroupID, req.OrderedIDs); err != nil {
		logger.Error().Err(err).Msg("Failed to reorder tiles")
		writeStoreError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Tile order updated successfully")
}

// MoveTileService moves a tile to a new partition and index in one
// transaction.
func (svc *Service) MoveTileService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	var req models.TileMoveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid move payload")
		WriteMessage(w, http.StatusBadRequest, "tileId and newPosition are required")
		return
	}

	if err := svc.DB.MoveTile(claims.UserID, req.TileID, req.NewGroupID, req.NewPosition); err != nil {
		logger.Error().Err(err).Int64("tile_id", req.TileID).Msg("Failed to move tile")
		writeStoreError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Tile moved successfully")
}
