package services

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
)

// CreateGroupService creates a group at the end of the caller's group order.
func (svc *Service) CreateGroupService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	var req models.GroupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid group payload")
		WriteMessage(w, http.StatusBadRequest, "Group name is required")
		return
	}

	group, err := svc.DB.CreateGroup(claims.UserID, req.Name)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create group")
		writeStoreError(w, err)
		return
	}

	logger.Info().Int64("group_id", group.ID).Msg("Group created successfully")
	location := fmt.Sprintf("%s/%d", r.URL.Path, group.ID)
	WriteResponse(w, http.StatusCreated, models.GroupResponse{
		ID:       group.ID,
		Name:     group.Name,
		Position: group.Position,
	}, location)
}

// RenameGroupService renames a group.
func (svc *Service) RenameGroupService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	groupID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteMessage(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req models.GroupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid group payload")
		WriteMessage(w, http.StatusBadRequest, "Group name is required")
		return
	}

	if err := svc.DB.RenameGroup(claims.UserID, groupID, req.Name); err != nil {
		logger.Warn().Err(err).Int64("group_id", groupID).Msg("Failed to rename group")
		writeStoreError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Group updated")
}

// DeleteGroupService deletes a group; its tiles become uncategorized. When
// the group is absent or foreign-owned nothing changes and a 404 is
// returned.
func (svc *Service) DeleteGroupService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	groupID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteMessage(w, http.StatusBadRequest, "invalid group id")
		return
	}

	if err := svc.DB.DeleteGroup(claims.UserID, groupID); err != nil {
		logger.Warn().Err(err).Int64("group_id", groupID).Msg("Failed to delete group")
		writeStoreError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Group deleted and tiles uncategorized")
}

// ReorderGroupsService applies a full reorder of the caller's groups.
func (svc *Service) ReorderGroupsService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	var req models.GroupOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid order payload")
		WriteMessage(w, http.StatusBadRequest, "orderedIds must be an array")
		return
	}

	if err := svc.DB.ReorderGroups(claims.UserID, req.OrderedIDs); err != nil {
		logger.Error().Err(err).Msg("Failed to reorder groups")
		writeStoreError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Group order updated successfully")
}
