package models

// Request DTOs validated at the API boundary with go-playground/validator.

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TileRequest is the body for both tile creation and tile update.
type TileRequest struct {
	Name    string `json:"name" validate:"required"`
	URL     string `json:"url" validate:"required"`
	Icon    string `json:"icon" validate:"required"`
	GroupID *int64 `json:"groupId"`
}

type GroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// TileOrderRequest carries the complete ordered id list for one tile
// partition. A nil GroupID targets the uncategorized bucket.
type TileOrderRequest struct {
	OrderedIDs []int64 `json:"orderedIds" validate:"required"`
	GroupID    *int64  `json:"groupId"`
}

type GroupOrderRequest struct {
	OrderedIDs []int64 `json:"orderedIds" validate:"required"`
}

// TileMoveRequest moves a tile to NewPosition inside the partition named by
// NewGroupID (nil = uncategorized).
type TileMoveRequest struct {
	TileID      int64  `json:"tileId" validate:"required"`
	NewGroupID  *int64 `json:"newGroupId"`
	NewPosition int    `json:"newPosition" validate:"min=0"`
}

type HealthCheckRequest struct {
	URL string `json:"url" validate:"required,url"`
}
