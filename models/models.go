package models

// User represents a registered dashboard user. Password holds the bcrypt
// hash and is never serialized.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// Group is a named, ordered bucket of tiles owned by one user. Position is
// the ordering key among the user's groups; only relative order matters.
type Group struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Tile is a bookmarked link. A nil GroupID means the tile is uncategorized.
// Position orders tiles within their (user, group-or-uncategorized)
// partition.
type Tile struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	GroupID  *int64 `json:"groupId"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Position int    `json:"position"`
}

// Dashboard is the full per-user view returned by GET /api/dashboard.
type Dashboard struct {
	Username string  `json:"username"`
	Groups   []Group `json:"groups"`
	Tiles    []Tile  `json:"tiles"`
}

// BackupDocument is a user's complete groups+tiles snapshot. Exported ids
// are the live row ids; import treats them only as keys for remapping.
type BackupDocument struct {
	Groups []Group `json:"groups"`
	Tiles  []Tile  `json:"tiles"`
}
