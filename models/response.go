package models

// MessageResponse is the generic success/error envelope.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// CheckResponse is returned by GET /api/auth/check.
type CheckResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// TileResponse echoes a created or updated tile.
type TileResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	GroupID  *int64 `json:"groupId"`
	Position int    `json:"position"`
}

// GroupResponse echoes a created group.
type GroupResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// UploadResponse is returned by POST /api/backgrounds/upload.
type UploadResponse struct {
	Filename string `json:"filename"`
}

// HealthStatus is the result of a URL reachability probe. Code is the last
// HTTP status observed; it is omitted when the probe never got a response.
type HealthStatus struct {
	Status string `json:"status"`
	Code   int    `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}
