// Package client is a typed Go client for the homedash HTTP API. It covers
// every endpoint the server exposes and pairs with Store for keeping a local
// dashboard view in sync.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/homedash/homedash-services/models"
)

const defaultRequestTimeout = 15 * time.Second

// ErrUnauthorized is returned when the server rejects the bearer token.
// Callers should treat it as a signal to re-authenticate.
var ErrUnauthorized = errors.New("client: unauthorized")

// APIError carries a non-2xx response the server answered with a message
// envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client talks to one homedash server on behalf of one user. The zero value
// is not usable; construct with New. Token is set by Login or SetToken.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the server at baseURL (no trailing slash needed).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// SetToken installs a previously obtained bearer token, e.g. one persisted
// across runs.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var msg models.MessageResponse
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// --- Auth ---

// Signup registers a new account. It does not log the user in.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signup",
		models.SignupRequest{Username: username, Password: password}, nil)
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Check verifies the stored token is still accepted by the server.
func (c *Client) Check(ctx context.Context) (*models.CheckResponse, error) {
	var out models.CheckResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/check", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Dashboard ---

// Dashboard fetches the full groups+tiles view for the authenticated user.
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Tiles ---

func (c *Client) CreateTile(ctx context.Context, req models.TileRequest) (*models.TileResponse, error) {
	var out models.TileResponse
	if err := c.do(ctx, http.MethodPost, "/api/tiles", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTile(ctx context.Context, id int64, req models.TileRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tiles/%d", id), req, nil)
}

func (c *Client) DeleteTile(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tiles/%d", id), nil, nil)
}

// ReorderTiles persists a complete ordering for one partition. A nil groupID
// targets the uncategorized bucket.
func (c *Client) ReorderTiles(ctx context.Context, groupID *int64, orderedIDs []int64) error {
	return c.do(ctx, http.MethodPut, "/api/tiles/order",
		models.TileOrderRequest{OrderedIDs: orderedIDs, GroupID: groupID}, nil)
}

// MoveTile places a tile at newPosition inside the partition named by
// newGroupID (nil = uncategorized).
func (c *Client) MoveTile(ctx context.Context, tileID int64, newGroupID *int64, newPosition int) error {
	return c.do(ctx, http.MethodPut, "/api/tiles/move",
		models.TileMoveRequest{TileID: tileID, NewGroupID: newGroupID, NewPosition: newPosition}, nil)
}

// --- Groups ---

func (c *Client) CreateGroup(ctx context.Context, name string) (*models.GroupResponse, error) {
	var out models.GroupResponse
	if err := c.do(ctx, http.MethodPost, "/api/groups", models.GroupRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameGroup(ctx context.Context, id int64, name string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/groups/%d", id), models.GroupRequest{Name: name}, nil)
}

// DeleteGroup removes a group; its tiles become uncategorized server-side.
func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/groups/%d", id), nil, nil)
}

func (c *Client) ReorderGroups(ctx context.Context, orderedIDs []int64) error {
	return c.do(ctx, http.MethodPut, "/api/groups/order",
		models.GroupOrderRequest{OrderedIDs: orderedIDs}, nil)
}

// --- Backup ---

func (c *Client) ExportBackup(ctx context.Context) (*models.BackupDocument, error) {
	var out models.BackupDocument
	if err := c.do(ctx, http.MethodGet, "/api/backup/export", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportBackup replaces the user's entire dashboard with the given snapshot.
func (c *Client) ImportBackup(ctx context.Context, doc models.BackupDocument) error {
	return c.do(ctx, http.MethodPost, "/api/backup/import", doc, nil)
}

// --- Backgrounds ---

func (c *Client) ListBackgrounds(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/backgrounds", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadBackground uploads an image as multipart form data under the field
// name "backgroundFile". The server sniffs the content and only accepts PNG
// and JPEG.
func (c *Client) UploadBackground(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("backgroundFile", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/backgrounds/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var msg models.MessageResponse
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	var out models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteBackground(ctx context.Context, filename string) error {
	return c.do(ctx, http.MethodDelete, "/api/backgrounds/"+filename, nil, nil)
}

// --- Health ---

// CheckURL asks the server to probe the given URL for reachability.
func (c *Client) CheckURL(ctx context.Context, url string) (*models.HealthStatus, error) {
	var out models.HealthStatus
	if err := c.do(ctx, http.MethodPost, "/api/health/check", models.HealthCheckRequest{URL: url}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
