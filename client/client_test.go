package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homedash/homedash-services/models"
	"github.com/stretchr/testify/assert"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		json.NewEncoder(w).Encode(models.LoginResponse{
			Message: "Login successful", Token: "tok-123", Username: "alice",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "alice", "hunter2")

	assert.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "tok-123", c.Token())
}

func TestRequestsCarryBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.Dashboard{Username: "alice"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")

	dash, err := c.Dashboard(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "alice", dash.Username)
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Dashboard(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Username already taken"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Signup(context.Background(), "alice", "hunter2")

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Username already taken", apiErr.Message)
}

func TestMoveTileSendsNullGroup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.TileMoveRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(4), req.TileID)
		assert.Nil(t, req.NewGroupID)
		assert.Equal(t, 2, req.NewPosition)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Tile moved successfully"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.NoError(t, c.MoveTile(context.Background(), 4, nil, 2))
}
