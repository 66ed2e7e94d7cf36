package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	status := New(time.Second).Check(context.Background(), srv.URL)
	assert.Equal(t, "up", status.Status)
	assert.Equal(t, http.StatusOK, status.Code)
}

func TestCheckNotFoundStillUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	status := New(time.Second).Check(context.Background(), srv.URL)
	assert.Equal(t, "up", status.Status, "a 404 means the server responded")
	assert.Equal(t, http.StatusNotFound, status.Code)
}

func TestCheckFallsBackToGet(t *testing.T) {
	var sawGet bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sawGet = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	status := New(time.Second).Check(context.Background(), srv.URL)
	assert.True(t, sawGet, "405 on HEAD should trigger a GET retry")
	assert.Equal(t, "up", status.Status)
}

func TestCheckServerErrorIsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	status := New(time.Second).Check(context.Background(), srv.URL)
	assert.Equal(t, "down", status.Status)
	assert.Equal(t, http.StatusBadGateway, status.Code)
}

func TestCheckUnreachableIsDown(t *testing.T) {
	// Bind-then-close to get an address nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	status := New(time.Second).Check(context.Background(), url)
	assert.Equal(t, "down", status.Status)
	assert.NotEmpty(t, status.Error)
}

func TestCheckTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	status := New(50 * time.Millisecond).Check(context.Background(), srv.URL)
	assert.Equal(t, "down", status.Status)
}
