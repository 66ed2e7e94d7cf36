package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/homedash/homedash-services/api/middleware"
	"github.com/homedash/homedash-services/internal/appconfig"
	"github.com/homedash/homedash-services/internal/authn"
	"github.com/homedash/homedash-services/internal/healthcheck"
)

const testUserID int64 = 7

func testService(mockDB *MockDashboardStore) *Service {
	return &Service{
		Config: &appconfig.Config{
			Auth: appconfig.AuthConfig{
				Secret:   "test-secret",
				TokenTTL: appconfig.Duration(time.Hour),
			},
		},
		DB:      mockDB,
		Checker: healthcheck.New(time.Second),
	}
}

// authedRequest builds a request carrying the test user's claims, the way
// the JWT middleware would have left them.
func authedRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	r := httptest.NewRequest(method, target, &buf)
	claims := authn.Claims{UserID: testUserID, Username: "testuser"}
	ctx := context.WithValue(r.Context(), middleware.ClaimsKey, claims)
	return r.WithContext(ctx)
}
