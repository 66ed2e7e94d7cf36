// Package healthcheck probes whether a tile's target URL is reachable.
package healthcheck

import (
	"context"
	"net/http"
	"time"

	"github.com/homedash/homedash-services/models"
)

// Some sites reject obvious non-browser agents outright, so the probe
// presents a desktop browser.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const DefaultTimeout = 5 * time.Second

// Checker issues bounded reachability probes. The zero value is not usable;
// construct with New.
type Checker struct {
	client  *http.Client
	timeout time.Duration
}

func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Check probes url with a HEAD request, falling back to GET when the server
// answers 405 or 403. Any response below 500 counts as up: the page may be
// gone or gated, but the server is there. Network errors and timeouts count
// as down.
func (c *Checker) Check(ctx context.Context, url string) models.HealthStatus {
	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return models.HealthStatus{Status: "down", Error: err.Error()}
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusForbidden {
		getResp, err := c.do(ctx, http.MethodGet, url)
		if err != nil {
			return models.HealthStatus{Status: "down", Error: err.Error()}
		}
		getResp.Body.Close()
		resp = getResp
	}

	if resp.StatusCode < http.StatusInternalServerError {
		return models.HealthStatus{Status: "up", Code: resp.StatusCode}
	}
	return models.HealthStatus{Status: "down", Code: resp.StatusCode}
}

func (c *Checker) do(ctx context.Context, method, url string) (*http.Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return c.client.Do(req)
}
