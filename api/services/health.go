package services

import (
	"net/http"

	"github.com/homedash/homedash-services/internal/metrics"
	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
)

// HealthCheckService probes the reachability of a tile's target URL. The
// probe is bounded by the configured timeout, so a dead upstream cannot
// hold a request slot longer than that.
func (svc *Service) HealthCheckService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	if _, ok := claimsFrom(r); !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	var req models.HealthCheckRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid health-check payload")
		WriteMessage(w, http.StatusBadRequest, "URL is required")
		return
	}

	status := svc.Checker.Check(r.Context(), req.URL)
	metrics.HealthProbesTotal.WithLabelValues(status.Status).Inc()

	logger.Debug().
		Str("url", req.URL).
		Str("status", status.Status).
		Int("code", status.Code).
		Msg("URL probed")
	WriteResponse(w, http.StatusOK, status)
}
