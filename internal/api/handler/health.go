package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Liveness handles GET /health. It answers 200 with an empty body as long
// as the process is serving.
func Liveness(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Pinger is anything the readiness probe can check, typically a bucket.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessHandler handles GET /health/ready.
// It pings every registered dependency before declaring the service ready.
type ReadinessHandler struct {
	deps    map[string]Pinger
	log     zerolog.Logger
	timeout time.Duration
}

func NewReadinessHandler(deps map[string]Pinger, log zerolog.Logger) *ReadinessHandler {
	return &ReadinessHandler{deps: deps, log: log, timeout: 3 * time.Second}
}

// dependencyStatus never carries the failure cause; it is logged instead.
type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness reports per-dependency status; 503 when any of them is down.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps))
	healthy := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			deps[name] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
