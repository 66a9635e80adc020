package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/dashboard-data/internal/middleware"
	"github.com/deppfellow/dashboard-data/internal/server"
	"github.com/labstack/echo/v4"
)

const defaultHealthTimeout = 5 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves /status for load balancers and uptime monitors.
//
// The database is required: when its ping fails the endpoint answers 503.
// Redis only backs login throttling, which fails open, so a Redis failure
// is reported but leaves the service healthy.
type HealthHandler struct {
	Handler
	db    pinger
	redis pinger
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}

	if s.DB != nil {
		h.db = s.DB
	}
	if s.Redis != nil {
		client := s.Redis
		h.redis = pingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}

	return h
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return defaultHealthTimeout
}

func (h *HealthHandler) enabled(name string) bool {
	obs := h.server.Config.Observability
	return obs == nil || obs.HasCheck(name)
}

func (h *HealthHandler) check(ctx context.Context, name string, p pinger) (checkResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout())
	defer cancel()

	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		h.recordFailure(name, time.Since(start), err)
		return checkResult{Status: "unhealthy", ResponseTime: time.Since(start).String(), Error: err.Error()}, err
	}
	return checkResult{Status: "healthy", ResponseTime: time.Since(start).String()}, nil
}

func (h *HealthHandler) recordFailure(name string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       name,
		"operation":        "health_check",
		"error_type":       name + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}

// CheckHealth answers 200 when every required dependency responds and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	ctx := c.Request().Context()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	if h.db != nil && h.enabled("database") {
		result, err := h.check(ctx, "database", h.db)
		response.Checks["database"] = result

		if err != nil {
			response.Status = "unhealthy"
			logger.Error().Err(err).Str("response_time", result.ResponseTime).Msg("database health check failed")
		}
	}

	if h.redis != nil && h.enabled("redis") {
		result, err := h.check(ctx, "redis", h.redis)
		response.Checks["redis"] = result

		if err != nil {
			logger.Warn().Err(err).Str("response_time", result.ResponseTime).Msg("redis health check failed")
		}
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}
