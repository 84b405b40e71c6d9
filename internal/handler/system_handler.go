package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/integration"
	"github.com/brightforge/agency-backend/internal/response"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// IntegrationReporter describes the configured outbound providers.
type IntegrationReporter interface {
	Status() map[string]integration.ProviderStatus
}

// SystemHandler serves health and integration status.
type SystemHandler struct {
	startTime    time.Time
	checks       map[string]HealthCheck
	integrations IntegrationReporter
	log          zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler. checks maps a dependency name
// (postgres, redis) to its probe; it may be empty.
func NewSystemHandler(checks map[string]HealthCheck, integrations IntegrationReporter, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		startTime:    time.Now(),
		checks:       checks,
		integrations: integrations,
		log:          log.With().Str("component", "system_handler").Logger(),
	}
}

type runtimeStats struct {
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	NumGC      uint32 `json:"numGC"`
	GoVersion  string `json:"goVersion"`
}

// Health godoc
// GET /api/health
// Reports "healthy" when every dependency answers, "degraded" (503) otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "healthy", http.StatusOK
	deps := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			deps[name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(code, gin.H{
		"success":      code == http.StatusOK,
		"status":       status,
		"timestamp":    time.Now().UTC(),
		"uptime":       time.Since(h.startTime).Seconds(),
		"dependencies": deps,
		"runtime": runtimeStats{
			Goroutines: runtime.NumGoroutine(),
			HeapAlloc:  mem.HeapAlloc,
			NumGC:      mem.NumGC,
			GoVersion:  runtime.Version(),
		},
	})
}

// IntegrationStatus godoc
// GET /api/integrations/status
// Lists every outbound provider with whether it is configured and what it does.
func (h *SystemHandler) IntegrationStatus(c *gin.Context) {
	response.Success(c, http.StatusOK, h.integrations.Status())
}
