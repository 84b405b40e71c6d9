package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
)

// DashboardHandler handles admin dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	log              zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		log:              log.With().Str("component", "dashboard_handler").Logger(),
	}
}

// GetStats godoc
// GET /api/dashboard/stats
// Returns contact window counts, client/project totals, projects by status and unread notifications.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	data, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch dashboard statistics")
		return
	}

	response.Success(c, http.StatusOK, data)
}
