package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
	"github.com/brightforge/agency-backend/internal/validator"
)

// AnalyticsHandler records and queries metric time series.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	log              zerolog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		log:              log.With().Str("component", "analytics_handler").Logger(),
	}
}

// Record godoc
// POST /api/analytics
func (h *AnalyticsHandler) Record(c *gin.Context) {
	var req model.RecordAnalyticsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.analyticsService.Record(c.Request.Context(), &req)
	if err != nil {
		failInternal(c, h.log, err, "Failed to record analytics")
		return
	}
	response.SuccessMessage(c, http.StatusOK, a, "Analytics recorded successfully")
}

// Query godoc
// GET /api/analytics/:metric?startDate=...&endDate=...
// Dates accept RFC 3339 or YYYY-MM-DD; a date-only endDate covers that whole day.
// Without startDate the last 30 days are returned.
func (h *AnalyticsHandler) Query(c *gin.Context) {
	var fields []response.FieldError

	from, err := parseQueryTime(c.Query("startDate"), false)
	if err != nil {
		fields = append(fields, response.FieldError{Field: "startDate", Message: "startDate must be RFC 3339 or YYYY-MM-DD"})
	}
	to, err := parseQueryTime(c.Query("endDate"), true)
	if err != nil {
		fields = append(fields, response.FieldError{Field: "endDate", Message: "endDate must be RFC 3339 or YYYY-MM-DD"})
	}
	if fields == nil && !from.IsZero() && !to.IsZero() && to.Before(from) {
		fields = append(fields, response.FieldError{Field: "endDate", Message: "endDate must not be before startDate"})
	}
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	points, err := h.analyticsService.Query(c.Request.Context(), c.Param("metric"), from, to)
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch analytics")
		return
	}
	response.SuccessList(c, points, len(points))
}

func parseQueryTime(v string, endOfDay bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
