package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/response"
)

// parseID reads the :id path parameter. Non-numeric and non-positive ids
// are answered with 400 and ok=false.
func parseID(c *gin.Context, entity string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.FailMessage(c, http.StatusBadRequest, response.ErrInvalidID, "Invalid "+entity+" ID")
		return 0, false
	}
	return id, true
}

// failInternal logs err and answers with a generic 500 that carries no detail.
func failInternal(c *gin.Context, log zerolog.Logger, err error, message string) {
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Str("request_id", response.RequestID(c)).
		Msg(message)
	response.FailMessage(c, http.StatusInternalServerError, response.ErrInternal, message)
}

func notFound(c *gin.Context, message string) {
	response.FailMessage(c, http.StatusNotFound, response.ErrNotFound, message)
}
