package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
	"github.com/brightforge/agency-backend/internal/validator"
)

// WebhookHandler receives callbacks from n8n workflows.
type WebhookHandler struct {
	webhookService *service.WebhookService
	log            zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookService *service.WebhookService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		log:            log.With().Str("component", "webhook_handler").Logger(),
	}
}

// N8N godoc
// POST /api/webhooks/n8n
// Unknown event types are acknowledged with handled=false.
func (h *WebhookHandler) N8N(c *gin.Context) {
	var req model.N8NWebhookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	handled, err := h.webhookService.HandleN8N(c.Request.Context(), &req)
	if err != nil {
		failInternal(c, h.log, err, "Failed to process webhook")
		return
	}

	response.SuccessWith(c, http.StatusOK, gin.H{
		"handled": handled,
		"message": "Webhook processed successfully",
	})
}
