package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/model"
)

// WebhookService turns inbound n8n callbacks into admin notifications.
type WebhookService struct {
	notifications *NotificationService
	log           zerolog.Logger
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(notifications *NotificationService, log zerolog.Logger) *WebhookService {
	return &WebhookService{
		notifications: notifications,
		log:           log.With().Str("component", "webhooks").Logger(),
	}
}

// HandleN8N processes one callback. It reports false for event types it does not know,
// which are acknowledged without side effects.
func (s *WebhookService) HandleN8N(ctx context.Context, req *model.N8NWebhookRequest) (bool, error) {
	var n *model.Notification
	switch req.Type {
	case model.WebhookWorkflowCompleted:
		n = &model.Notification{
			Type:     model.NotificationTypeWorkflow,
			Title:    "Workflow Completed",
			Message:  fmt.Sprintf("N8n workflow %q completed successfully", req.StringField("workflowName")),
			Metadata: req.Data,
		}
	case model.WebhookTaskReminder:
		n = &model.Notification{
			Type:     model.NotificationTypeReminder,
			Title:    "Task Reminder",
			Message:  reminderMessage(req.StringField("message")),
			Metadata: req.Data,
		}
	default:
		s.log.Info().Str("type", req.Type).Msg("Unknown webhook type")
		return false, nil
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

func reminderMessage(msg string) string {
	if msg == "" {
		return "A scheduled task needs attention"
	}
	return msg
}
