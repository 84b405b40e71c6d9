package model

// Inbound n8n event types.
const (
	WebhookWorkflowCompleted = "workflow_completed"
	WebhookTaskReminder      = "task_reminder"
)

// N8NWebhookRequest is the body n8n posts back to the backend.
type N8NWebhookRequest struct {
	Type string         `json:"type" binding:"required,max=100"`
	Data map[string]any `json:"data"`
}

// StringField returns data[key] when it is a non-empty string.
func (r *N8NWebhookRequest) StringField(key string) string {
	if r.Data == nil {
		return ""
	}
	s, _ := r.Data[key].(string)
	return s
}
