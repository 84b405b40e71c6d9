package model

import "time"

// Notification types produced by the backend.
const (
	NotificationTypeContact  = "contact"
	NotificationTypeClient   = "client"
	NotificationTypeProject  = "project"
	NotificationTypeWorkflow = "workflow"
	NotificationTypeReminder = "reminder"
	NotificationTypeInfo     = "info"
)

// Notification is an admin-facing alert. Only IsRead changes after creation.
type Notification struct {
	ID        int            `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	IsRead    bool           `json:"isRead"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

// CreateNotificationRequest creates a notification from the admin API.
type CreateNotificationRequest struct {
	Type     string         `json:"type" binding:"omitempty,max=50"`
	Title    string         `json:"title" binding:"required,max=200"`
	Message  string         `json:"message" binding:"required,max=2000"`
	Metadata map[string]any `json:"metadata"`
}

// MarkNotificationRequest toggles the read flag.
type MarkNotificationRequest struct {
	IsRead *bool `json:"isRead" binding:"required"`
}

// NotificationEvent is the message pushed to live feed subscribers.
type NotificationEvent struct {
	Event        string        `json:"event"`
	Notification *Notification `json:"notification"`
}
