package websocket

import "github.com/brightforge/agency-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing     Action = "ping"
	ActionMarkRead Action = "mark_read"
)

// RequestPayload is any message sent by a dashboard client.
type RequestPayload struct {
	Action Action `json:"action"`
	ID     int    `json:"id,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError        Event = "error"
	EventNotification Event = "notification"
	EventMarkedRead   Event = "marked_read"
	EventPong         Event = "pong"
)

// NotificationResponse pushes a newly created notification.
type NotificationResponse struct {
	Event        Event               `json:"event"`
	Notification *model.Notification `json:"notification"`
}

// MarkedReadResponse acknowledges a mark_read action.
type MarkedReadResponse struct {
	Event Event `json:"event"`
	ID    int   `json:"id"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
