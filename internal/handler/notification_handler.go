package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
	"github.com/brightforge/agency-backend/internal/validator"
)

const notificationNotFound = "Notification not found"

// NotificationHandler serves the admin notification inbox.
type NotificationHandler struct {
	notificationService *service.NotificationService
	log                 zerolog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		log:                 log.With().Str("component", "notification_handler").Logger(),
	}
}

// Create godoc
// POST /api/notifications
// Adds a manual notification; it is pushed to the live feed like generated ones.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req model.CreateNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	n := &model.Notification{
		Type:     req.Type,
		Title:    req.Title,
		Message:  req.Message,
		Metadata: req.Metadata,
	}
	if n.Type == "" {
		n.Type = model.NotificationTypeInfo
	}
	if err := h.notificationService.Create(c.Request.Context(), n); err != nil {
		failInternal(c, h.log, err, "Failed to create notification")
		return
	}
	response.SuccessMessage(c, http.StatusOK, n, "Notification created successfully")
}

// List godoc
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationService.List(c.Request.Context())
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch notifications")
		return
	}
	response.SuccessList(c, notifications, len(notifications))
}

// ListUnread godoc
// GET /api/notifications/unread
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	notifications, err := h.notificationService.ListUnread(c.Request.Context())
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch unread notifications")
		return
	}
	response.SuccessList(c, notifications, len(notifications))
}

// Get godoc
// GET /api/notifications/:id
func (h *NotificationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "notification")
	if !ok {
		return
	}

	n, err := h.notificationService.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, notificationNotFound)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch notification")
		return
	}
	response.Success(c, http.StatusOK, n)
}

// Update godoc
// PATCH /api/notifications/:id
// Only the read flag is mutable.
func (h *NotificationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "notification")
	if !ok {
		return
	}

	var req model.MarkNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	h.setRead(c, id, *req.IsRead)
}

// MarkRead godoc
// PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "notification")
	if !ok {
		return
	}
	h.setRead(c, id, true)
}

func (h *NotificationHandler) setRead(c *gin.Context, id int, isRead bool) {
	n, err := h.notificationService.SetRead(c.Request.Context(), id, isRead)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, notificationNotFound)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to update notification")
		return
	}

	msg := "Notification marked as read"
	if !isRead {
		msg = "Notification marked as unread"
	}
	response.SuccessMessage(c, http.StatusOK, n, msg)
}

// Delete godoc
// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "notification")
	if !ok {
		return
	}

	deleted, err := h.notificationService.Delete(c.Request.Context(), id)
	if err != nil {
		failInternal(c, h.log, err, "Failed to delete notification")
		return
	}
	if !deleted {
		notFound(c, notificationNotFound)
		return
	}
	response.SuccessMessage(c, http.StatusOK, nil, "Notification deleted successfully")
}
