package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/pubsub"
	"github.com/brightforge/agency-backend/internal/repository"
)

// NotificationService stores admin notifications and pushes new ones to the live feed.
type NotificationService struct {
	repo   repository.NotificationStore
	broker pubsub.Broker
	log    zerolog.Logger
}

// NewNotificationService creates a new NotificationService. broker may be nil.
func NewNotificationService(repo repository.NotificationStore, broker pubsub.Broker, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		broker: broker,
		log:    log.With().Str("component", "notifications").Logger(),
	}
}

// Create persists n and publishes it. A publish failure is logged only.
func (s *NotificationService) Create(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	s.publish(ctx, n)
	return nil
}

func (s *NotificationService) publish(ctx context.Context, n *model.Notification) {
	if s.broker == nil {
		return
	}
	payload, err := json.Marshal(model.NotificationEvent{Event: "notification", Notification: n})
	if err != nil {
		s.log.Error().Err(err).Int("notification_id", n.ID).Msg("Encode notification event")
		return
	}
	if err := s.broker.Publish(ctx, config.CacheKey.NotificationFeedChannel(), payload); err != nil {
		s.log.Warn().Err(err).Int("notification_id", n.ID).Msg("Publish notification failed")
	}
}

// List returns every notification, newest first.
func (s *NotificationService) List(ctx context.Context) ([]*model.Notification, error) {
	return s.repo.List(ctx)
}

// ListUnread returns unread notifications, newest first.
func (s *NotificationService) ListUnread(ctx context.Context) ([]*model.Notification, error) {
	return s.repo.ListUnread(ctx)
}

// GetByID retrieves a notification.
func (s *NotificationService) GetByID(ctx context.Context, id int) (*model.Notification, error) {
	return s.repo.GetByID(ctx, id)
}

// SetRead flips the read flag.
func (s *NotificationService) SetRead(ctx context.Context, id int, isRead bool) (*model.Notification, error) {
	return s.repo.SetRead(ctx, id, isRead)
}

// Delete removes a notification and reports whether it existed.
func (s *NotificationService) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// CountUnread returns the number of unread notifications.
func (s *NotificationService) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}
