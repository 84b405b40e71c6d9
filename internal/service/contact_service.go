package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/integration"
	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

// ContactService handles contact form submissions and their follow-up.
type ContactService struct {
	repo          repository.ContactStore
	dispatcher    EventDispatcher
	notifications *NotificationService
	analytics     *AnalyticsService
	now           Clock
	log           zerolog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(
	repo repository.ContactStore,
	dispatcher EventDispatcher,
	notifications *NotificationService,
	analytics *AnalyticsService,
	log zerolog.Logger,
) *ContactService {
	return &ContactService{
		repo:          repo,
		dispatcher:    dispatcher,
		notifications: notifications,
		analytics:     analytics,
		now:           time.Now,
		log:           log.With().Str("component", "contacts").Logger(),
	}
}

// WithClock replaces the time source.
func (s *ContactService) WithClock(now Clock) *ContactService {
	s.now = now
	return s
}

// Submit persists a public submission, then fans it out to the integrations,
// notifies the admins and counts it. Only the persist can fail the call.
func (s *ContactService) Submit(ctx context.Context, req *model.CreateContactRequest) (*model.ContactSubmission, error) {
	c := &model.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	ctx = detach(ctx)
	results := s.dispatcher.Dispatch(ctx, integration.NewContactEvent(c, s.now()))

	n := &model.Notification{
		Type:    model.NotificationTypeContact,
		Title:   "New Contact Submission",
		Message: fmt.Sprintf("New message from %s (%s)", c.Name, c.Email),
		Metadata: map[string]any{
			"contactId":    c.ID,
			"integrations": results,
		},
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Int("contact_id", c.ID).Msg("Contact notification failed")
	}

	s.analytics.Enqueue(ctx, model.MetricContactSubmissions, 1, map[string]any{"contactId": c.ID})

	s.log.Info().Int("contact_id", c.ID).Int("integrations", len(results)).Msg("Contact submitted")
	return c, nil
}

// List returns every submission, newest first.
func (s *ContactService) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a submission.
func (s *ContactService) GetByID(ctx context.Context, id int) (*model.ContactSubmission, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update.
func (s *ContactService) Update(ctx context.Context, id int, req *model.UpdateContactRequest) (*model.ContactSubmission, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a submission and reports whether it existed.
func (s *ContactService) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Stats counts submissions for today, the last 7 days and the last 30 days.
func (s *ContactService) Stats(ctx context.Context) (*model.ContactStats, error) {
	return s.repo.Stats(ctx, model.WindowsAt(s.now()))
}
