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

// ClientService handles client business logic.
type ClientService struct {
	clients       repository.ClientStore
	projects      repository.ProjectStore
	dispatcher    EventDispatcher
	notifications *NotificationService
	now           Clock
	log           zerolog.Logger
}

// NewClientService creates a new ClientService.
func NewClientService(
	clients repository.ClientStore,
	projects repository.ProjectStore,
	dispatcher EventDispatcher,
	notifications *NotificationService,
	log zerolog.Logger,
) *ClientService {
	return &ClientService{
		clients:       clients,
		projects:      projects,
		dispatcher:    dispatcher,
		notifications: notifications,
		now:           time.Now,
		log:           log.With().Str("component", "clients").Logger(),
	}
}

// WithClock replaces the time source.
func (s *ClientService) WithClock(now Clock) *ClientService {
	s.now = now
	return s
}

// Create persists a client, then notifies integrations and admins.
func (s *ClientService) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	c := req.ToClient()
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}

	ctx = detach(ctx)
	results := s.dispatcher.Dispatch(ctx, integration.NewClientEvent(c, s.now()))

	n := &model.Notification{
		Type:     model.NotificationTypeClient,
		Title:    "New Client Added",
		Message:  fmt.Sprintf("New client %s has been added to the system", c.Name),
		Metadata: map[string]any{"clientId": c.ID, "integrations": results},
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Int("client_id", c.ID).Msg("Client notification failed")
	}
	return c, nil
}

// List returns every client, newest first.
func (s *ClientService) List(ctx context.Context) ([]*model.Client, error) {
	return s.clients.List(ctx)
}

// GetWithProjects returns a client together with its projects.
func (s *ClientService) GetWithProjects(ctx context.Context, id int) (*model.ClientWithProjects, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list client projects: %w", err)
	}
	return &model.ClientWithProjects{Client: c, Projects: projects}, nil
}

// Update applies a partial update.
func (s *ClientService) Update(ctx context.Context, id int, req *model.UpdateClientRequest) (*model.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(c)
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a client. Clients with projects are refused with
// repository.ErrHasDependents.
func (s *ClientService) Delete(ctx context.Context, id int) (bool, error) {
	return s.clients.Delete(ctx, id)
}
