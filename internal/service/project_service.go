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

// ProjectService handles project business logic.
type ProjectService struct {
	repo          repository.ProjectStore
	dispatcher    EventDispatcher
	notifications *NotificationService
	now           Clock
	log           zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	repo repository.ProjectStore,
	dispatcher EventDispatcher,
	notifications *NotificationService,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		repo:          repo,
		dispatcher:    dispatcher,
		notifications: notifications,
		now:           time.Now,
		log:           log.With().Str("component", "projects").Logger(),
	}
}

// WithClock replaces the time source.
func (s *ProjectService) WithClock(now Clock) *ProjectService {
	s.now = now
	return s
}

// Create persists a project for an existing client. An unknown client yields
// repository.ErrInvalidReference.
func (s *ProjectService) Create(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	p := req.ToProject()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	ctx = detach(ctx)
	s.dispatcher.Dispatch(ctx, integration.ProjectEvent(integration.EventNewProject, p, s.now()))

	n := &model.Notification{
		Type:     model.NotificationTypeProject,
		Title:    "New Project Created",
		Message:  fmt.Sprintf("Project %q has been created", p.Name),
		Metadata: map[string]any{"projectId": p.ID, "clientId": p.ClientID},
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Int("project_id", p.ID).Msg("Project notification failed")
	}
	return p, nil
}

// List returns every project, newest first.
func (s *ProjectService) List(ctx context.Context) ([]*model.Project, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a project.
func (s *ProjectService) GetByID(ctx context.Context, id int) (*model.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update and triggers the project-updated workflows.
func (s *ProjectService) Update(ctx context.Context, id int, req *model.UpdateProjectRequest) (*model.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(detach(ctx), integration.ProjectEvent(integration.EventProjectUpdated, p, s.now()))
	return p, nil
}

// Delete removes a project and reports whether it existed.
func (s *ProjectService) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
