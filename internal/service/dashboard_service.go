package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

// DashboardService aggregates counters for the admin landing page.
type DashboardService struct {
	contacts      repository.ContactStore
	clients       repository.ClientStore
	projects      repository.ProjectStore
	notifications repository.NotificationStore
	now           Clock
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	contacts repository.ContactStore,
	clients repository.ClientStore,
	projects repository.ProjectStore,
	notifications repository.NotificationStore,
) *DashboardService {
	return &DashboardService{
		contacts:      contacts,
		clients:       clients,
		projects:      projects,
		notifications: notifications,
		now:           time.Now,
	}
}

// WithClock replaces the time source.
func (s *DashboardService) WithClock(now Clock) *DashboardService {
	s.now = now
	return s
}

// GetStats computes the dashboard counters.
func (s *DashboardService) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	contactStats, err := s.contacts.Stats(ctx, model.WindowsAt(s.now()))
	if err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	totalClients, err := s.clients.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}
	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	byStatus, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("project status counts: %w", err)
	}
	unread, err := s.notifications.CountUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("count unread notifications: %w", err)
	}

	return &model.DashboardStats{
		TotalContacts:       contactStats.TotalSubmissions,
		Contacts:            *contactStats,
		TotalClients:        totalClients,
		TotalProjects:       totalProjects,
		ProjectsByStatus:    byStatus,
		UnreadNotifications: unread,
	}, nil
}
