package repository

import (
	"context"

	"github.com/brightforge/agency-backend/internal/model"
)

// ContactStore persists contact form submissions.
type ContactStore interface {
	Create(ctx context.Context, c *model.ContactSubmission) error
	List(ctx context.Context) ([]*model.ContactSubmission, error)
	GetByID(ctx context.Context, id int) (*model.ContactSubmission, error)
	Update(ctx context.Context, c *model.ContactSubmission) error
	Delete(ctx context.Context, id int) (bool, error)
	Stats(ctx context.Context, w model.StatsWindows) (*model.ContactStats, error)
}

// ClientStore persists clients. Emails are unique and a client with projects cannot be deleted.
type ClientStore interface {
	Create(ctx context.Context, c *model.Client) error
	List(ctx context.Context) ([]*model.Client, error)
	GetByID(ctx context.Context, id int) (*model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ProjectStore persists projects. Every project references an existing client.
type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) error
	List(ctx context.Context) ([]*model.Project, error)
	ListByClient(ctx context.Context, clientID int) ([]*model.Project, error)
	GetByID(ctx context.Context, id int) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[model.ProjectStatus]int, error)
}

// NotificationStore persists admin notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context) ([]*model.Notification, error)
	ListUnread(ctx context.Context) ([]*model.Notification, error)
	GetByID(ctx context.Context, id int) (*model.Notification, error)
	SetRead(ctx context.Context, id int, isRead bool) (*model.Notification, error)
	Delete(ctx context.Context, id int) (bool, error)
	CountUnread(ctx context.Context) (int, error)
}

// AnalyticsStore persists metric data points.
type AnalyticsStore interface {
	Record(ctx context.Context, a *model.Analytics) error
	Query(ctx context.Context, q model.AnalyticsQuery) ([]*model.Analytics, error)
}

// AdminUserStore persists back-office accounts.
type AdminUserStore interface {
	Create(ctx context.Context, u *model.AdminUser) error
	// CreateFirst inserts u only when no admin exists yet.
	CreateFirst(ctx context.Context, u *model.AdminUser) (bool, error)
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Count(ctx context.Context) (int, error)
}

// SessionStore persists admin sessions keyed by token.
type SessionStore interface {
	Create(ctx context.Context, s *model.AdminSession) error
	Get(ctx context.Context, token string) (*model.AdminSession, error)
	Delete(ctx context.Context, token string) (bool, error)
}
