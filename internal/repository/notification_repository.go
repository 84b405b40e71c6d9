package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightforge/agency-backend/internal/model"
)

const notificationColumns = `id, type, title, message, is_read, metadata, created_at`

// NotificationRepository handles notification data access.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func scanNotification(row pgx.Row) (*model.Notification, error) {
	n := &model.Notification{}
	if err := row.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.Metadata, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) list(ctx context.Context, query string) ([]*model.Notification, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Create inserts a new notification. New notifications are always unread.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.Type == "" {
		n.Type = model.NotificationTypeInfo
	}
	n.IsRead = false
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (type, title, message, metadata)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		n.Type, n.Title, n.Message, n.Metadata,
	).Scan(&n.ID, &n.CreatedAt)
}

// List returns every notification, newest first.
func (r *NotificationRepository) List(ctx context.Context) ([]*model.Notification, error) {
	return r.list(ctx, `SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC, id DESC`)
}

// ListUnread returns unread notifications, newest first.
func (r *NotificationRepository) ListUnread(ctx context.Context) ([]*model.Notification, error) {
	return r.list(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE NOT is_read
		ORDER BY created_at DESC, id DESC`)
}

// GetByID retrieves a notification by its ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id int) (*model.Notification, error) {
	n, err := scanNotification(r.pool.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return n, nil
}

// SetRead flips the read flag, the only mutable field of a notification.
func (r *NotificationRepository) SetRead(ctx context.Context, id int, isRead bool) (*model.Notification, error) {
	n, err := scanNotification(r.pool.QueryRow(ctx,
		`UPDATE notifications SET is_read = $1 WHERE id = $2 RETURNING `+notificationColumns,
		isRead, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return n, nil
}

// Delete removes a notification and reports whether it existed.
func (r *NotificationRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountUnread returns the number of unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&n)
	return n, err
}
