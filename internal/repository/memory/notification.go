package memory

import (
	"context"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

type notificationRow = model.Notification

func copyNotification(n *model.Notification) *model.Notification {
	out := *n
	out.Metadata = cloneMap(n.Metadata)
	return &out
}

// NotificationRepository is the in-memory repository.NotificationStore.
type NotificationRepository struct {
	table *table[notificationRow]
}

var _ repository.NotificationStore = (*NotificationRepository)(nil)

func (r *NotificationRepository) list(keep func(notificationRow) bool) []*model.Notification {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	ids := r.table.sortedIDs(keep, func(a, b notificationRow) bool {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	out := make([]*model.Notification, 0, len(ids))
	for _, id := range ids {
		row := r.table.rows[id]
		out = append(out, copyNotification(&row))
	}
	return out
}

func (r *NotificationRepository) Create(_ context.Context, n *model.Notification) error {
	if n.Type == "" {
		n.Type = model.NotificationTypeInfo
	}
	n.IsRead = false

	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	n.CreatedAt = r.table.now()
	n.ID = r.table.nextID
	r.table.insert(*copyNotification(n))
	return nil
}

func (r *NotificationRepository) List(_ context.Context) ([]*model.Notification, error) {
	return r.list(nil), nil
}

func (r *NotificationRepository) ListUnread(_ context.Context) ([]*model.Notification, error) {
	return r.list(func(n notificationRow) bool { return !n.IsRead }), nil
}

func (r *NotificationRepository) GetByID(_ context.Context, id int) (*model.Notification, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	row, ok := r.table.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyNotification(&row), nil
}

func (r *NotificationRepository) SetRead(_ context.Context, id int, isRead bool) (*model.Notification, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	row, ok := r.table.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.IsRead = isRead
	r.table.rows[id] = row
	return copyNotification(&row), nil
}

func (r *NotificationRepository) Delete(_ context.Context, id int) (bool, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if _, ok := r.table.rows[id]; !ok {
		return false, nil
	}
	delete(r.table.rows, id)
	return true, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context) (int, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	n := 0
	for _, row := range r.table.rows {
		if !row.IsRead {
			n++
		}
	}
	return n, nil
}
