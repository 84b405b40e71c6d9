package memory

import (
	"context"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

type contactRow = model.ContactSubmission

func copyContact(c *model.ContactSubmission) *model.ContactSubmission {
	out := *c
	out.Tags = cloneStrings(c.Tags)
	return &out
}

// ContactRepository is the in-memory repository.ContactStore.
type ContactRepository struct {
	table   *table[contactRow]
	clients *ClientRepository
}

var _ repository.ContactStore = (*ContactRepository)(nil)

func (r *ContactRepository) Create(_ context.Context, c *model.ContactSubmission) error {
	if c.Status == "" {
		c.Status = model.ContactStatusNew
	}
	if c.Priority == "" {
		c.Priority = model.PriorityMedium
	}
	if c.Source == "" {
		c.Source = model.DefaultContactSource
	}

	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	now := r.table.now()
	c.CreatedAt, c.UpdatedAt = now, now
	c.ID = r.table.nextID
	r.table.insert(*copyContact(c))
	return nil
}

func (r *ContactRepository) List(_ context.Context) ([]*model.ContactSubmission, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	ids := r.table.sortedIDs(nil, func(a, b contactRow) bool {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	out := make([]*model.ContactSubmission, 0, len(ids))
	for _, id := range ids {
		row := r.table.rows[id]
		out = append(out, copyContact(&row))
	}
	return out, nil
}

func (r *ContactRepository) GetByID(_ context.Context, id int) (*model.ContactSubmission, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	row, ok := r.table.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyContact(&row), nil
}

func (r *ContactRepository) Update(_ context.Context, c *model.ContactSubmission) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	prev, ok := r.table.rows[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = bump(r.table.now(), prev.UpdatedAt)
	r.table.rows[c.ID] = *copyContact(c)
	return nil
}

func (r *ContactRepository) Delete(_ context.Context, id int) (bool, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if _, ok := r.table.rows[id]; !ok {
		return false, nil
	}
	delete(r.table.rows, id)
	// Linked clients survive with a null reference.
	for clientID, row := range r.clients.table.rows {
		if row.ContactSubmissionID != nil && *row.ContactSubmissionID == id {
			row.ContactSubmissionID = nil
			r.clients.table.rows[clientID] = row
		}
	}
	return true, nil
}

func (r *ContactRepository) Stats(_ context.Context, w model.StatsWindows) (*model.ContactStats, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	s := &model.ContactStats{TotalSubmissions: len(r.table.rows)}
	for _, row := range r.table.rows {
		if !row.CreatedAt.Before(w.Today) {
			s.TodaySubmissions++
		}
		if !row.CreatedAt.Before(w.Week) {
			s.WeekSubmissions++
		}
		if !row.CreatedAt.Before(w.Month) {
			s.MonthSubmissions++
		}
	}
	return s, nil
}
