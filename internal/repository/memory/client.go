package memory

import (
	"context"
	"strings"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

type clientRow = model.Client

func copyClient(c *model.Client) *model.Client {
	out := *c
	if c.ContactSubmissionID != nil {
		id := *c.ContactSubmissionID
		out.ContactSubmissionID = &id
	}
	return &out
}

// ClientRepository is the in-memory repository.ClientStore.
type ClientRepository struct {
	table    *table[clientRow]
	projects *ProjectRepository
	contacts *ContactRepository
}

var _ repository.ClientStore = (*ClientRepository)(nil)

// emailTaken reports whether another client already uses email. Callers hold the lock.
func (r *ClientRepository) emailTaken(email string, exceptID int) bool {
	for id, row := range r.table.rows {
		if id != exceptID && strings.EqualFold(row.Email, email) {
			return true
		}
	}
	return false
}

// contactMissing reports whether c links to a submission that does not exist. Callers hold the lock.
func (r *ClientRepository) contactMissing(c *model.Client) bool {
	if c.ContactSubmissionID == nil {
		return false
	}
	_, ok := r.contacts.table.rows[*c.ContactSubmissionID]
	return !ok
}

func (r *ClientRepository) Create(_ context.Context, c *model.Client) error {
	if c.Status == "" {
		c.Status = model.ClientStatusPotential
	}

	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if r.contactMissing(c) {
		return repository.ErrInvalidReference
	}
	if r.emailTaken(c.Email, 0) {
		return repository.ErrConflict
	}
	now := r.table.now()
	c.CreatedAt, c.UpdatedAt = now, now
	c.ID = r.table.nextID
	r.table.insert(*copyClient(c))
	return nil
}

func (r *ClientRepository) List(_ context.Context) ([]*model.Client, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	ids := r.table.sortedIDs(nil, func(a, b clientRow) bool {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	out := make([]*model.Client, 0, len(ids))
	for _, id := range ids {
		row := r.table.rows[id]
		out = append(out, copyClient(&row))
	}
	return out, nil
}

func (r *ClientRepository) GetByID(_ context.Context, id int) (*model.Client, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	row, ok := r.table.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyClient(&row), nil
}

func (r *ClientRepository) Update(_ context.Context, c *model.Client) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	prev, ok := r.table.rows[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.contactMissing(c) {
		return repository.ErrInvalidReference
	}
	if r.emailTaken(c.Email, c.ID) {
		return repository.ErrConflict
	}
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = bump(r.table.now(), prev.UpdatedAt)
	r.table.rows[c.ID] = *copyClient(c)
	return nil
}

func (r *ClientRepository) Delete(_ context.Context, id int) (bool, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if _, ok := r.table.rows[id]; !ok {
		return false, nil
	}
	for _, p := range r.projects.table.rows {
		if p.ClientID == id {
			return false, repository.ErrHasDependents
		}
	}
	delete(r.table.rows, id)
	return true, nil
}

func (r *ClientRepository) Count(_ context.Context) (int, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return len(r.table.rows), nil
}
