package memory

import (
	"context"
	"encoding/json"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

type projectRow = model.Project

func copyProject(p *model.Project) *model.Project {
	out := *p
	out.N8NWorkflows = cloneStrings(p.N8NWorkflows)
	out.Deliverables = cloneStrings(p.Deliverables)
	if p.Requirements != nil {
		out.Requirements = append(json.RawMessage(nil), p.Requirements...)
	}
	return &out
}

// ProjectRepository is the in-memory repository.ProjectStore.
type ProjectRepository struct {
	table   *table[projectRow]
	clients *ClientRepository
}

var _ repository.ProjectStore = (*ProjectRepository)(nil)

func (r *ProjectRepository) list(keep func(projectRow) bool) []*model.Project {
	ids := r.table.sortedIDs(keep, func(a, b projectRow) bool {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	out := make([]*model.Project, 0, len(ids))
	for _, id := range ids {
		row := r.table.rows[id]
		out = append(out, copyProject(&row))
	}
	return out
}

func (r *ProjectRepository) Create(_ context.Context, p *model.Project) error {
	if p.Status == "" {
		p.Status = model.ProjectStatusPlanning
	}

	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if _, ok := r.clients.table.rows[p.ClientID]; !ok {
		return repository.ErrInvalidReference
	}
	now := r.table.now()
	p.CreatedAt, p.UpdatedAt = now, now
	p.ID = r.table.nextID
	r.table.insert(*copyProject(p))
	return nil
}

func (r *ProjectRepository) List(_ context.Context) ([]*model.Project, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return r.list(nil), nil
}

func (r *ProjectRepository) ListByClient(_ context.Context, clientID int) ([]*model.Project, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return r.list(func(p projectRow) bool { return p.ClientID == clientID }), nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id int) (*model.Project, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	row, ok := r.table.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyProject(&row), nil
}

func (r *ProjectRepository) Update(_ context.Context, p *model.Project) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	prev, ok := r.table.rows[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.clients.table.rows[p.ClientID]; !ok {
		return repository.ErrInvalidReference
	}
	p.CreatedAt = prev.CreatedAt
	p.UpdatedAt = bump(r.table.now(), prev.UpdatedAt)
	r.table.rows[p.ID] = *copyProject(p)
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id int) (bool, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if _, ok := r.table.rows[id]; !ok {
		return false, nil
	}
	delete(r.table.rows, id)
	return true, nil
}

func (r *ProjectRepository) Count(_ context.Context) (int, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return len(r.table.rows), nil
}

func (r *ProjectRepository) CountByStatus(_ context.Context) (map[model.ProjectStatus]int, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	counts := make(map[model.ProjectStatus]int)
	for _, row := range r.table.rows {
		counts[row.Status]++
	}
	return counts, nil
}
