package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightforge/agency-backend/internal/model"
)

const projectColumns = `id, client_id, name, description, type, status, start_date, end_date, budget,
	progress, n8n_workflows, requirements, deliverables, created_at, updated_at`

// ProjectRepository handles project data access.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func scanProject(row pgx.Row) (*model.Project, error) {
	p := &model.Project{}
	err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Type, &p.Status, &p.StartDate,
		&p.EndDate, &p.Budget, &p.Progress, &p.N8NWorkflows, &p.Requirements, &p.Deliverables,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...any) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Create inserts a new project. An unknown client yields ErrInvalidReference.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	if p.Status == "" {
		p.Status = model.ProjectStatusPlanning
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO projects (client_id, name, description, type, status, start_date, end_date, budget,
		   progress, n8n_workflows, requirements, deliverables)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		p.ClientID, p.Name, p.Description, p.Type, p.Status, p.StartDate, p.EndDate, p.Budget,
		p.Progress, p.N8NWorkflows, p.Requirements, p.Deliverables,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translate(err, ErrInvalidReference)
}

// List returns every project, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
}

// ListByClient returns the projects owned by a client, newest first.
func (r *ProjectRepository) ListByClient(ctx context.Context, clientID int) ([]*model.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE client_id = $1 ORDER BY created_at DESC, id DESC`,
		clientID)
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id int) (*model.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return p, nil
}

// Update writes every mutable field of p.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE projects SET client_id = $1, name = $2, description = $3, type = $4, status = $5,
		   start_date = $6, end_date = $7, budget = $8, progress = $9, n8n_workflows = $10,
		   requirements = $11, deliverables = $12,
		   updated_at = GREATEST(NOW(), updated_at + INTERVAL '1 microsecond')
		 WHERE id = $13
		 RETURNING updated_at`,
		p.ClientID, p.Name, p.Description, p.Type, p.Status, p.StartDate, p.EndDate, p.Budget,
		p.Progress, p.N8NWorkflows, p.Requirements, p.Deliverables, p.ID,
	).Scan(&p.UpdatedAt)
	return translate(err, ErrInvalidReference)
}

// Delete removes a project and reports whether it existed.
func (r *ProjectRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of projects.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}

// CountByStatus retrieves the distribution of projects by status.
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[model.ProjectStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ProjectStatus]int)
	for rows.Next() {
		var status model.ProjectStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
