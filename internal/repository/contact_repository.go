package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightforge/agency-backend/internal/model"
)

const contactColumns = `id, name, email, phone, company, message, status, priority, source, tags,
	assigned_to, follow_up_date, n8n_workflow_id, n8n_execution_id, created_at, updated_at`

// ContactRepository handles contact submission data access.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func scanContact(row pgx.Row) (*model.ContactSubmission, error) {
	c := &model.ContactSubmission{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Message, &c.Status, &c.Priority,
		&c.Source, &c.Tags, &c.AssignedTo, &c.FollowUpDate, &c.N8NWorkflowID, &c.N8NExecutionID,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new submission, filling in server-side defaults.
func (r *ContactRepository) Create(ctx context.Context, c *model.ContactSubmission) error {
	if c.Status == "" {
		c.Status = model.ContactStatusNew
	}
	if c.Priority == "" {
		c.Priority = model.PriorityMedium
	}
	if c.Source == "" {
		c.Source = model.DefaultContactSource
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, phone, company, message, status, priority, source, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.Company, c.Message, c.Status, c.Priority, c.Source, c.Tags,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translate(err, nil)
}

// List returns every submission, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []*model.ContactSubmission{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetByID retrieves a submission by its ID.
func (r *ContactRepository) GetByID(ctx context.Context, id int) (*model.ContactSubmission, error) {
	c, err := scanContact(r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return c, nil
}

// Update writes every mutable field of c. updated_at always moves forward,
// even when two updates land within the same clock tick.
func (r *ContactRepository) Update(ctx context.Context, c *model.ContactSubmission) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE contact_submissions SET name = $1, email = $2, phone = $3, company = $4, message = $5,
		   status = $6, priority = $7, source = $8, tags = $9, assigned_to = $10, follow_up_date = $11,
		   n8n_workflow_id = $12, n8n_execution_id = $13,
		   updated_at = GREATEST(NOW(), updated_at + INTERVAL '1 microsecond')
		 WHERE id = $14
		 RETURNING updated_at`,
		c.Name, c.Email, c.Phone, c.Company, c.Message, c.Status, c.Priority, c.Source, c.Tags,
		c.AssignedTo, c.FollowUpDate, c.N8NWorkflowID, c.N8NExecutionID, c.ID,
	).Scan(&c.UpdatedAt)
	return translate(err, nil)
}

// Delete removes a submission and reports whether it existed.
func (r *ContactRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Stats counts submissions overall and since each window's lower bound.
func (r *ContactRepository) Stats(ctx context.Context, w model.StatsWindows) (*model.ContactStats, error) {
	s := &model.ContactStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE created_at >= $3)
		 FROM contact_submissions`,
		w.Today, w.Week, w.Month,
	).Scan(&s.TotalSubmissions, &s.TodaySubmissions, &s.WeekSubmissions, &s.MonthSubmissions)
	if err != nil {
		return nil, err
	}
	return s, nil
}
