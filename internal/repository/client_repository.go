package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightforge/agency-backend/internal/model"
)

const clientColumns = `id, name, email, phone, company, industry, website, contact_submission_id,
	status, monthly_budget, notes, created_at, updated_at`

// ClientRepository handles client data access.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func scanClient(row pgx.Row) (*model.Client, error) {
	c := &model.Client{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Industry, &c.Website,
		&c.ContactSubmissionID, &c.Status, &c.MonthlyBudget, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new client. A duplicate email yields ErrConflict.
func (r *ClientRepository) Create(ctx context.Context, c *model.Client) error {
	if c.Status == "" {
		c.Status = model.ClientStatusPotential
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO clients (name, email, phone, company, industry, website, contact_submission_id,
		   status, monthly_budget, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.Company, c.Industry, c.Website, c.ContactSubmissionID,
		c.Status, c.MonthlyBudget, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translate(err, ErrInvalidReference)
}

// List returns every client, newest first.
func (r *ClientRepository) List(ctx context.Context) ([]*model.Client, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []*model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// GetByID retrieves a client by its ID.
func (r *ClientRepository) GetByID(ctx context.Context, id int) (*model.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return c, nil
}

// Update writes every mutable field of c.
func (r *ClientRepository) Update(ctx context.Context, c *model.Client) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE clients SET name = $1, email = $2, phone = $3, company = $4, industry = $5, website = $6,
		   contact_submission_id = $7, status = $8, monthly_budget = $9, notes = $10,
		   updated_at = GREATEST(NOW(), updated_at + INTERVAL '1 microsecond')
		 WHERE id = $11
		 RETURNING updated_at`,
		c.Name, c.Email, c.Phone, c.Company, c.Industry, c.Website, c.ContactSubmissionID,
		c.Status, c.MonthlyBudget, c.Notes, c.ID,
	).Scan(&c.UpdatedAt)
	return translate(err, ErrInvalidReference)
}

// Delete removes a client. Clients still owning projects yield ErrHasDependents.
func (r *ClientRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, translate(err, ErrHasDependents)
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of clients.
func (r *ClientRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}
