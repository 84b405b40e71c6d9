package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightforge/agency-backend/internal/model"
)

// AdminUserRepository handles admin account data access.
type AdminUserRepository struct {
	pool *pgxpool.Pool
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(pool *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{pool: pool}
}

// Create inserts a new admin. A taken username yields ErrConflict.
func (r *AdminUserRepository) Create(ctx context.Context, u *model.AdminUser) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (username, password_hash) VALUES ($1, $2) RETURNING id, created_at`,
		u.Username, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	return translate(err, nil)
}

// CreateFirst inserts u only while the table is empty.
func (r *AdminUserRepository) CreateFirst(ctx context.Context, u *model.AdminUser) (bool, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (username, password_hash)
		 SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM admin_users)
		 RETURNING id, created_at`,
		u.Username, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, translate(err, nil)
	}
	return true, nil
}

// GetByUsername retrieves an admin by their unique username.
func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	u := &model.AdminUser{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admin_users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	return u, nil
}

// Count returns the number of admin accounts.
func (r *AdminUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n)
	return n, err
}
