package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightforge/agency-backend/internal/model"
)

// AnalyticsRepository handles analytics data access.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// Record inserts a metric data point.
func (r *AnalyticsRepository) Record(ctx context.Context, a *model.Analytics) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO analytics (date, metric, value, metadata)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.Date, a.Metric, a.Value, a.Metadata,
	).Scan(&a.ID, &a.CreatedAt)
}

// Query returns data points matching q, oldest first.
func (r *AnalyticsRepository) Query(ctx context.Context, q model.AnalyticsQuery) ([]*model.Analytics, error) {
	var (
		where []string
		args  []any
	)
	if q.Metric != "" {
		args = append(args, q.Metric)
		where = append(where, fmt.Sprintf("metric = $%d", len(args)))
	}
	if !q.From.IsZero() {
		args = append(args, q.From)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !q.To.IsZero() {
		args = append(args, q.To)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}

	query := `SELECT id, date, metric, value, metadata, created_at FROM analytics`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Analytics{}
	for rows.Next() {
		a := &model.Analytics{}
		if err := rows.Scan(&a.ID, &a.Date, &a.Metric, &a.Value, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
