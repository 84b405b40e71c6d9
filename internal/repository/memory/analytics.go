package memory

import (
	"context"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

type analyticsRow = model.Analytics

// AnalyticsRepository is the in-memory repository.AnalyticsStore.
type AnalyticsRepository struct {
	table *table[analyticsRow]
}

var _ repository.AnalyticsStore = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) Record(_ context.Context, a *model.Analytics) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	a.CreatedAt = r.table.now()
	if a.Date.IsZero() {
		a.Date = a.CreatedAt
	}
	a.ID = r.table.nextID
	row := *a
	row.Metadata = cloneMap(a.Metadata)
	r.table.insert(row)
	return nil
}

func (r *AnalyticsRepository) Query(_ context.Context, q model.AnalyticsQuery) ([]*model.Analytics, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	keep := func(a analyticsRow) bool {
		if q.Metric != "" && a.Metric != q.Metric {
			return false
		}
		if !q.From.IsZero() && a.Date.Before(q.From) {
			return false
		}
		if !q.To.IsZero() && a.Date.After(q.To) {
			return false
		}
		return true
	}
	ids := r.table.sortedIDs(keep, func(a, b analyticsRow) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	out := make([]*model.Analytics, 0, len(ids))
	for _, id := range ids {
		row := r.table.rows[id]
		row.Metadata = cloneMap(row.Metadata)
		out = append(out, &row)
	}
	return out, nil
}
