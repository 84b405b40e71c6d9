package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/integration"
	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
	"github.com/brightforge/agency-backend/internal/worker"
)

// DefaultAnalyticsWindow is used when a query gives no start date.
const DefaultAnalyticsWindow = 30 * 24 * time.Hour

// AnalyticsService records metrics, either directly or through the analytics queue.
type AnalyticsService struct {
	repo  repository.AnalyticsStore
	queue worker.Queue
	now   Clock
	log   zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService. queue may be nil, in which
// case enqueued events are written synchronously.
func NewAnalyticsService(repo repository.AnalyticsStore, queue worker.Queue, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:  repo,
		queue: queue,
		now:   time.Now,
		log:   log.With().Str("component", "analytics").Logger(),
	}
}

// WithClock replaces the time source.
func (s *AnalyticsService) WithClock(now Clock) *AnalyticsService {
	s.now = now
	return s
}

// Record stores a data point immediately. A zero date means now.
func (s *AnalyticsService) Record(ctx context.Context, req *model.RecordAnalyticsRequest) (*model.Analytics, error) {
	a := &model.Analytics{
		Date:     s.now(),
		Metric:   req.Metric,
		Value:    *req.Value,
		Metadata: req.Metadata,
	}
	if req.Date != nil {
		a.Date = *req.Date
	}
	if err := s.repo.Record(ctx, a); err != nil {
		return nil, fmt.Errorf("record analytics: %w", err)
	}
	return a, nil
}

// Query returns data points for metric between from and to. A zero from
// defaults to DefaultAnalyticsWindow before now; a zero to means now.
func (s *AnalyticsService) Query(ctx context.Context, metric string, from, to time.Time) ([]*model.Analytics, error) {
	now := s.now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.Add(-DefaultAnalyticsWindow)
	}
	return s.repo.Query(ctx, model.AnalyticsQuery{Metric: metric, From: from, To: to})
}

// Enqueue hands an event to the analytics worker. If the queue is unavailable
// the event is written directly.
func (s *AnalyticsService) Enqueue(ctx context.Context, metric string, value int, metadata map[string]any) {
	ev := model.AnalyticsEvent{Metric: metric, Value: value, Date: s.now(), Metadata: metadata}

	if s.queue != nil {
		payload, err := json.Marshal(ev)
		if err == nil {
			if err = s.queue.Push(ctx, payload); err == nil {
				return
			}
		}
		s.log.Warn().Err(err).Str("metric", metric).Msg("Enqueue failed, recording synchronously")
	}

	if err := s.repo.Record(ctx, &model.Analytics{Date: ev.Date, Metric: metric, Value: value, Metadata: metadata}); err != nil {
		s.log.Error().Err(err).Str("metric", metric).Msg("Record analytics failed")
	}
}

// RecordIntegrationFailure counts a failed provider call.
func (s *AnalyticsService) RecordIntegrationFailure(ctx context.Context, provider string, kind integration.EventKind, err error) {
	s.Enqueue(ctx, model.MetricIntegrationFailures, 1, map[string]any{
		"provider": provider,
		"event":    string(kind),
		"error":    err.Error(),
	})
}
