package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

const (
	PollTimeout = 1 * time.Second // Must be >= 1s to satisfy Redis
	RetryDelay  = 5 * time.Second
)

// AnalyticsWorker consumes analytics_events_queue and persists each event.
type AnalyticsWorker struct {
	queue      Queue
	store      repository.AnalyticsStore
	log        zerolog.Logger
	retryDelay time.Duration
}

// NewAnalyticsWorker creates a new AnalyticsWorker.
func NewAnalyticsWorker(queue Queue, store repository.AnalyticsStore, log zerolog.Logger) *AnalyticsWorker {
	return &AnalyticsWorker{
		queue:      queue,
		store:      store,
		log:        log.With().Str("component", "analytics_worker").Logger(),
		retryDelay: RetryDelay,
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *AnalyticsWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AnalyticsWorker) processNext(ctx context.Context) {
	raw, err := w.queue.Pop(ctx, PollTimeout)
	if err != nil {
		if !errors.Is(err, ErrEmpty) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Queue pop error")
		}
		return
	}

	ev, err := decodeEvent(raw)
	if err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.persist(ctx, ev); err != nil {
		w.log.Error().Err(err).
			Str("metric", ev.Metric).
			Msg("Persist error, retrying later")
		// Push back to queue for retry.
		if err := w.queue.Push(context.Background(), raw); err != nil {
			w.log.Error().Err(err).Str("metric", ev.Metric).Msg("Requeue failed, event dropped")
		}
		select {
		case <-time.After(w.retryDelay):
		case <-ctx.Done():
		}
	}
}

func decodeEvent(raw []byte) (*model.AnalyticsEvent, error) {
	var ev model.AnalyticsEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, err
	}
	if ev.Metric == "" {
		return nil, errors.New("analytics event without metric")
	}
	return &ev, nil
}

func (w *AnalyticsWorker) persist(ctx context.Context, ev *model.AnalyticsEvent) error {
	return w.store.Record(ctx, &model.Analytics{
		Date:     ev.Date,
		Metric:   ev.Metric,
		Value:    ev.Value,
		Metadata: ev.Metadata,
	})
}

// drain processes all remaining items in the queue before shutdown.
func (w *AnalyticsWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.queue.TryPop(ctx)
		if err != nil {
			break
		}

		ev, err := decodeEvent(raw)
		if err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.persist(ctx, ev); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			_ = w.queue.Push(ctx, raw)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
