package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/database"
	"github.com/brightforge/agency-backend/internal/handler"
	"github.com/brightforge/agency-backend/internal/pubsub"
	"github.com/brightforge/agency-backend/internal/repository"
	"github.com/brightforge/agency-backend/internal/repository/memory"
	"github.com/brightforge/agency-backend/internal/worker"
)

// analyticsQueueSize bounds the in-process analytics queue of the memory driver.
const analyticsQueueSize = 1024

// backend is the storage-dependent half of the wiring.
type backend struct {
	contacts      repository.ContactStore
	clients       repository.ClientStore
	projects      repository.ProjectStore
	notifications repository.NotificationStore
	analytics     repository.AnalyticsStore
	adminUsers    repository.AdminUserStore
	sessions      repository.SessionStore

	broker pubsub.Broker
	queue  worker.Queue
	checks map[string]handler.HealthCheck
	close  func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.StorageDriverMemory:
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		return openMemory(), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// openPostgres keeps entities in PostgreSQL and sessions, the analytics queue
// and the live feed in Redis.
func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &backend{
		contacts:      repository.NewContactRepository(pool),
		clients:       repository.NewClientRepository(pool),
		projects:      repository.NewProjectRepository(pool),
		notifications: repository.NewNotificationRepository(pool),
		analytics:     repository.NewAnalyticsRepository(pool),
		adminUsers:    repository.NewAdminUserRepository(pool),
		sessions:      repository.NewRedisSessionRepository(rdb),
		broker:        pubsub.NewRedisBroker(rdb),
		queue:         worker.NewRedisQueue(rdb, config.WorkerKey.AnalyticsEventsQueue),
		checks: map[string]handler.HealthCheck{
			"postgres": database.PostgresCheck(pool),
			"redis":    database.RedisCheck(rdb),
		},
		close: func() {
			_ = rdb.Close()
			pool.Close()
		},
	}, nil
}

// openMemory runs the whole system in-process.
func openMemory() *backend {
	store := memory.New(nil)
	return &backend{
		contacts:      store.Contacts,
		clients:       store.Clients,
		projects:      store.Projects,
		notifications: store.Notifications,
		analytics:     store.Analytics,
		adminUsers:    store.AdminUsers,
		sessions:      store.Sessions,
		broker:        pubsub.NewLocalBroker(),
		queue:         worker.NewMemoryQueue(analyticsQueueSize),
		checks:        map[string]handler.HealthCheck{},
		close:         func() {},
	}
}
