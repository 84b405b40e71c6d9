package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/handler"
	"github.com/brightforge/agency-backend/internal/integration"
	"github.com/brightforge/agency-backend/internal/logger"
	"github.com/brightforge/agency-backend/internal/router"
	"github.com/brightforge/agency-backend/internal/service"
	"github.com/brightforge/agency-backend/internal/validator"
	"github.com/brightforge/agency-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("storage", cfg.StorageDriver).
		Str("log_level", cfg.LogLevel).
		Msg("Starting agency backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Storage ──────────────────────────────────────────────────
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.close()

	// ─── Integrations ──────────────────────────────────────────────────
	dispatcher := integration.New(cfg.Integrations, log)
	for name, st := range dispatcher.Status() {
		log.Debug().Str("provider", name).Bool("enabled", st.Enabled).Msg("Integration")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, store.adminUsers, store.sessions, log)
	notificationService := service.NewNotificationService(store.notifications, store.broker, log)
	analyticsService := service.NewAnalyticsService(store.analytics, store.queue, log)
	dispatcher.SetFailureRecorder(analyticsService)

	contactService := service.NewContactService(store.contacts, dispatcher, notificationService, analyticsService, log)
	clientService := service.NewClientService(store.clients, store.projects, dispatcher, notificationService, log)
	projectService := service.NewProjectService(store.projects, dispatcher, notificationService, log)
	dashboardService := service.NewDashboardService(store.contacts, store.clients, store.projects, store.notifications)
	webhookService := service.NewWebhookService(notificationService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, log),
		Contact:      handler.NewContactHandler(contactService, log),
		Client:       handler.NewClientHandler(clientService, log),
		Project:      handler.NewProjectHandler(projectService, log),
		Notification: handler.NewNotificationHandler(notificationService, log),
		Analytics:    handler.NewAnalyticsHandler(analyticsService, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService, log),
		Webhook:      handler.NewWebhookHandler(webhookService, log),
		System:       handler.NewSystemHandler(store.checks, dispatcher, log),
		WS:           handler.NewWSHandler(store.broker, notificationService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	analyticsWorker := worker.NewAnalyticsWorker(store.queue, store.analytics, log)
	go func() {
		defer close(workerDone)
		analyticsWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the analytics worker and wait for its queue to drain.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(5 * time.Second):
		log.Warn().Msg("Analytics worker did not drain in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
