package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotedesk_backend/internal/assist"
	"quotedesk_backend/internal/config"
	"quotedesk_backend/internal/events"
	apphttp "quotedesk_backend/internal/http"
	"quotedesk_backend/internal/http/router"
	"quotedesk_backend/internal/intake"
	"quotedesk_backend/internal/leads"
	"quotedesk_backend/internal/leads/repository"
	"quotedesk_backend/internal/scheduler"
	"quotedesk_backend/platform/logger"
	"quotedesk_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("invalid redis url", "error", err)
		panic("invalid redis url: " + err.Error())
	}
	client := redis.NewClient(opt)
	defer client.Close()

	store := repository.NewStore(client, log)
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return store.Ping(ctx)
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(store, eventBus, val, log)
	intakeModule := intake.NewModule(leadsModule.Service(), val, log)

	modules := []apphttp.Module{
		leadsModule,
		intakeModule,
	}

	// Assist relay is optional: without an API key the intake flow runs on
	// its deterministic script text and no assist routes are mounted.
	if cfg.AssistEnabled() {
		assistModule := assist.NewModule(assist.Config{
			APIKey:  cfg.AssistAPIKey,
			BaseURL: cfg.AssistBaseURL,
			Model:   cfg.AssistModel,
			Timeout: cfg.AssistTimeout,
		}, val, log)
		intakeModule.SetPromptRewriter(assistModule.Service())
		modules = append(modules, assistModule)
		log.Info("assist relay enabled", "model", cfg.AssistModel)
	} else {
		log.Warn("ASSIST_API_KEY not configured; assist relay disabled")
	}

	// Background enrichment via asynq; leads are enriched on demand when
	// the queue is unavailable.
	enrichClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Warn("failed to initialize enrichment scheduler", "error", err)
	} else {
		defer enrichClient.Close()
		leadsModule.SetEnrichmentScheduler(eventBus, enrichClient, log)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   store,
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
