package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	assistsvc "quotedesk_backend/internal/assist/service"
	"quotedesk_backend/internal/config"
	"quotedesk_backend/internal/events"
	"quotedesk_backend/internal/leads/repository"
	leadsvc "quotedesk_backend/internal/leads/service"
	"quotedesk_backend/internal/scheduler"
	"quotedesk_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)
	leadService := leadsvc.New(store, eventBus, log)

	// Summary polish through the assist relay when configured; without it
	// enrichment attaches the deterministic summary unchanged.
	var polish scheduler.PolishFunc
	if cfg.AssistEnabled() {
		assistClient := assistsvc.NewClient(assistsvc.ClientConfig{
			APIKey:  cfg.AssistAPIKey,
			BaseURL: cfg.AssistBaseURL,
			Model:   cfg.AssistModel,
			Timeout: cfg.AssistTimeout,
		})
		assistService := assistsvc.New(assistClient, log)
		polish = assistService.PolishSummary
		log.Info("assist summary polish enabled", "model", cfg.AssistModel)
	} else {
		log.Warn("ASSIST_API_KEY not configured; summaries are attached without polish")
	}

	worker, err := scheduler.NewWorker(cfg, leadService, polish, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
