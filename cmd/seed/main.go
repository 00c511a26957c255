// Command seed resets the lead store to the built-in example dataset. It is
// meant for demos and local development; running it against a live store
// discards all current leads.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"quotedesk_backend/internal/config"
	"quotedesk_backend/internal/leads/repository"
	"quotedesk_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

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
	if err := store.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}

	leads, err := store.Reset(ctx)
	if err != nil {
		log.Error("failed to seed lead store", "error", err)
		panic("failed to seed lead store: " + err.Error())
	}

	log.Info("lead store seeded", "leads", len(leads))
}
