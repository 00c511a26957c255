package scheduler

import (
	"context"
	"fmt"

	"quotedesk_backend/internal/config"
	leadsvc "quotedesk_backend/internal/leads/service"
	"quotedesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// PolishFunc rewrites a generated summary into prose. Nil skips the polish
// step; the deterministic summary is attached as-is.
type PolishFunc func(ctx context.Context, text string) (string, error)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  *leadsvc.Service
	polish PolishFunc
	log    *logger.Logger
}

func NewWorker(cfg *config.Config, leads *leadsvc.Service, polish PolishFunc, log *logger.Logger) (*Worker, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.AsynqQueue
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leads,
		polish: polish,
		log:    log,
	}

	mux.HandleFunc(TaskLeadEnrich, w.handleLeadEnrich)

	return w, nil
}

func (w *Worker) handleLeadEnrich(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadEnrichPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	lead, err := w.leads.Enrich(ctx, leadID, w.polish)
	if err != nil {
		return err
	}

	w.log.Info("lead enriched", "leadId", lead.ID, "summaryKind", lead.Summary.Kind)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
