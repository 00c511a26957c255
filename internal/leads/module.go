// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"quotedesk_backend/internal/events"
	apphttp "quotedesk_backend/internal/http"
	"quotedesk_backend/internal/leads/handler"
	"quotedesk_backend/internal/leads/repository"
	"quotedesk_backend/internal/leads/service"
	"quotedesk_backend/platform/logger"
	"quotedesk_backend/platform/validator"

	"github.com/google/uuid"
)

// EnrichmentScheduler enqueues background summary enrichment for new leads.
type EnrichmentScheduler interface {
	ScheduleLeadEnrichment(ctx context.Context, leadID uuid.UUID) error
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.LeadsRepository
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(repo repository.LeadsRepository, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// SetEnrichmentScheduler subscribes background enrichment to LeadCreated
// events. Optional: without a scheduler, leads are enriched on demand only.
func (m *Module) SetEnrichmentScheduler(bus events.Bus, scheduler EnrichmentScheduler, log *logger.Logger) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadCreated)
		if !ok {
			return nil
		}
		if err := scheduler.ScheduleLeadEnrichment(ctx, e.LeadID); err != nil {
			log.Error("failed to schedule lead enrichment", "error", err, "leadId", e.LeadID)
		}
		return nil
	}))
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the lead repository for external use.
func (m *Module) Repository() repository.LeadsRepository {
	return m.repo
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leadsGroup := ctx.V1.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
