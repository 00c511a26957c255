// Package intake provides the scripted lead intake bounded context module.
package intake

import (
	apphttp "quotedesk_backend/internal/http"
	"quotedesk_backend/internal/intake/handler"
	"quotedesk_backend/internal/intake/service"
	leadsvc "quotedesk_backend/internal/leads/service"
	"quotedesk_backend/platform/logger"
	"quotedesk_backend/platform/validator"
)

// Module is the intake bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the intake module.
func NewModule(leads *leadsvc.Service, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(leads, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// SetPromptRewriter installs the optional conversational prompt rewriter.
func (m *Module) SetPromptRewriter(r service.PromptRewriter) {
	m.service.SetPromptRewriter(r)
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the intake service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts intake routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	intakeGroup := ctx.V1.Group("/intake")
	m.handler.RegisterRoutes(intakeGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
