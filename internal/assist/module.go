// Package assist provides the upstream language model relay module.
package assist

import (
	"time"

	"quotedesk_backend/internal/assist/handler"
	"quotedesk_backend/internal/assist/service"
	apphttp "quotedesk_backend/internal/http"
	"quotedesk_backend/platform/logger"
	"quotedesk_backend/platform/validator"
)

// Config carries the upstream endpoint settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Module is the assist bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the assist module.
func NewModule(cfg Config, val *validator.Validator, log *logger.Logger) *Module {
	client := service.NewClient(service.ClientConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	svc := service.New(client, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assist"
}

// Service returns the assist service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts assist routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	assistGroup := ctx.V1.Group("/assist")
	m.handler.RegisterRoutes(assistGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
