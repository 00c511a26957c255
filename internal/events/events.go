// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"quotedesk_backend/platform/events"
	"quotedesk_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when an intake flow completes and a lead is
// persisted with its initial score and price.
type LeadCreated struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	ServiceType string    `json:"serviceType"`
	Score       int       `json:"score"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadStatusChanged is published when staff move a lead to another status label.
type LeadStatusChanged struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	Previous string    `json:"previous"`
	Next     string    `json:"next"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status_changed" }

// LeadMarginChanged is published after a margin edit, once margin and final
// price have been updated together.
type LeadMarginChanged struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	Margin     float64   `json:"margin"`
	FinalPrice float64   `json:"finalPrice"`
}

func (e LeadMarginChanged) EventName() string { return "leads.margin_changed" }

// LeadSummaryAttached is published when enrichment produces a project summary.
type LeadSummaryAttached struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Kind   string    `json:"kind"`
}

func (e LeadSummaryAttached) EventName() string { return "leads.summary_attached" }
