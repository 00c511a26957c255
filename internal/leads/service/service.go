// Package service orchestrates lead mutations: everything that changes a
// lead recomputes its derived fields and writes back through the repository
// before returning.
package service

import (
	"context"
	"errors"
	"sort"

	"quotedesk_backend/internal/events"
	"quotedesk_backend/internal/leads/domain"
	"quotedesk_backend/internal/leads/pricing"
	"quotedesk_backend/internal/leads/repository"
	"quotedesk_backend/internal/leads/summary"
	"quotedesk_backend/platform/apperr"
	"quotedesk_backend/platform/logger"
	"quotedesk_backend/platform/phone"

	"github.com/google/uuid"
)

type Service struct {
	repo repository.LeadsRepository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo repository.LeadsRepository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateLeadParams carries a completed intake record. Margin is optional;
// the default markup applies when nil.
type CreateLeadParams struct {
	Customer      domain.Customer
	ServiceType   string
	Scope         string
	Location      string
	Timeframe     string
	Notes         string
	Attachments   []domain.Attachment
	Answers       map[string]string
	EstimatedCost float64
	Margin        *float64
}

// CreateFromIntake assembles a lead from a completed intake flow, computes
// score and price, persists it and publishes LeadCreated.
func (s *Service) CreateFromIntake(ctx context.Context, params CreateLeadParams) (domain.Lead, error) {
	if params.ServiceType == "" {
		return domain.Lead{}, apperr.Validation("service type is required")
	}
	if params.EstimatedCost < 0 {
		return domain.Lead{}, apperr.Validation("estimated cost cannot be negative")
	}

	params.Customer.Phone = phone.NormalizeE164(params.Customer.Phone)

	lead := domain.New(params.Customer, params.ServiceType)
	lead.Scope = params.Scope
	lead.Location = params.Location
	lead.Timeframe = params.Timeframe
	lead.Notes = params.Notes
	lead.Attachments = params.Attachments
	lead.Answers = params.Answers
	lead.EstimatedCost = params.EstimatedCost
	if params.Margin != nil {
		lead.Margin = pricing.ClampMargin(*params.Margin)
	}
	lead.Recalculate()

	if err := s.repo.Upsert(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      lead.ID,
		ServiceType: lead.ServiceType,
		Score:       lead.Score,
	})

	return lead, nil
}

// List returns the collection in insertion order, or ranked by score
// descending when sortByScore is set.
func (s *Service) List(ctx context.Context, sortByScore bool) ([]domain.Lead, error) {
	leads, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if sortByScore {
		sort.SliceStable(leads, func(i, j int) bool {
			return leads[i].Score > leads[j].Score
		})
	}
	return leads, nil
}

// Get returns one lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, err
	}
	return lead, nil
}

// UpdateMargin applies a staff margin edit. Margin and final price are
// updated together and persisted in one write, so the stored record can
// never carry a stale derived price.
func (s *Service) UpdateMargin(ctx context.Context, id uuid.UUID, marginPercent float64) (domain.Lead, error) {
	if marginPercent < 0 || marginPercent > 100 {
		return domain.Lead{}, apperr.Validation("margin must be between 0 and 100")
	}

	lead, err := s.Get(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	lead.ApplyMargin(marginPercent)
	if err := s.repo.Upsert(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadMarginChanged{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		Margin:     lead.Margin,
		FinalPrice: lead.FinalPrice,
	})

	return lead, nil
}

// UpdateStatus moves a lead to another status label. Any transition between
// known labels is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error) {
	if !status.IsValid() {
		return domain.Lead{}, apperr.Validation("unknown lead status")
	}

	lead, err := s.Get(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	previous := lead.Status
	lead.Status = status
	if err := s.repo.Upsert(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Previous:  string(previous),
		Next:      string(status),
	})

	return lead, nil
}

// AttachSummary stores an enrichment summary on the lead.
func (s *Service) AttachSummary(ctx context.Context, id uuid.UUID, sum domain.Summary) (domain.Lead, error) {
	if err := sum.Validate(); err != nil {
		return domain.Lead{}, err
	}

	lead, err := s.Get(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	lead.Summary = &sum
	if err := s.repo.Upsert(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadSummaryAttached{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Kind:      string(sum.Kind),
	})

	return lead, nil
}

// QuotePreview is the pricing and summary package for a quote document.
type QuotePreview struct {
	Lead       domain.Lead
	Margin     float64
	FinalPrice float64
	Profit     float64
	Narrative  []string
	Checklist  []domain.RequirementItem
}

// BuildQuotePreview prices a lead, optionally with a margin override that is
// not persisted, and generates the summary content for the quote document.
func (s *Service) BuildQuotePreview(ctx context.Context, id uuid.UUID, marginOverride *float64) (QuotePreview, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return QuotePreview{}, err
	}

	margin := lead.Margin
	if marginOverride != nil {
		if *marginOverride < 0 || *marginOverride > 100 {
			return QuotePreview{}, apperr.Validation("margin must be between 0 and 100")
		}
		margin = *marginOverride
	}

	generated := summary.Generate(summaryInput(lead))

	return QuotePreview{
		Lead:       lead,
		Margin:     margin,
		FinalPrice: pricing.FinalPrice(lead.EstimatedCost, margin),
		Profit:     pricing.Profit(lead.EstimatedCost, margin),
		Narrative:  generated.Narrative,
		Checklist:  generated.Checklist,
	}, nil
}

// Enrich runs the deterministic summary generator for a lead and attaches
// the structured result. The optional polish step rewrites the executive
// text; on any failure the deterministic text is kept unchanged.
func (s *Service) Enrich(ctx context.Context, id uuid.UUID, polish func(ctx context.Context, text string) (string, error)) (domain.Lead, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	structured := summary.Structured(summaryInput(lead))
	if polish != nil {
		if polished, err := polish(ctx, structured.Executive); err == nil && polished != "" {
			structured.Executive = polished
		} else if err != nil {
			s.log.AssistFallback("summary polish failed", err)
		}
	}

	return s.AttachSummary(ctx, id, domain.Summary{
		Kind:       domain.SummaryKindStructured,
		Structured: &structured,
	})
}

// ResetToSeed restores the example dataset. This is the only bulk-delete
// path in the application and requires an explicit operator action.
func (s *Service) ResetToSeed(ctx context.Context) ([]domain.Lead, error) {
	return s.repo.Reset(ctx)
}

// summaryInput maps a lead's stored record and raw answers onto what the
// summary generator reads.
func summaryInput(lead domain.Lead) summary.Input {
	answer := func(key string) string {
		if lead.Answers == nil {
			return ""
		}
		return lead.Answers[key]
	}

	description := answer("description")
	if description == "" {
		description = lead.Scope
	}

	return summary.Input{
		CustomerName: lead.Customer.Name,
		ProjectType:  lead.ServiceType,
		Location:     lead.Location,
		Description:  description,
		Electrical:   answer("electrical"),
		Plumbing:     answer("plumbing"),
		FloorHeating: answer("floor_heating"),
		Structural:   answer("structural"),
		StartDate:    answer("start_date"),
		Deadline:     answer("deadline"),
	}
}
