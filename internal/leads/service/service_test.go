package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"quotedesk_backend/internal/events"
	"quotedesk_backend/internal/leads/domain"
	"quotedesk_backend/internal/leads/pricing"
	"quotedesk_backend/internal/leads/repository"
	"quotedesk_backend/platform/apperr"
	"quotedesk_backend/platform/logger"
)

// memoryRepo is an in-memory LeadsRepository for service tests.
type memoryRepo struct {
	leads []domain.Lead
}

func (m *memoryRepo) LoadAll(ctx context.Context) ([]domain.Lead, error) {
	out := make([]domain.Lead, len(m.leads))
	copy(out, m.leads)
	return out, nil
}

func (m *memoryRepo) SaveAll(ctx context.Context, leads []domain.Lead) error {
	m.leads = leads
	return nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	for _, lead := range m.leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return domain.Lead{}, repository.ErrNotFound
}

func (m *memoryRepo) Upsert(ctx context.Context, lead domain.Lead) error {
	for i := range m.leads {
		if m.leads[i].ID == lead.ID {
			m.leads[i] = lead
			return nil
		}
	}
	m.leads = append(m.leads, lead)
	return nil
}

func (m *memoryRepo) Reset(ctx context.Context) ([]domain.Lead, error) {
	seed := repository.SeedLeads()
	m.leads = seed
	return seed, nil
}

// recordingBus captures synchronously published event names.
type recordingBus struct {
	events.Bus
	published []string
}

func newTestService() (*Service, *memoryRepo, *recordingBus) {
	log := logger.New("test")
	repo := &memoryRepo{}
	bus := &recordingBus{Bus: events.NewInMemoryBus(log)}
	return New(repo, bus, log), repo, bus
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event.EventName())
}

func TestCreateFromIntake_DefaultsAndDerivedFields(t *testing.T) {
	svc, repo, bus := newTestService()

	lead, err := svc.CreateFromIntake(context.Background(), CreateLeadParams{
		Customer:      domain.Customer{Name: "A. Jansen", Phone: "0612345678"},
		ServiceType:   "painting",
		Timeframe:     "within 1 week",
		EstimatedCost: 12000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Margin != pricing.DefaultMarginPercent {
		t.Fatalf("expected default margin %v, got %v", pricing.DefaultMarginPercent, lead.Margin)
	}
	if lead.FinalPrice != pricing.FinalPrice(12000, pricing.DefaultMarginPercent) {
		t.Fatalf("expected derived final price, got %v", lead.FinalPrice)
	}
	if lead.Score <= 0 {
		t.Fatalf("expected a positive score, got %d", lead.Score)
	}
	if lead.Customer.Phone != "+31612345678" {
		t.Fatalf("expected normalized phone, got %q", lead.Customer.Phone)
	}
	if len(repo.leads) != 1 {
		t.Fatalf("expected 1 persisted lead, got %d", len(repo.leads))
	}
	if len(bus.published) != 1 || bus.published[0] != "leads.created" {
		t.Fatalf("expected leads.created event, got %v", bus.published)
	}
}

func TestCreateFromIntake_RejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateFromIntake(ctx, CreateLeadParams{EstimatedCost: 1000}); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for missing service type, got %v", err)
	}
	if _, err := svc.CreateFromIntake(ctx, CreateLeadParams{ServiceType: "painting", EstimatedCost: -1}); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for negative cost, got %v", err)
	}
}

func TestList_SortsByScoreWhenRequested(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := repo.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	insertion, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range insertion {
		if insertion[i].ID != repo.leads[i].ID {
			t.Fatal("expected insertion order without sort")
		}
	}

	ranked, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Fatalf("expected descending scores, got %d before %d", ranked[i-1].Score, ranked[i].Score)
		}
	}
}

func TestUpdateMargin_KeepsPriceConsistent(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	lead := domain.New(domain.Customer{}, "kitchen")
	lead.EstimatedCost = 180000
	lead.Recalculate()
	repo.leads = append(repo.leads, lead)

	updated, err := svc.UpdateMargin(ctx, lead.ID, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Margin != 25 || updated.FinalPrice != 225000 {
		t.Fatalf("expected margin 25 and price 225000, got %v and %v", updated.Margin, updated.FinalPrice)
	}

	stored, _ := repo.FindByID(ctx, lead.ID)
	if stored.Margin != updated.Margin || stored.FinalPrice != updated.FinalPrice {
		t.Fatal("expected stored record to match returned lead")
	}
	if len(bus.published) != 1 || bus.published[0] != "leads.margin_changed" {
		t.Fatalf("expected leads.margin_changed event, got %v", bus.published)
	}
}

func TestUpdateMargin_RejectsOutOfRange(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	lead := domain.New(domain.Customer{}, "kitchen")
	repo.leads = append(repo.leads, lead)

	for _, margin := range []float64{-1, 101} {
		if _, err := svc.UpdateMargin(ctx, lead.ID, margin); apperr.GetKind(err) != apperr.KindValidation {
			t.Fatalf("expected validation error for margin %v, got %v", margin, err)
		}
	}
}

func TestUpdateStatus_AllowsAnyKnownTransition(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	lead := domain.New(domain.Customer{}, "roofing")
	lead.Status = domain.StatusClosed
	repo.leads = append(repo.leads, lead)

	updated, err := svc.UpdateStatus(ctx, lead.ID, domain.StatusNew)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusNew {
		t.Fatalf("expected status %q, got %q", domain.StatusNew, updated.Status)
	}
}

func TestUpdateStatus_RejectsUnknownLabel(t *testing.T) {
	svc, repo, _ := newTestService()

	lead := domain.New(domain.Customer{}, "roofing")
	repo.leads = append(repo.leads, lead)

	if _, err := svc.UpdateStatus(context.Background(), lead.ID, "archived"); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGet_MapsMissingLeadToNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestAttachSummary_RejectsMismatchedVariant(t *testing.T) {
	svc, repo, _ := newTestService()

	lead := domain.New(domain.Customer{}, "bathroom")
	repo.leads = append(repo.leads, lead)

	_, err := svc.AttachSummary(context.Background(), lead.ID, domain.Summary{Kind: domain.SummaryKindStructured})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuildQuotePreview_MarginOverrideIsNotPersisted(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	lead := domain.New(domain.Customer{Name: "K. Mulder"}, "extension")
	lead.EstimatedCost = 100000
	lead.Recalculate()
	repo.leads = append(repo.leads, lead)

	override := 30.0
	preview, err := svc.BuildQuotePreview(ctx, lead.ID, &override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preview.Margin != 30 || preview.FinalPrice != 130000 || preview.Profit != 30000 {
		t.Fatalf("unexpected preview pricing: %+v", preview)
	}
	if len(preview.Narrative) < 3 {
		t.Fatalf("expected at least 3 narrative bullets, got %d", len(preview.Narrative))
	}
	if len(preview.Checklist) != 7 {
		t.Fatalf("expected 7 checklist items, got %d", len(preview.Checklist))
	}

	stored, _ := repo.FindByID(ctx, lead.ID)
	if stored.Margin != pricing.DefaultMarginPercent {
		t.Fatalf("expected stored margin untouched, got %v", stored.Margin)
	}
}

func TestEnrich_AttachesStructuredSummaryAndSurvivesPolishFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	lead := domain.New(domain.Customer{Name: "S. Peters"}, "bathroom")
	lead.Scope = "New bathroom with walk-in shower"
	lead.Answers = map[string]string{"plumbing": "ja"}
	repo.leads = append(repo.leads, lead)

	failing := func(ctx context.Context, text string) (string, error) {
		return "", errors.New("upstream down")
	}

	enriched, err := svc.Enrich(ctx, lead.ID, failing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enriched.Summary == nil || enriched.Summary.Kind != domain.SummaryKindStructured {
		t.Fatal("expected a structured summary attached")
	}
	if enriched.Summary.Structured.Executive == "" {
		t.Fatal("expected deterministic executive text despite polish failure")
	}

	polished := func(ctx context.Context, text string) (string, error) {
		return "Polished: " + text, nil
	}
	enriched, err = svc.Enrich(ctx, lead.ID, polished)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := enriched.Summary.Structured.Executive; len(got) < 10 || got[:10] != "Polished: " {
		t.Fatalf("expected polished executive text, got %q", got)
	}
}
