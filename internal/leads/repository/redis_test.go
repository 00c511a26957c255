package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quotedesk_backend/internal/leads/domain"
	"quotedesk_backend/platform/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, logger.New("test")), mr
}

func TestLoadAll_EmptyStoreReinitializesFromSeed(t *testing.T) {
	store, mr := newTestStore(t)

	leads, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("expected 3 seed leads, got %d", len(leads))
	}
	if !mr.Exists("quotedesk:leads") {
		t.Fatal("expected primary key written after reinitialization")
	}
	if !mr.Exists("leads") {
		t.Fatal("expected legacy mirror written after reinitialization")
	}
}

func TestLoadAll_MalformedPayloadReinitializesFromSeed(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set("quotedesk:leads", "{not json")

	leads, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("expected seed dataset after recovery, got %d leads", len(leads))
	}
}

func TestLoadAll_FallsBackToLegacyKey(t *testing.T) {
	store, mr := newTestStore(t)

	seeded, err := store.Reset(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := mr.Get("quotedesk:leads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.Del("quotedesk:leads")
	mr.Set("leads", payload)

	leads, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != len(seeded) {
		t.Fatalf("expected %d leads from legacy key, got %d", len(seeded), len(leads))
	}
}

func TestUpsert_AppendsNewAndReplacesExisting(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lead := domain.New(domain.Customer{Name: "T. Visser", Phone: "+31612345678"}, "kitchen")
	lead.EstimatedCost = 45000
	lead.Recalculate()

	if err := store.Upsert(ctx, lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leads, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 4 {
		t.Fatalf("expected 4 leads after append, got %d", len(leads))
	}
	if leads[3].ID != lead.ID {
		t.Fatal("expected new lead appended at the end")
	}

	lead.Status = domain.StatusContacted
	if err := store.Upsert(ctx, lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leads, err = store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 4 {
		t.Fatalf("expected 4 leads after replace, got %d", len(leads))
	}
	if leads[3].Status != domain.StatusContacted {
		t.Fatalf("expected replaced lead status %q, got %q", domain.StatusContacted, leads[3].Status)
	}
}

func TestFindByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seeded, err := store.Reset(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := store.FindByID(ctx, seeded[1].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != seeded[1].ID {
		t.Fatalf("expected lead %s, got %s", seeded[1].ID, found.ID)
	}

	lead := domain.New(domain.Customer{}, "flooring")
	if _, err := store.FindByID(ctx, lead.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoundTrip_PreservesSummaryAndTimestamps(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	generatedAt := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	lead := domain.New(domain.Customer{Name: "M. Bakker"}, "bathroom")
	lead.Summary = &domain.Summary{
		Kind: domain.SummaryKindStructured,
		Structured: &domain.StructuredSummary{
			Category:     "bathroom",
			Requirements: []domain.RequirementItem{{Category: "Plumbing", Checked: true}},
			Narrative:    []string{"M. Bakker wants a bathroom carried out."},
			GeneratedAt:  generatedAt,
		},
	}

	if err := store.Upsert(ctx, lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := store.FindByID(ctx, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Summary == nil || stored.Summary.Kind != domain.SummaryKindStructured {
		t.Fatal("expected structured summary to survive the round trip")
	}
	if !stored.Summary.Structured.GeneratedAt.Equal(generatedAt) {
		t.Fatalf("expected generation timestamp %v, got %v", generatedAt, stored.Summary.Structured.GeneratedAt)
	}
	if !stored.CreatedAt.Equal(lead.CreatedAt) {
		t.Fatalf("expected creation timestamp %v, got %v", lead.CreatedAt, stored.CreatedAt)
	}
	if len(stored.Summary.Structured.Requirements) != 1 || !stored.Summary.Structured.Requirements[0].Checked {
		t.Fatal("expected checklist state to survive the round trip")
	}
}

func TestSaveAll_WritesBothKeysIdentically(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveAll(ctx, SeedLeads()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	primary, err := mr.Get("quotedesk:leads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	legacy, err := mr.Get("leads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary != legacy {
		t.Fatal("expected primary and legacy payloads to be identical")
	}
}
