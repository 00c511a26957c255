package domain

import (
	"testing"

	"quotedesk_backend/internal/leads/pricing"
)

func TestNew_AppliesDefaultsAndDerivedFields(t *testing.T) {
	lead := New(Customer{Name: "A. Jansen", Phone: "+31612345678"}, "bathroom")

	if lead.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected a generated id")
	}
	if lead.Status != StatusNew {
		t.Fatalf("expected status %q, got %q", StatusNew, lead.Status)
	}
	if lead.Margin != pricing.DefaultMarginPercent {
		t.Fatalf("expected default margin %v, got %v", pricing.DefaultMarginPercent, lead.Margin)
	}
	if lead.ScoreVersion == "" {
		t.Fatal("expected a score version after creation")
	}
	if lead.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
}

func TestRecalculate_KeepsScoreAndPriceConsistent(t *testing.T) {
	lead := New(Customer{Name: "A. Jansen"}, "painting")
	lead.EstimatedCost = 50000
	lead.Timeframe = "within 1 week"
	lead.Recalculate()

	if lead.FinalPrice != pricing.FinalPrice(50000, lead.Margin) {
		t.Fatalf("expected final price %v, got %v", pricing.FinalPrice(50000, lead.Margin), lead.FinalPrice)
	}
	if lead.Score <= 0 {
		t.Fatalf("expected a positive score, got %d", lead.Score)
	}
	if lead.ScoreFactors.Timeframe != 100 {
		t.Fatalf("expected timeframe factor 100, got %v", lead.ScoreFactors.Timeframe)
	}
}

func TestApplyMargin_UpdatesMarginAndPriceTogether(t *testing.T) {
	lead := New(Customer{}, "kitchen")
	lead.EstimatedCost = 180000
	lead.Recalculate()

	lead.ApplyMargin(25)

	if lead.Margin != 25 {
		t.Fatalf("expected margin 25, got %v", lead.Margin)
	}
	if lead.FinalPrice != 225000 {
		t.Fatalf("expected final price 225000, got %v", lead.FinalPrice)
	}
	if lead.Profit() != 45000 {
		t.Fatalf("expected profit 45000, got %v", lead.Profit())
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, status := range AllStatuses {
		if !status.IsValid() {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if Status("archived").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestScoringInput_CountsAttachmentsAndNotes(t *testing.T) {
	lead := New(Customer{}, "roofing")
	lead.EstimatedCost = 80000
	lead.Timeframe = "1-3 months"
	lead.Notes = "The roof leaks near the chimney and several tiles are missing after the storm."
	lead.Attachments = []Attachment{{Name: "roof.jpg", URL: "https://files.example/roof.jpg"}}

	in := lead.ScoringInput()

	if in.EstimatedCost != 80000 {
		t.Fatalf("expected estimated cost 80000, got %v", in.EstimatedCost)
	}
	if in.ServiceType != "roofing" {
		t.Fatalf("expected service type roofing, got %q", in.ServiceType)
	}
	if in.AttachmentCount != 1 {
		t.Fatalf("expected 1 attachment, got %d", in.AttachmentCount)
	}
	if in.NotesLength != len(lead.Notes) {
		t.Fatalf("expected notes length %d, got %d", len(lead.Notes), in.NotesLength)
	}
}
