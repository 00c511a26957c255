// Package domain holds the lead entity and the rules that keep its derived
// fields consistent. Views and handlers hold transient copies; every mutation
// goes through these methods and is written back via the repository.
package domain

import (
	"time"

	"quotedesk_backend/internal/leads/pricing"
	"quotedesk_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// Status is an unordered label set, not a state machine: staff may move a
// lead between any two labels.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQuoted    Status = "quoted"
	StatusClosed    Status = "closed"
)

// AllStatuses lists the valid status labels in display order.
var AllStatuses = []Status{StatusNew, StatusContacted, StatusQuoted, StatusClosed}

// IsValid reports whether the status is one of the known labels.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQuoted, StatusClosed:
		return true
	}
	return false
}

// Customer identifies the person behind the inquiry.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Attachment is a reference to an uploaded file. Only the reference is kept;
// scoring cares about the count, not the content.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Lead is a prospective customer's project inquiry record.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Customer Customer `json:"customer"`

	// Intake attributes
	ServiceType string            `json:"serviceType"`
	Scope       string            `json:"scope,omitempty"`
	Location    string            `json:"location,omitempty"`
	Timeframe   string            `json:"timeframe,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	Answers     map[string]string `json:"answers,omitempty"` // raw intake answers, keyed by step

	// Financial attributes
	EstimatedCost float64 `json:"estimatedCost"`
	Margin        float64 `json:"margin"`
	FinalPrice    float64 `json:"finalPrice"`

	// Computed attributes
	Score        int             `json:"score"`
	ScoreFactors scoring.Factors `json:"scoreFactors"`
	ScoreVersion string          `json:"scoreVersion,omitempty"`

	Status Status `json:"status"`

	// Enrichment, attached after intake by the worker or staff.
	Summary *Summary `json:"summary,omitempty"`
}

// New creates a lead with defaults applied and all derived fields computed.
func New(customer Customer, serviceType string) Lead {
	lead := Lead{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC(),
		Customer:    customer,
		ServiceType: serviceType,
		Margin:      pricing.DefaultMarginPercent,
		Status:      StatusNew,
	}
	lead.Recalculate()
	return lead
}

// ScoringInput assembles the scoring model's view of this lead.
func (l *Lead) ScoringInput() scoring.Input {
	return scoring.Input{
		EstimatedCost:   l.EstimatedCost,
		ServiceType:     l.ServiceType,
		Timeframe:       l.Timeframe,
		AttachmentCount: len(l.Attachments),
		NotesLength:     len(l.Notes),
	}
}

// Recalculate recomputes score and final price from the current attribute
// values. The score is never hand-edited; any change to intake or financial
// attributes must be followed by this call before the lead is persisted.
func (l *Lead) Recalculate() {
	result := scoring.Compute(l.ScoringInput())
	l.Score = result.Score
	l.ScoreFactors = result.Factors
	l.ScoreVersion = result.Version
	l.FinalPrice = pricing.FinalPrice(l.EstimatedCost, l.Margin)
}

// ApplyMargin updates margin and final price together so a persisted lead can
// never carry a stale derived price.
func (l *Lead) ApplyMargin(marginPercent float64) {
	l.Margin = marginPercent
	l.FinalPrice = pricing.FinalPrice(l.EstimatedCost, l.Margin)
}

// Profit is the staff-facing delta between invoice price and estimate.
func (l *Lead) Profit() float64 {
	return l.FinalPrice - l.EstimatedCost
}
