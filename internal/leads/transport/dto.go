package transport

import (
	"time"

	"quotedesk_backend/internal/leads/domain"
	"quotedesk_backend/internal/leads/service"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateMarginRequest struct {
	Margin float64 `json:"margin" validate:"min=0,max=100"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted quoted closed"`
}

type AttachSummaryRequest struct {
	Kind       string                    `json:"kind" validate:"required,oneof=structured legacy"`
	Structured *domain.StructuredSummary `json:"structured,omitempty"`
	Legacy     *domain.LegacySummary     `json:"legacy,omitempty"`
}

type QuotePreviewRequest struct {
	Margin *float64 `form:"margin" validate:"omitempty,min=0,max=100"`
}

type ListLeadsRequest struct {
	Sort string `form:"sort" validate:"omitempty,oneof=score created"`
}

// Response DTOs

type CustomerResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type ScoreFactorsResponse struct {
	Economic    float64 `json:"economic"`
	Complexity  float64 `json:"complexity"`
	Timeframe   float64 `json:"timeframe"`
	Seriousness float64 `json:"seriousness"`
}

type LeadResponse struct {
	ID            uuid.UUID            `json:"id"`
	CreatedAt     time.Time            `json:"createdAt"`
	Customer      CustomerResponse     `json:"customer"`
	ServiceType   string               `json:"serviceType"`
	Scope         string               `json:"scope,omitempty"`
	Location      string               `json:"location,omitempty"`
	Timeframe     string               `json:"timeframe,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Attachments   []domain.Attachment  `json:"attachments,omitempty"`
	EstimatedCost float64              `json:"estimatedCost"`
	Margin        float64              `json:"margin"`
	FinalPrice    float64              `json:"finalPrice"`
	Profit        float64              `json:"profit"`
	Score         int                  `json:"score"`
	ScoreFactors  ScoreFactorsResponse `json:"scoreFactors"`
	Status        string               `json:"status"`
	Summary       *domain.Summary      `json:"summary,omitempty"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

type QuotePreviewResponse struct {
	LeadID        uuid.UUID                `json:"leadId"`
	EstimatedCost float64                  `json:"estimatedCost"`
	Margin        float64                  `json:"margin"`
	FinalPrice    float64                  `json:"finalPrice"`
	Profit        float64                  `json:"profit"`
	Narrative     []string                 `json:"narrative"`
	Checklist     []domain.RequirementItem `json:"checklist"`
}

// ToLeadResponse maps a domain lead onto the wire shape.
func ToLeadResponse(lead domain.Lead) LeadResponse {
	return LeadResponse{
		ID:        lead.ID,
		CreatedAt: lead.CreatedAt,
		Customer: CustomerResponse{
			Name:  lead.Customer.Name,
			Phone: lead.Customer.Phone,
			Email: lead.Customer.Email,
		},
		ServiceType:   lead.ServiceType,
		Scope:         lead.Scope,
		Location:      lead.Location,
		Timeframe:     lead.Timeframe,
		Notes:         lead.Notes,
		Attachments:   lead.Attachments,
		EstimatedCost: lead.EstimatedCost,
		Margin:        lead.Margin,
		FinalPrice:    lead.FinalPrice,
		Profit:        lead.Profit(),
		Score:         lead.Score,
		ScoreFactors: ScoreFactorsResponse{
			Economic:    lead.ScoreFactors.Economic,
			Complexity:  lead.ScoreFactors.Complexity,
			Timeframe:   lead.ScoreFactors.Timeframe,
			Seriousness: lead.ScoreFactors.Seriousness,
		},
		Status:  string(lead.Status),
		Summary: lead.Summary,
	}
}

// ToLeadListResponse maps a collection onto the wire shape.
func ToLeadListResponse(leads []domain.Lead) LeadListResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, ToLeadResponse(lead))
	}
	return LeadListResponse{Items: items, Total: len(items)}
}

// ToQuotePreviewResponse maps a quote preview onto the wire shape.
func ToQuotePreviewResponse(preview service.QuotePreview) QuotePreviewResponse {
	return QuotePreviewResponse{
		LeadID:        preview.Lead.ID,
		EstimatedCost: preview.Lead.EstimatedCost,
		Margin:        preview.Margin,
		FinalPrice:    preview.FinalPrice,
		Profit:        preview.Profit,
		Narrative:     preview.Narrative,
		Checklist:     preview.Checklist,
	}
}
