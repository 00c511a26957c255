package repository

import (
	"time"

	"quotedesk_backend/internal/leads/domain"
	"quotedesk_backend/internal/leads/pricing"

	"github.com/google/uuid"
)

// Seed lead ids are fixed so resets are idempotent and example data is
// addressable in demos and tests.
var (
	seedLeadBathroomID  = uuid.MustParse("6f1d2c44-9b1e-4a34-8a5e-0c9f3a6d1101")
	seedLeadPaintingID  = uuid.MustParse("6f1d2c44-9b1e-4a34-8a5e-0c9f3a6d1102")
	seedLeadExtensionID = uuid.MustParse("6f1d2c44-9b1e-4a34-8a5e-0c9f3a6d1103")
)

// SeedLeads builds the example dataset used for first-run initialization and
// operator resets. Derived fields are computed, not hardcoded, so the seed
// can never violate the scoring and pricing invariants.
func SeedLeads() []domain.Lead {
	created := time.Date(2026, time.August, 3, 9, 30, 0, 0, time.UTC)

	leads := []domain.Lead{
		{
			ID:          seedLeadBathroomID,
			CreatedAt:   created,
			Customer:    domain.Customer{Name: "Familie Jansen", Phone: "+31612345678", Email: "jansen@example.com"},
			ServiceType: "bathroom",
			Scope:       "Complete renewal of a 6 m2 bathroom including tiling",
			Location:    "Utrecht",
			Timeframe:   "1-3 months",
			Notes:       "Current bathroom is from 1998, leaking shower corner, customer already picked tiles.",
			Attachments: []domain.Attachment{{Name: "bathroom-current.jpg"}},
			Answers: map[string]string{
				"plumbing":      "ja",
				"floor_heating": "ja, in de badkamer",
				"description":   "Complete renewal of a 6 m2 bathroom including tiling. Shower corner has a leak.",
			},
			EstimatedCost: 18500,
			Margin:        pricing.DefaultMarginPercent,
			Status:        domain.StatusContacted,
		},
		{
			ID:            seedLeadPaintingID,
			CreatedAt:     created.Add(26 * time.Hour),
			Customer:      domain.Customer{Name: "B. de Vries", Phone: "+31687654321"},
			ServiceType:   "painting",
			Scope:         "Exterior painting, window frames and fascia boards",
			Location:      "Amersfoort",
			Timeframe:     "within 1 month",
			Notes:         "Two-storey corner house.",
			EstimatedCost: 6400,
			Margin:        pricing.DefaultMarginPercent,
			Status:        domain.StatusNew,
		},
		{
			ID:          seedLeadExtensionID,
			CreatedAt:   created.Add(49 * time.Hour),
			Customer:    domain.Customer{Name: "M. Bakker", Email: "m.bakker@example.com"},
			ServiceType: "extension",
			Scope:       "Rear extension of 4x3 meters with flat roof",
			Location:    "Zeist",
			Timeframe:   "3-6 months",
			Notes:       "Looking for a rear extension with large glass sliding doors, foundation work expected, wants one contact for the whole project.",
			Attachments: []domain.Attachment{{Name: "garden-sketch.pdf"}, {Name: "rear-facade.jpg"}},
			Answers: map[string]string{
				"structural":  "yes",
				"electrical":  "yes, new group in the fuse box",
				"description": "Rear extension of 4x3 meters with flat roof. Foundation work expected.",
			},
			EstimatedCost: 82000,
			Margin:        25,
			Status:        domain.StatusQuoted,
		},
	}

	for i := range leads {
		leads[i].Recalculate()
	}
	return leads
}
