package domain

import (
	"time"

	"quotedesk_backend/platform/apperr"
)

// SummaryKind tags the enrichment variant attached to a lead.
type SummaryKind string

const (
	// SummaryKindStructured is the full structured project summary.
	SummaryKindStructured SummaryKind = "structured"
	// SummaryKindLegacy is the flat AI-summary fallback shape.
	SummaryKindLegacy SummaryKind = "legacy"
)

// Summary is a tagged variant: exactly one of Structured or Legacy is set,
// matching Kind. Render code switches on Kind instead of probing for
// optional fields.
type Summary struct {
	Kind       SummaryKind        `json:"kind"`
	Structured *StructuredSummary `json:"structured,omitempty"`
	Legacy     *LegacySummary     `json:"legacy,omitempty"`
}

// StructuredSummary is the categorized breakdown used for quoting.
type StructuredSummary struct {
	Category       string            `json:"category"`
	ScopeBreakdown []string          `json:"scopeBreakdown,omitempty"`
	Requirements   []RequirementItem `json:"requirements"`
	Narrative      []string          `json:"narrative"`
	Timeline       string            `json:"timeline,omitempty"`
	CostNotes      string            `json:"costNotes,omitempty"`
	RiskFlags      []string          `json:"riskFlags,omitempty"`
	Executive      string            `json:"executive,omitempty"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}

// RequirementItem is one technical-requirement category with its checked state.
type RequirementItem struct {
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
}

// LegacySummary is the flat shape produced by older enrichment runs.
type LegacySummary struct {
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Validate checks that the variant payload matches the tag.
func (s *Summary) Validate() error {
	switch s.Kind {
	case SummaryKindStructured:
		if s.Structured == nil || s.Legacy != nil {
			return apperr.Validation("structured summary payload does not match its kind")
		}
	case SummaryKindLegacy:
		if s.Legacy == nil || s.Structured != nil {
			return apperr.Validation("legacy summary payload does not match its kind")
		}
	default:
		return apperr.Validation("unknown summary kind")
	}
	return nil
}

// Text renders the variant for flat display contexts, handling both kinds
// exhaustively.
func (s *Summary) Text() string {
	switch s.Kind {
	case SummaryKindStructured:
		if s.Structured == nil {
			return ""
		}
		if s.Structured.Executive != "" {
			return s.Structured.Executive
		}
		if len(s.Structured.Narrative) > 0 {
			return s.Structured.Narrative[0]
		}
		return ""
	case SummaryKindLegacy:
		if s.Legacy == nil {
			return ""
		}
		return s.Legacy.Text
	}
	return ""
}
