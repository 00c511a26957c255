// Package summary turns raw intake answers into a narrative project summary
// and a structured technical-requirements checklist for quoting.
//
// Both outputs are deterministic: the narrative is a fixed-order sequence of
// conditionally included sentences, and the checklist mirrors a fixed
// decision table. The same answers always produce the same summary,
// independent of any external text service.
package summary

import (
	"strings"
	"time"

	"quotedesk_backend/internal/leads/domain"
)

// The seven fixed technical-requirement categories, in checklist order.
const (
	CategoryConstruction = "Construction/frame"
	CategoryPlumbing     = "Plumbing"
	CategoryElectrical   = "Electrical/controls"
	CategoryVentilation  = "Ventilation/climate"
	CategoryEnvelope     = "Building envelope"
	CategoryGroundwork   = "Groundwork"
	CategoryRisk         = "Status/risk"
)

// Categories lists every checklist category in output order.
var Categories = []string{
	CategoryConstruction,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryVentilation,
	CategoryEnvelope,
	CategoryGroundwork,
	CategoryRisk,
}

// minNarrativeBullets is the guaranteed lower bound on narrative length.
// When field-driven content yields fewer sentences, fixed filler sentences
// pad the list. This is deliberate: quote documents always show at least
// three bullet points.
const minNarrativeBullets = 3

// fillerSentences are appended, in order, until the narrative reaches the
// minimum length.
var fillerSentences = []string{
	"All work is carried out in accordance with current building regulations and manufacturer specifications.",
	"Materials and finish level are agreed with the customer before work starts.",
	"The site is delivered broom-clean and construction waste is disposed of responsibly.",
}

// yesMarkers are matched as case-insensitive substrings to decide whether a
// free-text answer is affirmative. A substring check, not an exact boolean:
// "Ja, graag" and "yes please" both count.
var yesMarkers = []string{"ja", "yes"}

// Input carries the raw intake answers the generator reads. Discipline
// fields hold the customer's literal answers and are tested with
// IsAffirmative rather than parsed as booleans.
type Input struct {
	CustomerName string
	ProjectType  string
	Location     string
	Description  string
	Electrical   string
	Plumbing     string
	FloorHeating string
	Structural   string
	StartDate    string
	Deadline     string
}

// Result bundles both generator outputs.
type Result struct {
	Narrative []string
	Checklist []domain.RequirementItem
}

// checklistRule is one row of the decision table: a category is checked when
// its explicit flag is affirmative, OR the project type implies it, OR a
// keyword appears in the description.
type checklistRule struct {
	category     string
	flag         func(Input) string
	projectTypes []string
	keywords     []string
}

var checklistRules = []checklistRule{
	{
		category:     CategoryConstruction,
		flag:         func(in Input) string { return in.Structural },
		projectTypes: []string{"extension", "new construction", "full renovation"},
		keywords:     []string{"wall", "muur", "draagmuur", "constructie", "uitbouw", "frame", "beam", "balk"},
	},
	{
		category:     CategoryPlumbing,
		flag:         func(in Input) string { return in.Plumbing },
		projectTypes: []string{"bathroom", "kitchen"},
		keywords:     []string{"water", "leiding", "sanitair", "plumbing", "toilet", "shower", "douche", "kraan"},
	},
	{
		category:     CategoryElectrical,
		flag:         func(in Input) string { return in.Electrical },
		projectTypes: []string{"kitchen"},
		keywords:     []string{"elektra", "electra", "wiring", "groepenkast", "stopcontact", "lighting", "verlichting"},
	},
	{
		category:     CategoryVentilation,
		flag:         func(in Input) string { return in.FloorHeating },
		projectTypes: []string{"bathroom"},
		keywords:     []string{"ventilat", "airco", "climate", "verwarming", "heating", "warmtepomp", "radiator"},
	},
	{
		category:     CategoryEnvelope,
		projectTypes: []string{"roofing", "extension", "full renovation"},
		keywords:     []string{"roof", "dak", "gevel", "facade", "isolatie", "insulation", "window", "kozijn", "raam"},
	},
	{
		category:     CategoryGroundwork,
		projectTypes: []string{"extension", "new construction"},
		keywords:     []string{"fundering", "foundation", "grond", "excavat", "riool", "septic", "drainage"},
	},
	{
		category:     CategoryRisk,
		flag:         func(in Input) string { return in.Structural },
		keywords:     []string{"asbest", "asbestos", "lekkage", "leak", "schimmel", "mold", "vocht", "moisture", "schade", "damage"},
	},
}

// IsAffirmative reports whether the answer contains a yes-marker,
// case-insensitively.
func IsAffirmative(answer string) bool {
	lowered := strings.ToLower(answer)
	for _, marker := range yesMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Generate produces the narrative bullet list and the seven-category
// checklist for the given answers.
func Generate(in Input) Result {
	return Result{
		Narrative: narrative(in),
		Checklist: checklist(in),
	}
}

// Structured assembles the full structured project summary used for lead
// enrichment.
func Structured(in Input) domain.StructuredSummary {
	result := Generate(in)

	structured := domain.StructuredSummary{
		Category:     in.ProjectType,
		Requirements: result.Checklist,
		Narrative:    result.Narrative,
		Executive:    strings.Join(result.Narrative, " "),
		GeneratedAt:  time.Now().UTC(),
	}

	if in.Description != "" {
		structured.ScopeBreakdown = splitScope(in.Description)
	}
	structured.Timeline = timelineClause(in)
	structured.RiskFlags = riskFlags(in)

	return structured
}

func narrative(in Input) []string {
	var bullets []string

	if clause := subjectClause(in); clause != "" {
		bullets = append(bullets, clause)
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		bullets = append(bullets, "Described scope: "+desc+".")
	}
	if clause := disciplinesClause(in); clause != "" {
		bullets = append(bullets, clause)
	}
	if clause := timelineClause(in); clause != "" {
		bullets = append(bullets, clause)
	}

	for i := 0; len(bullets) < minNarrativeBullets && i < len(fillerSentences); i++ {
		bullets = append(bullets, fillerSentences[i])
	}

	return bullets
}

// subjectClause builds the who-wants-what-where opener.
func subjectClause(in Input) string {
	project := strings.TrimSpace(in.ProjectType)
	if project == "" {
		return ""
	}

	subject := strings.TrimSpace(in.CustomerName)
	if subject == "" {
		subject = "The customer"
	}

	clause := subject + " wants a " + strings.ToLower(project) + " carried out"
	if location := strings.TrimSpace(in.Location); location != "" {
		clause += " in " + location
	}
	return clause + "."
}

func disciplinesClause(in Input) string {
	var flagged []string
	if IsAffirmative(in.Electrical) {
		flagged = append(flagged, "electrical work")
	}
	if IsAffirmative(in.Plumbing) {
		flagged = append(flagged, "plumbing")
	}
	if IsAffirmative(in.FloorHeating) {
		flagged = append(flagged, "floor heating")
	}
	if IsAffirmative(in.Structural) {
		flagged = append(flagged, "structural work")
	}
	if len(flagged) == 0 {
		return ""
	}
	return "The project involves " + joinList(flagged) + "."
}

func timelineClause(in Input) string {
	start := strings.TrimSpace(in.StartDate)
	deadline := strings.TrimSpace(in.Deadline)
	switch {
	case start != "" && deadline != "":
		return "Preferred start is " + start + ", with completion targeted by " + deadline + "."
	case start != "":
		return "Preferred start is " + start + "."
	case deadline != "":
		return "Completion is targeted by " + deadline + "."
	}
	return ""
}

func checklist(in Input) []domain.RequirementItem {
	items := make([]domain.RequirementItem, 0, len(checklistRules))
	project := strings.ToLower(strings.TrimSpace(in.ProjectType))
	description := strings.ToLower(in.Description)

	for _, rule := range checklistRules {
		checked := false
		if rule.flag != nil && IsAffirmative(rule.flag(in)) {
			checked = true
		}
		if !checked {
			for _, pt := range rule.projectTypes {
				if project == pt {
					checked = true
					break
				}
			}
		}
		if !checked {
			for _, kw := range rule.keywords {
				if strings.Contains(description, kw) {
					checked = true
					break
				}
			}
		}
		items = append(items, domain.RequirementItem{Category: rule.category, Checked: checked})
	}

	return items
}

func riskFlags(in Input) []string {
	var flags []string
	if IsAffirmative(in.Structural) {
		flags = append(flags, "structural work declared by customer")
	}
	description := strings.ToLower(in.Description)
	if strings.Contains(description, "asbest") || strings.Contains(description, "asbestos") {
		flags = append(flags, "possible asbestos, survey required")
	}
	if strings.Contains(description, "lekkage") || strings.Contains(description, "leak") {
		flags = append(flags, "active leak reported")
	}
	return flags
}

func splitScope(description string) []string {
	raw := strings.FieldsFunc(description, func(r rune) bool {
		return r == '.' || r == ';' || r == '\n'
	})
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
