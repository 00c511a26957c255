package summary

import (
	"strings"
	"testing"
)

func TestGenerate_EmptyInputStillYieldsThreeBullets(t *testing.T) {
	result := Generate(Input{})

	if len(result.Narrative) < minNarrativeBullets {
		t.Fatalf("expected at least %d bullets, got %d", minNarrativeBullets, len(result.Narrative))
	}
	for i, bullet := range result.Narrative {
		if bullet != fillerSentences[i] {
			t.Fatalf("expected filler sentence at position %d, got %q", i, bullet)
		}
	}
}

func TestGenerate_ChecklistAlwaysHasSevenCategoriesInOrder(t *testing.T) {
	for _, in := range []Input{{}, {ProjectType: "bathroom", Description: "asbestos in the ceiling"}} {
		result := Generate(in)
		if len(result.Checklist) != len(Categories) {
			t.Fatalf("expected %d checklist items, got %d", len(Categories), len(result.Checklist))
		}
		for i, item := range result.Checklist {
			if item.Category != Categories[i] {
				t.Fatalf("expected category %q at position %d, got %q", Categories[i], i, item.Category)
			}
		}
	}
}

func TestGenerate_FlagChecksCategory(t *testing.T) {
	result := Generate(Input{Electrical: "Ja, graag"})

	if !checked(t, result, CategoryElectrical) {
		t.Fatal("expected electrical category checked for affirmative flag")
	}
	if checked(t, result, CategoryPlumbing) {
		t.Fatal("expected plumbing category unchecked")
	}
}

func TestGenerate_ProjectTypeImpliesCategories(t *testing.T) {
	result := Generate(Input{ProjectType: "bathroom"})

	if !checked(t, result, CategoryPlumbing) {
		t.Fatal("expected plumbing checked for bathroom project")
	}
	if !checked(t, result, CategoryVentilation) {
		t.Fatal("expected ventilation checked for bathroom project")
	}
	if checked(t, result, CategoryGroundwork) {
		t.Fatal("expected groundwork unchecked for bathroom project")
	}
}

func TestGenerate_DescriptionKeywordChecksCategory(t *testing.T) {
	result := Generate(Input{Description: "Remove the old drainage and fix a leak near the foundation"})

	if !checked(t, result, CategoryGroundwork) {
		t.Fatal("expected groundwork checked for drainage keyword")
	}
	if !checked(t, result, CategoryRisk) {
		t.Fatal("expected risk checked for leak keyword")
	}
}

func TestGenerate_NegativeAnswerDoesNotCheck(t *testing.T) {
	result := Generate(Input{Plumbing: "nee"})

	if checked(t, result, CategoryPlumbing) {
		t.Fatal("expected plumbing unchecked for negative answer")
	}
}

func TestIsAffirmative(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"ja", true},
		{"Ja, graag", true},
		{"YES please", true},
		{"Jazeker", true},
		{"nee", false},
		{"no", false},
		{"", false},
		{"maybe", false},
	}

	for _, tc := range cases {
		if got := IsAffirmative(tc.answer); got != tc.want {
			t.Fatalf("IsAffirmative(%q): expected %v, got %v", tc.answer, tc.want, got)
		}
	}
}

func TestNarrative_FullInputReadsTopDown(t *testing.T) {
	result := Generate(Input{
		CustomerName: "J. Smit",
		ProjectType:  "Bathroom",
		Location:     "Utrecht",
		Description:  "Full bathroom renovation with walk-in shower",
		Electrical:   "ja",
		Plumbing:     "yes",
		StartDate:    "March 2027",
		Deadline:     "June 2027",
	})

	if len(result.Narrative) != 4 {
		t.Fatalf("expected 4 bullets, got %d: %v", len(result.Narrative), result.Narrative)
	}
	if want := "J. Smit wants a bathroom carried out in Utrecht."; result.Narrative[0] != want {
		t.Fatalf("expected opener %q, got %q", want, result.Narrative[0])
	}
	if !strings.HasPrefix(result.Narrative[1], "Described scope: ") {
		t.Fatalf("expected scope bullet second, got %q", result.Narrative[1])
	}
	if want := "The project involves electrical work and plumbing."; result.Narrative[2] != want {
		t.Fatalf("expected disciplines bullet %q, got %q", want, result.Narrative[2])
	}
	if want := "Preferred start is March 2027, with completion targeted by June 2027."; result.Narrative[3] != want {
		t.Fatalf("expected timeline bullet %q, got %q", want, result.Narrative[3])
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	in := Input{ProjectType: "kitchen", Description: "new wiring and a kraan", Plumbing: "ja"}

	first := Generate(in)
	second := Generate(in)

	if strings.Join(first.Narrative, "|") != strings.Join(second.Narrative, "|") {
		t.Fatal("expected identical narratives for identical input")
	}
	for i := range first.Checklist {
		if first.Checklist[i] != second.Checklist[i] {
			t.Fatalf("expected identical checklist at position %d", i)
		}
	}
}

func TestStructured_CollectsScopeTimelineAndRisks(t *testing.T) {
	structured := Structured(Input{
		CustomerName: "P. de Boer",
		ProjectType:  "full renovation",
		Description:  "Strip the ground floor. Remove a draagmuur; asbestos suspected in old flooring.",
		Structural:   "ja",
		StartDate:    "September 2026",
	})

	if structured.Category != "full renovation" {
		t.Fatalf("expected category carried over, got %q", structured.Category)
	}
	if len(structured.ScopeBreakdown) != 3 {
		t.Fatalf("expected 3 scope parts, got %d: %v", len(structured.ScopeBreakdown), structured.ScopeBreakdown)
	}
	if structured.Timeline != "Preferred start is September 2026." {
		t.Fatalf("unexpected timeline %q", structured.Timeline)
	}
	if len(structured.RiskFlags) != 2 {
		t.Fatalf("expected 2 risk flags, got %d: %v", len(structured.RiskFlags), structured.RiskFlags)
	}
	if structured.Executive == "" {
		t.Fatal("expected a non-empty executive summary")
	}
	if structured.GeneratedAt.IsZero() {
		t.Fatal("expected a generation timestamp")
	}
}

func checked(t *testing.T, result Result, category string) bool {
	t.Helper()
	for _, item := range result.Checklist {
		if item.Category == category {
			return item.Checked
		}
	}
	t.Fatalf("category %q missing from checklist", category)
	return false
}
