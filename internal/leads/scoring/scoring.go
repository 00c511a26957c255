// Package scoring computes the 0-100 priority score for a lead.
//
// The model is a pure function over the lead's current attributes: no I/O,
// no randomness, no failure modes. Unknown categorical inputs degrade to a
// documented default instead of erroring, so every lead is always scorable
// and scores are comparable across the whole collection.
package scoring

import (
	"math"
	"strings"
	"time"
)

const (
	// scoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing scoring logic significantly.
	scoreVersion = "2026-v1"

	// Factor weights. These must sum to 1.0.
	weightEconomic    = 0.40
	weightComplexity  = 0.25
	weightTimeframe   = 0.20
	weightSeriousness = 0.15

	// economicCeiling is the estimated cost at which the economic factor
	// saturates at 100.
	economicCeiling = 500000.0

	// defaultCategoryScore is used for service types and timeframes outside
	// the known vocabularies.
	defaultCategoryScore = 50.0
)

// complexityByService maps a service type to its complexity factor.
// Higher means simpler, lower-risk work: the table rewards execution
// certainty, not project size. Painting scores 90 while a full renovation
// scores 20 even though the renovation is the bigger job.
var complexityByService = map[string]float64{
	"painting":         90,
	"flooring":         80,
	"carpentry":        75,
	"roofing":          60,
	"bathroom":         50,
	"kitchen":          45,
	"extension":        30,
	"new construction": 25,
	"full renovation":  20,
}

// urgencyByTimeframe maps a timeframe label to its urgency factor.
// A sooner requested start scores higher.
var urgencyByTimeframe = map[string]float64{
	"within 1 week":      100,
	"within 1 month":     80,
	"1-3 months":         60,
	"3-6 months":         40,
	"later than 6 months": 20,
	"flexible":           30,
}

// Input carries the lead attributes the model reads. Callers build it from
// the lead record; the model itself never touches storage.
type Input struct {
	EstimatedCost   float64
	ServiceType     string
	Timeframe       string
	AttachmentCount int
	NotesLength     int
}

// Factors is the per-factor breakdown behind a score. Values are the raw
// 0-100 factor scores before weighting.
type Factors struct {
	Economic    float64 `json:"economic"`
	Complexity  float64 `json:"complexity"`
	Timeframe   float64 `json:"timeframe"`
	Seriousness float64 `json:"seriousness"`
}

// Result holds scoring output and factor details.
type Result struct {
	Score     int       `json:"score"`
	Factors   Factors   `json:"factors"`
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Compute scores a lead from its current attributes. It is deterministic and
// total: any input yields a score in [0,100].
func Compute(in Input) Result {
	factors := Factors{
		Economic:    scoreEconomic(in.EstimatedCost),
		Complexity:  scoreComplexity(in.ServiceType),
		Timeframe:   scoreTimeframe(in.Timeframe),
		Seriousness: scoreSeriousness(in.AttachmentCount, in.NotesLength),
	}

	weighted := factors.Economic*weightEconomic +
		factors.Complexity*weightComplexity +
		factors.Timeframe*weightTimeframe +
		factors.Seriousness*weightSeriousness

	return Result{
		Score:     clampScore(weighted),
		Factors:   factors,
		Version:   scoreVersion,
		UpdatedAt: time.Now().UTC(),
	}
}

// scoreEconomic evaluates revenue potential. Linear in estimated cost up to
// the ceiling, then clamped.
func scoreEconomic(estimatedCost float64) float64 {
	if estimatedCost <= 0 {
		return 0
	}
	return math.Min(100, estimatedCost/economicCeiling*100)
}

// scoreComplexity looks up the service type in the fixed table.
func scoreComplexity(serviceType string) float64 {
	if score, ok := complexityByService[normalizeLabel(serviceType)]; ok {
		return score
	}
	return defaultCategoryScore
}

// scoreTimeframe looks up the timeframe label in the fixed table.
func scoreTimeframe(timeframe string) float64 {
	if score, ok := urgencyByTimeframe[normalizeLabel(timeframe)]; ok {
		return score
	}
	return defaultCategoryScore
}

// scoreSeriousness evaluates how much effort the customer put into the
// request. Attachments are the strongest signal, a substantial notes text the
// second.
func scoreSeriousness(attachmentCount, notesLength int) float64 {
	score := 20.0
	if attachmentCount > 0 {
		score += 60
	}
	if notesLength > 50 {
		score += 20
	}
	return math.Min(100, score)
}

func normalizeLabel(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
