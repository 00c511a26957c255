// Package pricing derives the staff-facing invoice price from an estimated
// cost and a markup margin. Like scoring, it is a pure leaf: no I/O, no
// state, always the same output for the same inputs.
package pricing

import "math"

// DefaultMarginPercent is applied to newly created leads until staff adjust it.
const DefaultMarginPercent = 20.0

// FinalPrice computes the recommended invoice price as
// round(estimatedCost * (1 + marginPercent/100)).
//
// marginPercent is expected in [0,100] but is not rejected outside that
// range: UI constraints clamp it, and the arithmetic stays well defined.
func FinalPrice(estimatedCost, marginPercent float64) float64 {
	return math.Round(estimatedCost * (1 + marginPercent/100))
}

// Profit is the delta staff see between the invoice price and the estimate.
func Profit(estimatedCost, marginPercent float64) float64 {
	return FinalPrice(estimatedCost, marginPercent) - estimatedCost
}

// ClampMargin restricts a margin edit to the documented [0,100] range.
func ClampMargin(marginPercent float64) float64 {
	if marginPercent < 0 {
		return 0
	}
	if marginPercent > 100 {
		return 100
	}
	return marginPercent
}
