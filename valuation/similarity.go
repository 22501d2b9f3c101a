package valuation

import (
	"math"

	"comp-valuation/models"
)

// SimilarityWeight scores how suitable a comp is for the subject on a
// 20–100 scale from geographic distance, size proximity, and age proximity.
// It feeds downstream comp ranking only; the adjustment math never reads it.
func SimilarityWeight(subject, comp *models.PropertyRecord, policy *AdjustmentPolicy) float64 {
	dist := 0.0
	if !math.IsNaN(subject.Latitude) && !math.IsNaN(subject.Longitude) &&
		!math.IsNaN(comp.Latitude) && !math.IsNaN(comp.Longitude) {
		// Flat-earth miles: ~69 mi per degree latitude, ~54.6 per degree
		// longitude at mid latitudes.
		dy := (subject.Latitude - comp.Latitude) * 69.0
		dx := (subject.Longitude - comp.Longitude) * 54.6
		dist = math.Sqrt(dx*dx + dy*dy)
	}
	distPen := 1.0 / (1.0 + policy.DistanceDecay*dist)

	sizePen := 1.0 / (1.0 + 0.001*math.Abs(SafeDelta(subject.GLA, comp.GLA)))
	agePen := 1.0 / (1.0 + 0.02*math.Abs(SafeDelta(subject.YearBuilt, comp.YearBuilt)))

	raw := distPen * sizePen * agePen
	return math.Max(0.2, math.Min(1.0, raw)) * 100.0
}
