package valuation

import (
	"math"
	"strings"

	"comp-valuation/models"
)

// ordinalStepAdjustment converts an ordinal step difference into a dollar
// adjustment against the building share of the market basis. The scales run
// lower = better, so a higher (worse) subject ordinal pushes the comp down;
// the leading negation encodes that. A NaN market basis degrades to zero
// rather than poisoning the row.
func ordinalStepAdjustment(subjectRating, compRating int, pctPerStep, marketBasis, buildingShare float64) (float64, float64) {
	if math.IsNaN(marketBasis) {
		return 0, 0
	}
	steps := float64(subjectRating - compRating)
	basis := marketBasis * buildingShare
	return -steps * pctPerStep * basis, basis
}

// Quality rates each side's style text on the Q scale (style is a weak
// proxy when no explicit rating is provided) and applies the step
// difference as a percentage of building value.
func Quality(subject, comp *models.PropertyRecord, costs *CostAssumptions, marketBasis float64) (float64, models.Detail) {
	qs := QualityRating(subject.Style)
	qc := QualityRating(comp.Style)
	adj, basis := ordinalStepAdjustment(qs, qc, costs.QualityPctPerStep, marketBasis, costs.BuildingShare)
	det := models.Detail{
		"q_subject":      qs,
		"q_comp":         qc,
		"steps":          qs - qc,
		"pct_per_step":   costs.QualityPctPerStep,
		"building_basis": basis,
	}
	if math.IsNaN(marketBasis) {
		det["note"] = "no market basis"
	}
	return adj, det
}

// Condition rates each side's condition label on the C scale and applies
// the step difference as a percentage of building value.
func Condition(subject, comp *models.PropertyRecord, costs *CostAssumptions, marketBasis float64) (float64, models.Detail) {
	cs := ConditionRating(subject.ConditionLabel)
	cc := ConditionRating(comp.ConditionLabel)
	adj, basis := ordinalStepAdjustment(cs, cc, costs.ConditionPctPerStep, marketBasis, costs.BuildingShare)
	det := models.Detail{
		"c_subject":      cs,
		"c_comp":         cc,
		"steps":          cs - cc,
		"pct_per_step":   costs.ConditionPctPerStep,
		"building_basis": basis,
	}
	if math.IsNaN(marketBasis) {
		det["note"] = "no market basis"
	}
	return adj, det
}

func flooringScore(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	score := 0
	if strings.Contains(s, "wood") { // catches hardwood too
		score += 2
	}
	if strings.Contains(s, "tile") {
		score++
	}
	if strings.Contains(s, "vinyl") {
		score--
	}
	if strings.Contains(s, "carpet") {
		score--
	}
	return score
}

// Flooring scores wood/tile as superior to vinyl/carpet and values the
// score difference at the interior token rate.
func Flooring(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	ss := flooringScore(subject.Flooring)
	cs := flooringScore(comp.Flooring)
	d := float64(ss - cs)
	return d * costs.InteriorToken, models.Detail{
		"subject_score": ss, "comp_score": cs, "delta": d, "token": costs.InteriorToken,
	}
}

func premiumFeatureCount(items []string) int {
	haystack := joinLower(items)
	count := 0
	for _, t := range premiumInteriorTokens {
		if strings.Contains(haystack, t) {
			count++
		}
	}
	return count
}

// InteriorFeatures counts premium feature keyword hits on each side and
// values the difference at the interior token rate.
func InteriorFeatures(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	ss := premiumFeatureCount(subject.InteriorFeatures)
	cs := premiumFeatureCount(comp.InteriorFeatures)
	d := float64(ss - cs)
	return d * costs.InteriorToken, models.Detail{
		"subject_score": ss, "comp_score": cs, "delta": d, "token": costs.InteriorToken,
	}
}

func hasFireplace(items []string, extraText string) bool {
	haystack := joinLower(items) + " | " + strings.ToLower(extraText)
	return HasToken(haystack, fireplaceTokens)
}

// Fireplace infers presence from the interior-feature list and the parking
// description text (fireplaces occasionally surface there) and values the
// presence difference at a flat per-fireplace rate.
func Fireplace(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	sFP := hasFireplace(subject.InteriorFeatures, subject.ParkingDesc)
	cFP := hasFireplace(comp.InteriorFeatures, comp.ParkingDesc)
	d := boolDelta(sFP, cFP)
	return d * costs.FireplaceEach, models.Detail{
		"subject_fireplace": sFP, "comp_fireplace": cFP, "delta": d, "each": costs.FireplaceEach,
	}
}

func boolDelta(a, b bool) float64 {
	d := 0.0
	if a {
		d++
	}
	if b {
		d--
	}
	return d
}
