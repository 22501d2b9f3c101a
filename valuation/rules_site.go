package valuation

import (
	"math"

	"comp-valuation/models"
)

// LotSize applies a linear $/sf rate to the lot-size delta. Either side
// missing zeroes the whole delta, so one-sided data stays neutral.
func LotSize(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s, c := subject.LotSqft, comp.LotSqft
	if math.IsNaN(s) || math.IsNaN(c) {
		return 0, models.Detail{"note": "missing lot_sqft"}
	}
	d := s - c
	return d * costs.LotPSF, models.Detail{"delta_sqft": d, "lot_psf": costs.LotPSF}
}

// LotFeaturesFencing scores each side's concatenated fencing + lot-feature
// text against the positive/negative site token lists and values the score
// difference at a flat per-token dollar amount.
func LotFeaturesFencing(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	descS := subject.Fencing + " | " + subject.LotFeaturesText
	descC := comp.Fencing + " | " + comp.LotFeaturesText
	scoreS := SiteTokenScore(descS)
	scoreC := SiteTokenScore(descC)
	d := scoreS - scoreC
	return d * costs.FenceToken, models.Detail{
		"subject_score": scoreS,
		"comp_score":    scoreC,
		"delta_score":   d,
		"token_value":   costs.FenceToken,
	}
}
