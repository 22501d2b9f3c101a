package valuation

import (
	"math"

	"comp-valuation/models"
)

// MarketPSF derives the market $/sf basis for the GLA rule: the median of
// salePrice/GLA over comps carrying both, 0 when none do.
func MarketPSF(comps []*models.PropertyRecord) float64 {
	var psf []float64
	for _, c := range comps {
		if !math.IsNaN(c.SalePrice) && !math.IsNaN(c.GLA) && c.GLA != 0 {
			psf = append(psf, c.SalePrice/c.GLA)
		}
	}
	m := Median(psf)
	if math.IsNaN(m) {
		return 0
	}
	return m
}

// GLA values the living-area delta at the market $/sf scaled by the policy
// multiplier. Missing areas are zero-filled into the delta.
func GLA(subject, comp *models.PropertyRecord, marketPSF float64, costs *CostAssumptions) (float64, models.Detail) {
	rate := marketPSF * costs.GLAFactorPSF
	d := 0.0
	if !math.IsNaN(subject.GLA) && !math.IsNaN(comp.GLA) {
		d = subject.GLA - comp.GLA
	}
	return d * rate, models.Detail{"delta_sqft": d, "rate_psf": rate, "market_psf": marketPSF}
}

// AboveGrade values the above-grade size delta at a flat $/sf rate.
func AboveGrade(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s, c := subject.AboveGradeSize, comp.AboveGradeSize
	if math.IsNaN(s) || math.IsNaN(c) {
		return 0, models.Detail{"note": "missing above_grade_size"}
	}
	d := s - c
	return d * costs.AboveGradePSF, models.Detail{"delta_sqft": d, "rate_psf": costs.AboveGradePSF}
}

// BelowGrade values the below-grade size delta. The canonical record does
// not track the finished/unfinished split, so a blended rate is used.
func BelowGrade(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s, c := subject.BelowGradeSize, comp.BelowGradeSize
	if math.IsNaN(s) || math.IsNaN(c) {
		return 0, models.Detail{"note": "missing below_grade_size"}
	}
	d := s - c
	blended := 0.5*costs.BelowGradeFinishedPSF + 0.5*costs.BelowGradeUnfinishedPSF
	return d * blended, models.Detail{"delta_sqft": d, "rate_psf": blended}
}

// Bedrooms values the bed-count delta at a flat per-bedroom rate.
func Bedrooms(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s, c := subject.Beds, comp.Beds
	if math.IsNaN(s) || math.IsNaN(c) {
		return 0, models.Detail{"note": "missing beds"}
	}
	d := s - c
	return d * costs.VBed, models.Detail{"delta_beds": d, "per_bed": costs.VBed}
}

// Bathrooms values the combined bath-count delta at the full-bath rate.
// There is no full/half accounting at this layer; missing counts are
// treated as zero.
func Bathrooms(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	d := SafeDelta(subject.Baths, comp.Baths)
	return d * costs.VBathFull, models.Detail{"delta_baths": d, "per_bath": costs.VBathFull}
}

// Stories values the story-count delta at a flat per-story rate.
func Stories(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s, c := subject.Stories, comp.Stories
	if math.IsNaN(s) || math.IsNaN(c) {
		return 0, models.Detail{"note": "missing stories"}
	}
	d := s - c
	return d * costs.VStory, models.Detail{"delta_stories": d, "per_story": costs.VStory}
}
