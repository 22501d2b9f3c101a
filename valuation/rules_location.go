package valuation

import (
	"math"

	"comp-valuation/models"
)

// LocationSchoolWaterfront accumulates percentage-of-comp-price deltas for
// neighborhood, subdivision, and school-district mismatches (case-sensitive
// text compare, missing compared as ""), average school rating difference,
// and the waterfront toggle, then applies the summed percentage to the
// comp's sale price.
func LocationSchoolWaterfront(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	pct := 0.0
	det := models.Detail{}

	if subject.Neighborhood != comp.Neighborhood {
		pct += costs.DifferentNeighborhoodPct
		det["neighborhood_delta"] = costs.DifferentNeighborhoodPct
	}
	if subject.Subdivision != comp.Subdivision {
		pct += costs.DifferentSubdivisionPct
		det["subdivision_delta"] = costs.DifferentSubdivisionPct
	}
	if subject.SchoolDistrict != comp.SchoolDistrict {
		pct += costs.DifferentSchoolDistrictPct
		det["school_district_delta"] = costs.DifferentSchoolDistrictPct
	}

	if !math.IsNaN(subject.AvgSchoolRating) && !math.IsNaN(comp.AvgSchoolRating) {
		diff := subject.AvgSchoolRating - comp.AvgSchoolRating
		det["school_rating_diff"] = diff
		pct += diff * costs.SchoolRatingPctPerPoint
	}

	if subject.Waterfront != comp.Waterfront {
		wf := costs.WaterfrontPct
		if !subject.Waterfront {
			wf = -costs.WaterfrontPct
		}
		pct += wf
		det["waterfront"] = []bool{subject.Waterfront, comp.Waterfront}
	}

	base := comp.SalePrice
	if math.IsNaN(base) {
		base = 0
	}
	det["pct_total"] = pct
	return base * pct, det
}
