package valuation

import (
	"math"
	"strings"

	"comp-valuation/models"
)

// AgeYearBuilt applies a linear $/year rate to the year-built delta
// (subject − comp): an older comp (lower year) is inferior, so the comp
// gets an upward adjustment. Either year missing is a zero adjustment.
func AgeYearBuilt(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s, c := subject.YearBuilt, comp.YearBuilt
	if math.IsNaN(s) || math.IsNaN(c) {
		return 0, models.Detail{"note": "missing year_built"}
	}
	d := s - c
	return d * costs.AgePerYear, models.Detail{"delta_years": d, "per_year": costs.AgePerYear}
}

// tokenMismatch applies a flat token value when both labels are present and
// differ case-insensitively. Equal or missing labels contribute nothing.
func tokenMismatch(subjectVal, compVal string, token float64) (float64, models.Detail) {
	s := strings.ToLower(strings.TrimSpace(subjectVal))
	c := strings.ToLower(strings.TrimSpace(compVal))
	if s == c || s == "" || c == "" {
		return 0, models.Detail{"note": "same or missing"}
	}
	return token, models.Detail{"subject": s, "comp": c, "token": token}
}

// Style compares architectural style labels.
func Style(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	return tokenMismatch(subject.Style, comp.Style, costs.StyleToken)
}

// Construction compares construction-material labels.
func Construction(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	return tokenMismatch(subject.ConstructionMaterials, comp.ConstructionMaterials, costs.ConstructionToken)
}

// Foundation compares foundation-detail labels.
func Foundation(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	return tokenMismatch(subject.FoundationDetails, comp.FoundationDetails, costs.FoundationToken)
}

// Roof compares roof labels.
func Roof(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	return tokenMismatch(subject.Roof, comp.Roof, costs.RoofToken)
}
