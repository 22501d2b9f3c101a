package valuation

import "comp-valuation/models"

// ExternalMarket is a placeholder for climate, job-market, walk/transit,
// unemployment, crime, and sex-offender context. It always returns zero
// with explicit detail, but the engine still records it so the grid schema
// stays stable once real data arrives.
func ExternalMarket(subject, comp *models.PropertyRecord) (float64, models.Detail) {
	return 0, models.Detail{
		"climate": nil, "job": nil, "walk": nil, "transit": nil,
		"unemployment": nil, "crime": nil, "sex_offender": nil,
		"note": "no external market data provided",
	}
}

// Exemptions is a placeholder for senior/homestead/veteran/disability tax
// exemption adjustments.
func Exemptions(subject, comp *models.PropertyRecord) (float64, models.Detail) {
	return 0, models.Detail{"exemptions": nil, "note": "no exemptions data provided"}
}
