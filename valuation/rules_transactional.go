package valuation

import (
	"math"

	"comp-valuation/models"
)

// SaleDateTrend adjusts the comp's price for market movement between its
// sale date and the subject's reference date.
//
// Sign convention (load-bearing): months = comp date - subject date, so a
// comp that sold 12 months before the subject gives months = -12 and
// pct = -months * trend = +0.03. An older comp trends upward, a newer comp
// trends downward. Either date missing leaves the comp untouched.
func SaleDateTrend(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	m := MonthsBetween(comp.SaleDate, subject.SaleDate)
	pct := -m * costs.MonthlyMarketTrendPct
	base := comp.SalePrice
	if math.IsNaN(base) {
		base = 0
	}
	adj := base * pct
	return adj, models.Detail{
		"months_diff":   m,
		"pct_per_month": costs.MonthlyMarketTrendPct,
		"pct_total":     pct,
	}
}

// HOAFees capitalizes the monthly HOA fee difference (subject − comp) over
// the configured number of years. Either fee missing is a zero adjustment.
func HOAFees(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s := subject.HOAFee
	c := comp.HOAFee
	months := 12.0 * costs.HOAYearsCapitalized
	if math.IsNaN(s) || math.IsNaN(c) {
		return 0, models.Detail{"subject_hoa": nil, "comp_hoa": nil, "months_capitalized": months}
	}
	adj := (s - c) * months
	return adj, models.Detail{"subject_hoa": s, "comp_hoa": c, "months_capitalized": months}
}
