package valuation

import (
	"math"

	"comp-valuation/models"
)

// Grid category labels in evaluation order. The explicit ordered list below
// is the output-schema contract: every run emits exactly these categories,
// in exactly this order, for every comparable.
const (
	CatTime       = "Time (Sale Date)"
	CatHOA        = "HOA Fees"
	CatLocation   = "Neighborhood/Subdivision/Schools/Waterfront"
	CatLotSize    = "Lot Size"
	CatLotFeature = "Lot Features / Fencing"
	CatAge        = "Age / Year Built"
	CatStyle      = "Style"
	CatConstr     = "Construction Materials"
	CatFoundation = "Foundation"
	CatRoof       = "Roof"
	CatGLA        = "GLA"
	CatAboveGrade = "Above Grade Size"
	CatBelowGrade = "Below Grade Size / Basement"
	CatBedrooms   = "Bedrooms"
	CatBathrooms  = "Bathrooms"
	CatStories    = "Stories"
	CatQuality    = "Quality (Q)"
	CatCondition  = "Condition (C)"
	CatFlooring   = "Flooring"
	CatInterior   = "Interior Features"
	CatFireplace  = "Fireplace"
	CatCooling    = "Cooling"
	CatHeating    = "Heating"
	CatGarage     = "Garage / Parking"
	CatOutdoor    = "Porch / Deck / Patio"
	CatEnergy     = "Energy / Utilities"
	CatExternal   = "External Market (placeholders)"
	CatExemptions = "Exemptions (placeholders)"
)

type ruleFunc func(subject, comp *models.PropertyRecord) (float64, models.Detail)

type categoryRule struct {
	label string
	rule  ruleFunc
}

// Engine runs the full rule set over a subject and its comparables and
// assembles the adjustment grid. It is pure and synchronous: one invocation
// touches nothing outside its return values.
type Engine struct {
	policy AdjustmentPolicy
	costs  CostAssumptions
}

// NewEngine creates an engine bound to a policy and cost model.
func NewEngine(policy AdjustmentPolicy, costs CostAssumptions) *Engine {
	return &Engine{policy: policy, costs: costs}
}

// cap clamps x into ±(pct × base). A non-positive base collapses the cap
// window to zero.
func capAmount(x, base, pct float64) float64 {
	window := math.Abs(pct) * math.Max(base, 0)
	return math.Max(-window, math.Min(window, x))
}

// rules builds the fixed, ordered (label, rule) list for one run. marketBasis
// and marketPSF are run-level inputs, so the per-rule closures bind them
// here rather than threading them through every signature.
func (e *Engine) rules(marketBasis, marketPSF float64) []categoryRule {
	costs := &e.costs
	return []categoryRule{
		{CatTime, func(s, c *models.PropertyRecord) (float64, models.Detail) { return SaleDateTrend(s, c, costs) }},
		{CatHOA, func(s, c *models.PropertyRecord) (float64, models.Detail) { return HOAFees(s, c, costs) }},

		{CatLocation, func(s, c *models.PropertyRecord) (float64, models.Detail) { return LocationSchoolWaterfront(s, c, costs) }},

		{CatLotSize, func(s, c *models.PropertyRecord) (float64, models.Detail) { return LotSize(s, c, costs) }},
		{CatLotFeature, func(s, c *models.PropertyRecord) (float64, models.Detail) { return LotFeaturesFencing(s, c, costs) }},

		{CatAge, func(s, c *models.PropertyRecord) (float64, models.Detail) { return AgeYearBuilt(s, c, costs) }},
		{CatStyle, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Style(s, c, costs) }},
		{CatConstr, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Construction(s, c, costs) }},
		{CatFoundation, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Foundation(s, c, costs) }},
		{CatRoof, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Roof(s, c, costs) }},

		{CatGLA, func(s, c *models.PropertyRecord) (float64, models.Detail) { return GLA(s, c, marketPSF, costs) }},
		{CatAboveGrade, func(s, c *models.PropertyRecord) (float64, models.Detail) { return AboveGrade(s, c, costs) }},
		{CatBelowGrade, func(s, c *models.PropertyRecord) (float64, models.Detail) { return BelowGrade(s, c, costs) }},
		{CatBedrooms, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Bedrooms(s, c, costs) }},
		{CatBathrooms, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Bathrooms(s, c, costs) }},
		{CatStories, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Stories(s, c, costs) }},

		{CatQuality, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Quality(s, c, costs, marketBasis) }},
		{CatCondition, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Condition(s, c, costs, marketBasis) }},
		{CatFlooring, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Flooring(s, c, costs) }},
		{CatInterior, func(s, c *models.PropertyRecord) (float64, models.Detail) { return InteriorFeatures(s, c, costs) }},
		{CatFireplace, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Fireplace(s, c, costs) }},

		{CatCooling, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Cooling(s, c, costs) }},
		{CatHeating, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Heating(s, c, costs) }},
		{CatGarage, func(s, c *models.PropertyRecord) (float64, models.Detail) { return GarageParking(s, c, costs) }},
		{CatOutdoor, func(s, c *models.PropertyRecord) (float64, models.Detail) { return PorchDeckPatio(s, c, costs) }},
		{CatEnergy, func(s, c *models.PropertyRecord) (float64, models.Detail) { return EnergyUtilities(s, c, costs) }},

		{CatExternal, func(s, c *models.PropertyRecord) (float64, models.Detail) { return ExternalMarket(s, c) }},
		{CatExemptions, func(s, c *models.PropertyRecord) (float64, models.Detail) { return Exemptions(s, c) }},
	}
}

// Categories returns the fixed category labels in grid order.
func (e *Engine) Categories() []string {
	rules := e.rules(math.NaN(), 0)
	labels := make([]string, len(rules))
	for i, r := range rules {
		labels[i] = r.label
	}
	return labels
}

// Run evaluates every rule for every comparable and returns the adjustment
// grid (rows in input order) and the summary. Zero comparables yields an
// empty grid and a NaN indicated value; it never fails.
func (e *Engine) Run(subject *models.PropertyRecord, comps []*models.PropertyRecord) ([]*models.GridRow, models.Summary) {
	// Market basis for the percentage-of-building-value rules.
	prices := make([]float64, 0, len(comps))
	for _, c := range comps {
		prices = append(prices, c.SalePrice)
	}
	marketBasis := Median(prices)
	marketPSF := MarketPSF(comps)

	rules := e.rules(marketBasis, marketPSF)

	grid := make([]*models.GridRow, 0, len(comps))
	adjusted := make([]float64, 0, len(comps))

	for _, comp := range comps {
		base := comp.SalePrice
		if math.IsNaN(base) {
			base = 0
		}
		// The cap window divides against at least $1 so a free comp still
		// caps to (effectively) zero instead of dividing away entirely.
		lineBase := math.Max(base, 1.0)

		row := &models.GridRow{
			Comparable: comp.Address,
			BasePrice:  base,
			LineItems:  make([]models.LineItem, 0, len(rules)),
			Details:    make(map[string]models.Detail, len(rules)),
			Similarity: SimilarityWeight(subject, comp, &e.policy),
		}

		net := 0.0
		for _, cr := range rules {
			raw, det := cr.rule(subject, comp)
			capped := capAmount(raw, lineBase, e.policy.LineCapPct)
			row.LineItems = append(row.LineItems, models.LineItem{Category: cr.label, Amount: capped})
			row.Details[cr.label] = det
			net += capped
		}

		net = capAmount(net, lineBase, e.policy.TotalCapPct)
		row.NetAdjustment = net
		row.AdjustedPrice = base + net

		grid = append(grid, row)
		adjusted = append(adjusted, row.AdjustedPrice)
	}

	return grid, models.Summary{IndicatedValue: Median(adjusted)}
}
