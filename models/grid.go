package models

// Detail carries the raw inputs and intermediate values behind one line
// item, so every dollar on the grid can be traced back to its inputs.
type Detail map[string]any

// LineItem is one rule's capped dollar contribution to a comparable's
// adjustment, labeled with its grid category.
type LineItem struct {
	Category string
	Amount   float64
}

// GridRow is one comparable's fully evaluated row on the adjustment grid.
// LineItems holds every category in the engine's fixed order; Details is
// keyed by the same category labels.
type GridRow struct {
	Comparable    string
	BasePrice     float64
	LineItems     []LineItem
	NetAdjustment float64
	AdjustedPrice float64
	Similarity    float64
	Details       map[string]Detail
}

// Summary is the one-row result of a valuation run. IndicatedValue is NaN
// when there were no comparables to aggregate.
type Summary struct {
	IndicatedValue float64
}

// ValuationReport holds the aggregates the terminal report prints.
type ValuationReport struct {
	Comparables     int
	IndicatedValue  float64
	MinAdjusted     float64
	AvgAdjusted     float64
	MaxAdjusted     float64
	GrossAdjPct     float64 // average |net| / base across priced comps
	LargestLineItem *LineItem
	LargestLineComp string
	BestMatch       *GridRow // highest similarity score
}
