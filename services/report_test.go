package services

import (
	"math"
	"testing"

	"comp-valuation/models"
	"comp-valuation/utils"
)

func sampleGrid() []*models.GridRow {
	return []*models.GridRow{
		{
			Comparable: "101 First St", BasePrice: 500000,
			NetAdjustment: -20000, AdjustedPrice: 480000, Similarity: 72,
			LineItems: []models.LineItem{{Category: "GLA", Amount: -21000}, {Category: "Bedrooms", Amount: 1000}},
		},
		{
			Comparable: "202 Second St", BasePrice: 430000,
			NetAdjustment: 30000, AdjustedPrice: 460000, Similarity: 91,
			LineItems: []models.LineItem{{Category: "Lot Size", Amount: 30000}},
		},
		{
			Comparable: "303 Third St", BasePrice: 475000,
			NetAdjustment: 0, AdjustedPrice: 475000, Similarity: 88,
			LineItems: []models.LineItem{{Category: "Stories", Amount: 0}},
		},
	}
}

func TestReportAggregates(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleGrid(), models.Summary{IndicatedValue: 475000})

	if r.Comparables != 3 {
		t.Errorf("Comparables = %d; want 3", r.Comparables)
	}
	if r.IndicatedValue != 475000 {
		t.Errorf("IndicatedValue = %v; want 475000", r.IndicatedValue)
	}
	if r.MinAdjusted != 460000 || r.MaxAdjusted != 480000 {
		t.Errorf("range = %v..%v; want 460000..480000", r.MinAdjusted, r.MaxAdjusted)
	}
	if r.AvgAdjusted != 471666.67 {
		t.Errorf("AvgAdjusted = %v; want 471666.67", r.AvgAdjusted)
	}
}

func TestReportLargestLineItem(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleGrid(), models.Summary{IndicatedValue: 475000})

	if r.LargestLineItem == nil {
		t.Fatal("LargestLineItem should not be nil")
	}
	if r.LargestLineItem.Category != "Lot Size" || r.LargestLineItem.Amount != 30000 {
		t.Errorf("largest = %+v; want Lot Size 30000", r.LargestLineItem)
	}
	if r.LargestLineComp != "202 Second St" {
		t.Errorf("LargestLineComp = %q", r.LargestLineComp)
	}
}

func TestReportBestMatch(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleGrid(), models.Summary{IndicatedValue: 475000})

	if r.BestMatch == nil || r.BestMatch.Comparable != "202 Second St" {
		t.Errorf("BestMatch = %+v; want 202 Second St", r.BestMatch)
	}
}

func TestReportGrossAdjustmentPct(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(sampleGrid(), models.Summary{IndicatedValue: 475000})

	// (20000/500000 + 30000/430000 + 0/475000) / 3 × 100 ≈ 3.66%
	if math.Abs(r.GrossAdjPct-3.66) > 0.01 {
		t.Errorf("GrossAdjPct = %v; want ≈3.66", r.GrossAdjPct)
	}
}

func TestReportEmptyGrid(t *testing.T) {
	svc := NewReportService(utils.NewLogger())
	r := svc.Generate(nil, models.Summary{IndicatedValue: math.NaN()})

	if r.Comparables != 0 {
		t.Errorf("Comparables = %d; want 0", r.Comparables)
	}
	if !math.IsNaN(r.IndicatedValue) {
		t.Errorf("IndicatedValue = %v; want NaN", r.IndicatedValue)
	}
	if r.LargestLineItem != nil || r.BestMatch != nil {
		t.Error("empty grid should produce no highlights")
	}
}
