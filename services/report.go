package services

import (
	"fmt"
	"math"
	"strings"

	"comp-valuation/models"
	"comp-valuation/utils"
)

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate computes the terminal-report aggregates over a finished grid.
func (s *ReportService) Generate(grid []*models.GridRow, summary models.Summary) *models.ValuationReport {
	report := &models.ValuationReport{
		Comparables:    len(grid),
		IndicatedValue: summary.IndicatedValue,
	}

	if len(grid) == 0 {
		return report
	}

	report.MinAdjusted = grid[0].AdjustedPrice
	report.MaxAdjusted = grid[0].AdjustedPrice

	var total float64
	var grossPctSum float64
	var pricedRows int

	for _, row := range grid {
		total += row.AdjustedPrice
		if row.AdjustedPrice < report.MinAdjusted {
			report.MinAdjusted = row.AdjustedPrice
		}
		if row.AdjustedPrice > report.MaxAdjusted {
			report.MaxAdjusted = row.AdjustedPrice
		}

		if row.BasePrice > 0 {
			grossPctSum += math.Abs(row.NetAdjustment) / row.BasePrice
			pricedRows++
		}

		for i := range row.LineItems {
			item := &row.LineItems[i]
			if report.LargestLineItem == nil || math.Abs(item.Amount) > math.Abs(report.LargestLineItem.Amount) {
				report.LargestLineItem = item
				report.LargestLineComp = row.Comparable
			}
		}

		if report.BestMatch == nil || row.Similarity > report.BestMatch.Similarity {
			report.BestMatch = row
		}
	}

	report.AvgAdjusted = round2(total / float64(len(grid)))
	report.MinAdjusted = round2(report.MinAdjusted)
	report.MaxAdjusted = round2(report.MaxAdjusted)
	if pricedRows > 0 {
		report.GrossAdjPct = round2(grossPctSum / float64(pricedRows) * 100)
	}

	return report
}

// Print renders the report to the terminal.
func (s *ReportService) Print(r *models.ValuationReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 SALES COMPARISON VALUATION\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Indicated Value\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if math.IsNaN(r.IndicatedValue) {
		fmt.Printf("  No comparables — no value indicated\n")
	} else {
		fmt.Printf("  Median of adjusted prices : \033[1;32m$%.2f\033[0m\n", r.IndicatedValue)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Adjusted Price Range (%d comparables)\033[0m\n", r.Comparables)
	fmt.Printf("  %s\n", thin)
	if r.Comparables == 0 {
		fmt.Printf("  No comparable data\n")
	} else {
		fmt.Printf("  Minimum : $%.2f\n", r.MinAdjusted)
		fmt.Printf("  Average : $%.2f\n", r.AvgAdjusted)
		fmt.Printf("  Maximum : $%.2f\n", r.MaxAdjusted)
		fmt.Printf("  Avg gross adjustment : %.2f%% of base\n", r.GrossAdjPct)
	}
	fmt.Println()

	if r.LargestLineItem != nil {
		fmt.Printf("\033[1;33m  Largest Single Adjustment\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", r.LargestLineItem.Category)
		fmt.Printf("  Comparable : %s\n", truncate(r.LargestLineComp, 44))
		fmt.Printf("  Amount     : \033[1;31m$%.2f\033[0m\n", r.LargestLineItem.Amount)
		fmt.Println()
	}

	if r.BestMatch != nil {
		fmt.Printf("\033[1;33m  Best-Matched Comparable\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %-44s \033[1;32m%.1f ★\033[0m\n", truncate(r.BestMatch.Comparable, 44), r.BestMatch.Similarity)
		fmt.Printf("  Base $%.2f → Adjusted $%.2f\n", r.BestMatch.BasePrice, r.BestMatch.AdjustedPrice)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
