package valuation

import (
	"strings"

	"comp-valuation/models"
)

// wallWindowUnitPenalty is the fixed knock for wall or window units.
const wallWindowUnitPenalty = 500.0

func coolingScore(desc string, costs *CostAssumptions) float64 {
	v := strings.ToLower(strings.TrimSpace(desc))
	score := 0.0
	if strings.Contains(v, "central") {
		score += costs.HVACCentralBonus
	}
	if strings.Contains(v, "whole house fan") {
		score += costs.WholeHouseFanBonus
	}
	if strings.Contains(v, "multi") {
		score += costs.MultiUnitCoolingBonus
	}
	if strings.Contains(v, "wall unit") || strings.Contains(v, "window unit") {
		score -= wallWindowUnitPenalty
	}
	return score
}

// Cooling scores each side's cooling description against the bonus table
// and takes the difference.
func Cooling(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s := strings.ToLower(strings.TrimSpace(subject.Cooling))
	c := strings.ToLower(strings.TrimSpace(comp.Cooling))
	adj := coolingScore(s, costs) - coolingScore(c, costs)
	return adj, models.Detail{"subject": s, "comp": c}
}

// Heating infers heating value through the natural-gas connection flag,
// since the canonical record may carry no explicit heating descriptor.
func Heating(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	d := boolDelta(subject.NaturalGasConnected, comp.NaturalGasConnected)
	return d * costs.NaturalGasBonus, models.Detail{
		"subject_gas": subject.NaturalGasConnected,
		"comp_gas":    comp.NaturalGasConnected,
		"bonus_each":  costs.NaturalGasBonus,
	}
}

// GarageParking values the garage-space delta at a flat per-space rate,
// with missing counts treated as zero spaces.
func GarageParking(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	d := SafeDelta(subject.GarageSpaces, comp.GarageSpaces)
	return d * costs.GarageSpaceValue, models.Detail{"delta_spaces": d, "per_space": costs.GarageSpaceValue}
}

// PorchDeckPatio checks the lot-feature text on each side for the three
// outdoor-package tokens independently and sums the valued presence
// differences.
func PorchDeckPatio(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	s := strings.ToLower(subject.LotFeaturesText)
	c := strings.ToLower(comp.LotFeaturesText)

	adj := 0.0
	det := models.Detail{}
	for _, pkg := range []struct {
		token string
		value float64
	}{
		{"porch", costs.PorchPkg},
		{"patio", costs.PatioPkg},
		{"deck", costs.DeckPkg},
	} {
		sv := strings.Contains(s, pkg.token)
		cv := strings.Contains(c, pkg.token)
		d := boolDelta(sv, cv)
		adj += d * pkg.value
		det[pkg.token] = models.Detail{"subject": sv, "comp": cv, "delta": d, "pkg": pkg.value}
	}
	return adj, det
}

// EnergyUtilities combines the solar and grid-tied PV presence differences,
// each weighted at half of the blended solar/PV bonus.
func EnergyUtilities(subject, comp *models.PropertyRecord, costs *CostAssumptions) (float64, models.Detail) {
	d := boolDelta(subject.Solar, comp.Solar) + boolDelta(subject.ElectricPVOnGrid, comp.ElectricPVOnGrid)
	adj := d * (0.5*costs.SolarContrib + 0.5*costs.PVOnGridBonus)
	return adj, models.Detail{
		"subject_solar": subject.Solar,
		"comp_solar":    comp.Solar,
		"subject_pv":    subject.ElectricPVOnGrid,
		"comp_pv":       comp.ElectricPVOnGrid,
	}
}
