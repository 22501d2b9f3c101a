package valuation

import (
	"math"
	"testing"

	"comp-valuation/models"
)

func testCosts() *CostAssumptions {
	c := DefaultCosts()
	return &c
}

func emptyPair() (*models.PropertyRecord, *models.PropertyRecord) {
	return models.EmptyRecord("subject"), models.EmptyRecord("comp")
}

// Every rule must degrade to exactly 0.0 when the fields it reads are
// undefined on both sides.
func TestRulesZeroOnMissingInput(t *testing.T) {
	costs := testCosts()
	nan := math.NaN()

	rules := map[string]func(s, c *models.PropertyRecord) float64{
		"sale_date": func(s, c *models.PropertyRecord) float64 { a, _ := SaleDateTrend(s, c, costs); return a },
		"hoa":       func(s, c *models.PropertyRecord) float64 { a, _ := HOAFees(s, c, costs); return a },
		"location":  func(s, c *models.PropertyRecord) float64 { a, _ := LocationSchoolWaterfront(s, c, costs); return a },
		"lot_size":  func(s, c *models.PropertyRecord) float64 { a, _ := LotSize(s, c, costs); return a },
		"lot_feat":  func(s, c *models.PropertyRecord) float64 { a, _ := LotFeaturesFencing(s, c, costs); return a },
		"age":       func(s, c *models.PropertyRecord) float64 { a, _ := AgeYearBuilt(s, c, costs); return a },
		"style":     func(s, c *models.PropertyRecord) float64 { a, _ := Style(s, c, costs); return a },
		"constr":    func(s, c *models.PropertyRecord) float64 { a, _ := Construction(s, c, costs); return a },
		"found":     func(s, c *models.PropertyRecord) float64 { a, _ := Foundation(s, c, costs); return a },
		"roof":      func(s, c *models.PropertyRecord) float64 { a, _ := Roof(s, c, costs); return a },
		"gla":       func(s, c *models.PropertyRecord) float64 { a, _ := GLA(s, c, 0, costs); return a },
		"above":     func(s, c *models.PropertyRecord) float64 { a, _ := AboveGrade(s, c, costs); return a },
		"below":     func(s, c *models.PropertyRecord) float64 { a, _ := BelowGrade(s, c, costs); return a },
		"beds":      func(s, c *models.PropertyRecord) float64 { a, _ := Bedrooms(s, c, costs); return a },
		"baths":     func(s, c *models.PropertyRecord) float64 { a, _ := Bathrooms(s, c, costs); return a },
		"stories":   func(s, c *models.PropertyRecord) float64 { a, _ := Stories(s, c, costs); return a },
		"quality":   func(s, c *models.PropertyRecord) float64 { a, _ := Quality(s, c, costs, nan); return a },
		"condition": func(s, c *models.PropertyRecord) float64 { a, _ := Condition(s, c, costs, nan); return a },
		"flooring":  func(s, c *models.PropertyRecord) float64 { a, _ := Flooring(s, c, costs); return a },
		"interior":  func(s, c *models.PropertyRecord) float64 { a, _ := InteriorFeatures(s, c, costs); return a },
		"fireplace": func(s, c *models.PropertyRecord) float64 { a, _ := Fireplace(s, c, costs); return a },
		"cooling":   func(s, c *models.PropertyRecord) float64 { a, _ := Cooling(s, c, costs); return a },
		"heating":   func(s, c *models.PropertyRecord) float64 { a, _ := Heating(s, c, costs); return a },
		"garage":    func(s, c *models.PropertyRecord) float64 { a, _ := GarageParking(s, c, costs); return a },
		"outdoor":   func(s, c *models.PropertyRecord) float64 { a, _ := PorchDeckPatio(s, c, costs); return a },
		"energy":    func(s, c *models.PropertyRecord) float64 { a, _ := EnergyUtilities(s, c, costs); return a },
		"external":  func(s, c *models.PropertyRecord) float64 { a, _ := ExternalMarket(s, c); return a },
		"exempt":    func(s, c *models.PropertyRecord) float64 { a, _ := Exemptions(s, c); return a },
	}

	for name, rule := range rules {
		subject, comp := emptyPair()
		if got := rule(subject, comp); got != 0 {
			t.Errorf("%s: empty inputs gave %v; want exactly 0", name, got)
		}
	}
}

// Swapping subject and comp must negate the delta rules.
func TestRuleAntisymmetry(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.YearBuilt, comp.YearBuilt = 2010, 1995
	subject.Beds, comp.Beds = 4, 3
	subject.Baths, comp.Baths = 3, 2.5
	subject.Stories, comp.Stories = 2, 1
	subject.LotSqft, comp.LotSqft = 8000, 6500

	rules := map[string]func(s, c *models.PropertyRecord) float64{
		"age":      func(s, c *models.PropertyRecord) float64 { a, _ := AgeYearBuilt(s, c, costs); return a },
		"beds":     func(s, c *models.PropertyRecord) float64 { a, _ := Bedrooms(s, c, costs); return a },
		"baths":    func(s, c *models.PropertyRecord) float64 { a, _ := Bathrooms(s, c, costs); return a },
		"stories":  func(s, c *models.PropertyRecord) float64 { a, _ := Stories(s, c, costs); return a },
		"lot_size": func(s, c *models.PropertyRecord) float64 { a, _ := LotSize(s, c, costs); return a },
	}

	for name, rule := range rules {
		fwd := rule(subject, comp)
		rev := rule(comp, subject)
		if fwd == 0 {
			t.Errorf("%s: expected non-zero adjustment from differing inputs", name)
		}
		if fwd != -rev {
			t.Errorf("%s: swap gave %v, want %v", name, rev, -fwd)
		}
	}
}

func TestSaleDateTrendOlderCompTrendsUp(t *testing.T) {
	costs := testCosts() // monthly trend 0.0025

	subject, comp := emptyPair()
	subject.SaleDate = "2024-06-01"
	comp.SaleDate = "2023-06-01"
	comp.SalePrice = 500000

	adj, det := SaleDateTrend(subject, comp, costs)
	if math.Abs(adj-15000) > 1e-6 {
		t.Errorf("adjustment = %v; want 15000 (older comp trends upward)", adj)
	}
	if det["months_diff"] != -12.0 {
		t.Errorf("months_diff = %v; want -12", det["months_diff"])
	}

	// Newer comp trends downward by the same magnitude.
	subject.SaleDate, comp.SaleDate = comp.SaleDate, subject.SaleDate
	adj, _ = SaleDateTrend(subject, comp, costs)
	if math.Abs(adj-(-15000)) > 1e-6 {
		t.Errorf("newer comp adjustment = %v; want -15000", adj)
	}
}

func TestSaleDateTrendMissingDate(t *testing.T) {
	costs := testCosts()
	subject, comp := emptyPair()
	comp.SalePrice = 500000
	comp.SaleDate = "2023-06-01"

	if adj, _ := SaleDateTrend(subject, comp, costs); adj != 0 {
		t.Errorf("missing subject date: adjustment = %v; want 0", adj)
	}
}

func TestHOAFees(t *testing.T) {
	costs := testCosts() // 1 year capitalized

	subject, comp := emptyPair()
	subject.HOAFee = 250
	comp.HOAFee = 100

	adj, _ := HOAFees(subject, comp, costs)
	if adj != 1800 { // (250-100) × 12
		t.Errorf("adjustment = %v; want 1800", adj)
	}

	comp.HOAFee = math.NaN()
	if adj, _ := HOAFees(subject, comp, costs); adj != 0 {
		t.Errorf("missing comp fee: adjustment = %v; want 0", adj)
	}
}

func TestLocationMismatchPcts(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.Neighborhood, comp.Neighborhood = "Fair Oaks", "Citrus Heights"
	subject.Subdivision, comp.Subdivision = "Phoenix Field", "Sunrise Ranch"
	subject.SchoolDistrict, comp.SchoolDistrict = "San Juan USD", "Folsom Cordova USD"
	comp.SalePrice = 400000

	// -1% - 0.5% - 0.5% = -2% of comp price
	adj, det := LocationSchoolWaterfront(subject, comp, costs)
	if math.Abs(adj-(-8000)) > 1e-9 {
		t.Errorf("adjustment = %v; want -8000", adj)
	}
	if math.Abs(det["pct_total"].(float64)-(-0.02)) > 1e-12 {
		t.Errorf("pct_total = %v; want -0.02", det["pct_total"])
	}
}

func TestLocationCompareIsCaseSensitive(t *testing.T) {
	costs := testCosts()
	subject, comp := emptyPair()
	subject.Neighborhood, comp.Neighborhood = "Fair Oaks", "fair oaks"
	comp.SalePrice = 400000

	if adj, _ := LocationSchoolWaterfront(subject, comp, costs); adj == 0 {
		t.Error("case-differing neighborhoods should count as a mismatch")
	}
}

func TestLocationSchoolRating(t *testing.T) {
	costs := testCosts()
	subject, comp := emptyPair()
	subject.AvgSchoolRating = 8
	comp.AvgSchoolRating = 6
	comp.SalePrice = 500000

	// +2 points × 0.2%/point = +0.4% of 500k
	adj, _ := LocationSchoolWaterfront(subject, comp, costs)
	if math.Abs(adj-2000) > 1e-9 {
		t.Errorf("adjustment = %v; want 2000", adj)
	}

	comp.AvgSchoolRating = math.NaN()
	if adj, _ := LocationSchoolWaterfront(subject, comp, costs); adj != 0 {
		t.Errorf("missing comp rating: adjustment = %v; want 0", adj)
	}
}

func TestLocationWaterfrontToggle(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.Waterfront = true
	comp.SalePrice = 500000

	adj, _ := LocationSchoolWaterfront(subject, comp, costs)
	if math.Abs(adj-15000) > 1e-9 { // +3% of 500k
		t.Errorf("waterfront subject: adjustment = %v; want 15000", adj)
	}

	subject.Waterfront, comp.Waterfront = false, true
	adj, _ = LocationSchoolWaterfront(subject, comp, costs)
	if math.Abs(adj-(-15000)) > 1e-9 {
		t.Errorf("waterfront comp: adjustment = %v; want -15000", adj)
	}
}

func TestLotFeaturesFencing(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.LotFeaturesText = "greenbelt view on a cul-de-sac" // +3
	comp.LotFeaturesText = "backs to busy road"                // -1

	adj, _ := LotFeaturesFencing(subject, comp, costs)
	if adj != 4*costs.FenceToken {
		t.Errorf("adjustment = %v; want %v", adj, 4*costs.FenceToken)
	}
}

func TestLotSizeOneSidedMissingIsNeutral(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.LotSqft = 7000 // comp lot stays NaN

	if adj, _ := LotSize(subject, comp, costs); adj != 0 {
		t.Errorf("missing comp lot: adjustment = %v; want 0", adj)
	}

	subject.LotSqft, comp.LotSqft = math.NaN(), 7000
	if adj, _ := LotSize(subject, comp, costs); adj != 0 {
		t.Errorf("missing subject lot: adjustment = %v; want 0", adj)
	}

	subject.LotSqft = 8000
	adj, _ := LotSize(subject, comp, costs)
	if adj != 1000*costs.LotPSF {
		t.Errorf("both present: adjustment = %v; want %v", adj, 1000*costs.LotPSF)
	}
}

func TestStructureTokenRules(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.Style, comp.Style = "Ranch", "Tudor"
	adj, _ := Style(subject, comp, costs)
	if adj != costs.StyleToken {
		t.Errorf("different styles: adjustment = %v; want %v", adj, costs.StyleToken)
	}

	// Case-insensitive equality is "same".
	subject.Style, comp.Style = "Ranch", "ranch"
	if adj, _ := Style(subject, comp, costs); adj != 0 {
		t.Errorf("same style: adjustment = %v; want 0", adj)
	}

	// One side missing is neutral.
	subject.Roof, comp.Roof = "Composition Shingle", ""
	if adj, _ := Roof(subject, comp, costs); adj != 0 {
		t.Errorf("missing comp roof: adjustment = %v; want 0", adj)
	}
}

func TestQualityWorkedExample(t *testing.T) {
	costs := testCosts() // 4%/step, 60% building share

	subject, comp := emptyPair()
	subject.Style = "luxury custom estate" // Q2 (luxury matches first)
	comp.Style = "average tract"           // Q4

	adj, det := Quality(subject, comp, costs, 500000)
	if math.Abs(adj-24000) > 1e-9 { // -(2-4) × 0.04 × 300000
		t.Errorf("adjustment = %v; want 24000", adj)
	}
	if det["steps"] != -2 {
		t.Errorf("steps = %v; want -2", det["steps"])
	}
	if math.Abs(det["building_basis"].(float64)-300000) > 1e-9 {
		t.Errorf("building_basis = %v; want 300000", det["building_basis"])
	}
}

func TestConditionStepAdjustment(t *testing.T) {
	costs := testCosts() // 2.5%/step

	subject, comp := emptyPair()
	subject.ConditionLabel = "renovated" // C3
	comp.ConditionLabel = "poor"         // C6

	// -(3-6) × 0.025 × 240000 = +18000: better subject condition pushes
	// the comp up toward it.
	adj, _ := Condition(subject, comp, costs, 400000)
	if math.Abs(adj-18000) > 1e-9 {
		t.Errorf("adjustment = %v; want 18000", adj)
	}
}

func TestQualityDegenerateBasis(t *testing.T) {
	costs := testCosts()
	subject, comp := emptyPair()
	subject.Style, comp.Style = "luxury", "basic"

	if adj, _ := Quality(subject, comp, costs, math.NaN()); adj != 0 {
		t.Errorf("NaN basis: adjustment = %v; want 0", adj)
	}
}

func TestFlooring(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.Flooring = "hardwood and tile" // +3
	comp.Flooring = "vinyl, carpet"        // -2

	adj, _ := Flooring(subject, comp, costs)
	if adj != 5*costs.InteriorToken {
		t.Errorf("adjustment = %v; want %v", adj, 5*costs.InteriorToken)
	}
}

func TestInteriorFeatures(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	// "Skylight Tube" hits both the "skylight" and "skylight tube" tokens,
	// so it counts twice; vaulted makes three.
	subject.InteriorFeatures = []string{"Vaulted Ceilings", "Skylight Tube"}
	comp.InteriorFeatures = []string{"Formal Dining"}

	adj, _ := InteriorFeatures(subject, comp, costs)
	if adj != 3*costs.InteriorToken {
		t.Errorf("adjustment = %v; want %v", adj, 3*costs.InteriorToken)
	}

	comp.InteriorFeatures = []string{"Skylight over entry"} // plain skylight counts once
	adj, _ = InteriorFeatures(subject, comp, costs)
	if adj != 2*costs.InteriorToken {
		t.Errorf("adjustment = %v; want %v", adj, 2*costs.InteriorToken)
	}
}

func TestFireplaceFromParkingText(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.ParkingDesc = "garage with woodburning stove hookup"

	adj, _ := Fireplace(subject, comp, costs)
	if adj != costs.FireplaceEach {
		t.Errorf("adjustment = %v; want %v", adj, costs.FireplaceEach)
	}
}

func TestCoolingScores(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.Cooling = "Central Air, Whole House Fan" // 2000 + 800
	comp.Cooling = "Wall Unit"                       // -500

	adj, _ := Cooling(subject, comp, costs)
	if adj != 3300 {
		t.Errorf("adjustment = %v; want 3300", adj)
	}
}

func TestHeatingNaturalGas(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.NaturalGasConnected = true

	adj, _ := Heating(subject, comp, costs)
	if adj != costs.NaturalGasBonus {
		t.Errorf("adjustment = %v; want %v", adj, costs.NaturalGasBonus)
	}
}

func TestGarageParkingNaNAsZero(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.GarageSpaces = 2 // comp stays NaN → treated as 0 spaces

	adj, _ := GarageParking(subject, comp, costs)
	if adj != 2*costs.GarageSpaceValue {
		t.Errorf("adjustment = %v; want %v", adj, 2*costs.GarageSpaceValue)
	}
}

func TestPorchDeckPatio(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.LotFeaturesText = "covered porch and large deck"
	comp.LotFeaturesText = "patio"

	// +porch +deck −patio = 3000 + 5000 − 4000
	adj, _ := PorchDeckPatio(subject, comp, costs)
	if adj != 4000 {
		t.Errorf("adjustment = %v; want 4000", adj)
	}
}

func TestEnergyUtilities(t *testing.T) {
	costs := testCosts()

	subject, comp := emptyPair()
	subject.Solar = true
	subject.ElectricPVOnGrid = true

	// 2 presence points × (0.5×10000 + 0.5×2000)
	adj, _ := EnergyUtilities(subject, comp, costs)
	if adj != 12000 {
		t.Errorf("adjustment = %v; want 12000", adj)
	}
}

func TestPlaceholdersAlwaysZeroWithNote(t *testing.T) {
	subject, comp := emptyPair()

	adj, det := ExternalMarket(subject, comp)
	if adj != 0 {
		t.Errorf("external market adjustment = %v; want 0", adj)
	}
	if det["note"] != "no external market data provided" {
		t.Errorf("external market note = %v", det["note"])
	}

	adj, det = Exemptions(subject, comp)
	if adj != 0 {
		t.Errorf("exemptions adjustment = %v; want 0", adj)
	}
	if det["note"] != "no exemptions data provided" {
		t.Errorf("exemptions note = %v", det["note"])
	}
}

func TestMarketPSF(t *testing.T) {
	comps := []*models.PropertyRecord{
		compWith(400000, 2000), // 200/sf
		compWith(450000, 1500), // 300/sf
		compWith(600000, 2400), // 250/sf
	}
	if got := MarketPSF(comps); got != 250 {
		t.Errorf("MarketPSF = %v; want 250", got)
	}

	// Comps missing price or area are excluded; none usable → 0.
	unpriced := models.EmptyRecord("comp")
	if got := MarketPSF([]*models.PropertyRecord{unpriced}); got != 0 {
		t.Errorf("MarketPSF(no data) = %v; want 0", got)
	}
}

func compWith(price, gla float64) *models.PropertyRecord {
	c := models.EmptyRecord("comp")
	c.SalePrice = price
	c.GLA = gla
	return c
}
