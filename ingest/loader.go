package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"comp-valuation/models"
	"comp-valuation/utils"
	"comp-valuation/valuation"
)

// Loader normalizes raw property payloads into canonical PropertyRecords.
// It is deliberately forgiving: any field may be absent or garbage, and the
// result is still a usable (if sparse) record.
type Loader struct {
	logger *utils.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Payload is the raw subject-plus-comparables document shape, as produced
// by the fetch layer or read from disk.
type Payload struct {
	Subject     map[string]any   `json:"subject"`
	Comparables []map[string]any `json:"comparables"`
}

// LoadFile reads and normalizes a subject/comparables JSON document.
func (l *Loader) LoadFile(path string) (*models.PropertyRecord, []*models.PropertyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: read %q: %w", path, err)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil, fmt.Errorf("ingest: parse %q: %w", path, err)
	}
	return l.Normalize(&payload)
}

// Normalize converts an already-parsed payload into canonical records.
func (l *Loader) Normalize(payload *Payload) (*models.PropertyRecord, []*models.PropertyRecord, error) {
	if payload == nil || payload.Subject == nil {
		return nil, nil, fmt.Errorf("ingest: payload has no subject")
	}

	subject := l.toRecord(payload.Subject, "subject")
	comps := make([]*models.PropertyRecord, 0, len(payload.Comparables))
	for _, raw := range payload.Comparables {
		comps = append(comps, l.toRecord(raw, "comp"))
	}

	l.logger.Info("[ingest] Normalized subject %q + %d comparables", subject.Address, len(comps))
	return subject, comps, nil
}

// toRecord maps one raw property dict onto the canonical schema, applying
// the fallback chains the upstream sources need.
func (l *Loader) toRecord(d map[string]any, role string) *models.PropertyRecord {
	// Living area: prefer the reported sf, then above-grade, then total.
	gla := valuation.Num(d["sf"])
	if math.IsNaN(gla) {
		gla = valuation.Num(d["above_grade_size"])
	}
	if math.IsNaN(gla) {
		gla = valuation.Num(d["total_size"])
	}

	// Lot size: sqft directly, or acres converted.
	lotSqft := valuation.Num(d["lot_sqft"])
	if math.IsNaN(lotSqft) {
		if acres := valuation.Num(d["lot_acres"]); !math.IsNaN(acres) {
			lotSqft = acres * 43560
		}
	}

	// Garage: explicit feature-derived spaces, else total parking spaces.
	garage := valuation.Num(d["garage_spaces_from_features"])
	if math.IsNaN(garage) {
		garage = valuation.Num(d["parking_total_spaces"])
	}

	return &models.PropertyRecord{
		Role:    role,
		Address: valuation.Txt(d["address"]),

		SalePrice: valuation.Num(d["sold_1_price"]),
		SaleDate:  valuation.Txt(d["sold_1_date"]),

		GLA:            gla,
		AboveGradeSize: valuation.Num(d["above_grade_size"]),
		BelowGradeSize: valuation.Num(d["below_grade_size"]),
		LotSqft:        lotSqft,

		Beds:      valuation.Num(d["beds"]),
		Baths:     valuation.Num(d["baths"]),
		BathsFull: valuation.Num(d["baths_full"]),
		BathsHalf: valuation.Num(d["baths_half"]),
		Stories:   valuation.Num(d["stories"]),
		YearBuilt: valuation.Num(d["year_built"]),

		Style:                 valuation.Txt(d["style"]),
		ConstructionMaterials: valuation.Txt(d["construction_materials"]),
		FoundationDetails:     valuation.Txt(d["foundation_details"]),
		Roof:                  valuation.Txt(d["roof"]),
		Basement:              valuation.TruthyText(d["basement"]),

		Cooling:      valuation.Txt(d["cooling"]),
		Heating:      valuation.Txt(d["heating"]),
		GarageSpaces: garage,
		ParkingDesc:  valuation.Txt(d["parking_desc_from_building_info"]),

		Fencing:          valuation.Txt(d["fencing"]),
		LotFeaturesText:  valuation.Txt(d["lot_features_text"]),
		InteriorFeatures: stringList(d["interior_features"]),
		Flooring:         valuation.Txt(d["flooring"]),
		ConditionLabel:   valuation.Txt(d["property_condition_label"]),

		HOA:    valuation.TruthyText(d["hoa"]),
		HOAFee: valuation.Num(d["hoa_fee"]),

		Neighborhood:    valuation.Txt(d["neighborhood"]),
		Subdivision:     valuation.Txt(d["subdivision"]),
		SchoolDistrict:  valuation.Txt(d["school_district"]),
		AvgSchoolRating: avgSchoolRating(d["school_ratings"]),
		Waterfront:      valuation.TruthyText(d["waterfront"]),

		Electric:            valuation.TruthyText(d["electric"]),
		Electric220Volts:    valuation.TruthyText(d["electric_220_volts"]),
		ElectricPVOnGrid:    valuation.TruthyText(d["electric_pv_on_grid"]),
		NaturalGasConnected: valuation.TruthyText(d["natural_gas_connected"]),
		Solar:               valuation.TruthyText(d["solar"]),
		UtilitiesRaw:        stringList(d["utilities_raw"]),

		Latitude:  valuation.Num(d["latitude"]),
		Longitude: valuation.Num(d["longitude"]),
	}
}

// stringList coerces a raw JSON list into []string, skipping unusable
// entries.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := valuation.Txt(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// avgSchoolRating averages the numeric ratings inside a school-ratings
// list, NaN when none parse.
func avgSchoolRating(v any) float64 {
	items, ok := v.([]any)
	if !ok {
		return math.NaN()
	}
	sum, n := 0.0, 0
	for _, it := range items {
		entry, ok := it.(map[string]any)
		if !ok {
			continue
		}
		r := valuation.Num(entry["rating"])
		if !math.IsNaN(r) {
			sum += r
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
