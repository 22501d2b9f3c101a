package models

import "math"

// PropertyRecord is the canonical, normalized view of one property, either
// the subject or a comparable. It is what the ingest layer produces and the
// only shape the valuation engine ever sees.
//
// Numeric fields use NaN to mean "unknown"; text fields use ""; boolean
// flags default to false. Rules must treat unknown as a neutral, zero-effect
// input, so sparse records are always acceptable here.
type PropertyRecord struct {
	Role    string
	Address string

	SalePrice float64
	SaleDate  string // ISO-style date text; parsed leniently downstream

	GLA            float64
	AboveGradeSize float64
	BelowGradeSize float64
	LotSqft        float64

	Beds      float64
	Baths     float64 // combined count; full/half split is not used by rules
	BathsFull float64
	BathsHalf float64
	Stories   float64
	YearBuilt float64

	Style                 string
	ConstructionMaterials string
	FoundationDetails     string
	Roof                  string
	Basement              bool

	Cooling      string
	Heating      string
	GarageSpaces float64
	ParkingDesc  string

	Fencing          string
	LotFeaturesText  string
	InteriorFeatures []string
	Flooring         string
	ConditionLabel   string

	HOA    bool
	HOAFee float64

	Neighborhood    string
	Subdivision     string
	SchoolDistrict  string
	AvgSchoolRating float64
	Waterfront      bool

	Electric            bool
	Electric220Volts    bool
	ElectricPVOnGrid    bool
	NaturalGasConnected bool
	Solar               bool
	UtilitiesRaw        []string

	Latitude  float64
	Longitude float64
}

// EmptyRecord returns a record with every numeric field marked unknown.
// Callers building records by hand should start here: the float64 zero
// value would otherwise read as a present value of 0.
func EmptyRecord(role string) *PropertyRecord {
	nan := math.NaN()
	return &PropertyRecord{
		Role:            role,
		SalePrice:       nan,
		GLA:             nan,
		AboveGradeSize:  nan,
		BelowGradeSize:  nan,
		LotSqft:         nan,
		Beds:            nan,
		Baths:           nan,
		BathsFull:       nan,
		BathsHalf:       nan,
		Stories:         nan,
		YearBuilt:       nan,
		GarageSpaces:    nan,
		HOAFee:          nan,
		AvgSchoolRating: nan,
		Latitude:        nan,
		Longitude:       nan,
	}
}
