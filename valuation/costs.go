package valuation

// CostAssumptions is the read-only bag of per-unit rates, token values, and
// percentage steps every rule draws from. DefaultCosts gives the tuned
// baseline; the config layer may override any subset from YAML.
type CostAssumptions struct {
	// Lot & site
	LotPSF     float64 `yaml:"lot_psf"`
	FenceToken float64 `yaml:"fence_token"`
	SitePosPct float64 `yaml:"site_pos_pct"`
	SiteNegPct float64 `yaml:"site_neg_pct"`

	// Structure / design
	AgePerYear        float64 `yaml:"age_per_year"`
	StyleToken        float64 `yaml:"style_token"`
	ConstructionToken float64 `yaml:"construction_token"`
	FoundationToken   float64 `yaml:"foundation_token"`
	RoofToken         float64 `yaml:"roof_token"`

	// Size & rooms
	GLAFactorPSF            float64 `yaml:"gla_factor_psf"` // multiplier on market $/sf
	AboveGradePSF           float64 `yaml:"above_grade_psf"`
	BelowGradeFinishedPSF   float64 `yaml:"below_grade_finished_psf"`
	BelowGradeUnfinishedPSF float64 `yaml:"below_grade_unfinished_psf"`
	VBed                    float64 `yaml:"v_bed"`
	VBathFull               float64 `yaml:"v_bath_full"`
	VBathHalf               float64 `yaml:"v_bath_half"`
	VStory                  float64 `yaml:"v_story"`

	// Condition & interior
	QualityPctPerStep   float64 `yaml:"quality_pct_per_step"`   // Q2-6 step on building value
	ConditionPctPerStep float64 `yaml:"condition_pct_per_step"` // C2-6 step on building value
	InteriorToken       float64 `yaml:"interior_token"`
	FireplaceEach       float64 `yaml:"fireplace_each"`

	// Amenities & utilities
	HVACCentralBonus      float64 `yaml:"hvac_central_bonus"`
	WholeHouseFanBonus    float64 `yaml:"whole_house_fan_bonus"`
	MultiUnitCoolingBonus float64 `yaml:"multi_unit_cooling_bonus"`
	SolarContrib          float64 `yaml:"solar_contrib"`
	NaturalGasBonus       float64 `yaml:"natural_gas_bonus"`
	PVOnGridBonus         float64 `yaml:"pv_on_grid_bonus"`
	GarageSpaceValue      float64 `yaml:"garage_space_value"` // per-space proxy
	PatioPkg              float64 `yaml:"patio_pkg"`
	DeckPkg               float64 `yaml:"deck_pkg"`
	PorchPkg              float64 `yaml:"porch_pkg"`

	// Transactional
	MonthlyMarketTrendPct float64 `yaml:"monthly_market_trend_pct"` // 0.25%/month
	HOAYearsCapitalized   float64 `yaml:"hoa_years_capitalized"`

	// Location & schools
	DifferentNeighborhoodPct   float64 `yaml:"different_neighborhood_pct"`
	DifferentSubdivisionPct    float64 `yaml:"different_subdivision_pct"`
	DifferentSchoolDistrictPct float64 `yaml:"different_school_district_pct"`
	SchoolRatingPctPerPoint    float64 `yaml:"school_rating_pct_per_point"` // 0.2%/point
	WaterfrontPct              float64 `yaml:"waterfront_pct"`

	// Share of indicated value treated as building (not land) for % steps
	BuildingShare float64 `yaml:"building_share"`
}

// AdjustmentPolicy holds the capping and weighting knobs that sit above the
// individual rules. MarketEachCap / MarketTotalCap are reserved for the
// external-market rule set and unused by the core engine.
type AdjustmentPolicy struct {
	LineCapPct     float64 `yaml:"line_cap_pct"`
	TotalCapPct    float64 `yaml:"total_cap_pct"`
	MarketEachCap  float64 `yaml:"market_each_cap"`
	MarketTotalCap float64 `yaml:"market_total_cap"`
	DistanceDecay  float64 `yaml:"distance_decay"` // similarity weight only
}

// DefaultCosts returns the baseline cost assumptions.
func DefaultCosts() CostAssumptions {
	return CostAssumptions{
		LotPSF:     3.0,
		FenceToken: 1500.0,
		SitePosPct: 0.01,
		SiteNegPct: -0.02,

		AgePerYear:        600.0,
		StyleToken:        1500.0,
		ConstructionToken: 1200.0,
		FoundationToken:   1000.0,
		RoofToken:         1000.0,

		GLAFactorPSF:            0.35,
		AboveGradePSF:           40.0,
		BelowGradeFinishedPSF:   50.0,
		BelowGradeUnfinishedPSF: 15.0,
		VBed:                    9000.0,
		VBathFull:               12000.0,
		VBathHalf:               6000.0,
		VStory:                  3000.0,

		QualityPctPerStep:   0.04,
		ConditionPctPerStep: 0.025,
		InteriorToken:       1000.0,
		FireplaceEach:       6000.0,

		HVACCentralBonus:      2000.0,
		WholeHouseFanBonus:    800.0,
		MultiUnitCoolingBonus: 1200.0,
		SolarContrib:          10000.0,
		NaturalGasBonus:       1500.0,
		PVOnGridBonus:         2000.0,
		GarageSpaceValue:      25000.0,
		PatioPkg:              4000.0,
		DeckPkg:               5000.0,
		PorchPkg:              3000.0,

		MonthlyMarketTrendPct: 0.0025,
		HOAYearsCapitalized:   1.0,

		DifferentNeighborhoodPct:   -0.01,
		DifferentSubdivisionPct:    -0.005,
		DifferentSchoolDistrictPct: -0.005,
		SchoolRatingPctPerPoint:    0.002,
		WaterfrontPct:              0.03,

		BuildingShare: 0.60,
	}
}

// DefaultPolicy returns the baseline capping policy.
func DefaultPolicy() AdjustmentPolicy {
	return AdjustmentPolicy{
		LineCapPct:     0.09,
		TotalCapPct:    0.27,
		MarketEachCap:  0.03,
		MarketTotalCap: 0.05,
		DistanceDecay:  0.10,
	}
}
