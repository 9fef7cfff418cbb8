// Package config holds every gameplay tunable in one explicit structure.
// Nothing in the simulation reads ambient globals; a Balance is passed into
// the game state at construction.
package config

// Balance holds the economy balance configuration.
type Balance struct {
	// Session goal
	StartingCash int `yaml:"starting_cash" json:"starting_cash"`
	WinThreshold int `yaml:"win_threshold" json:"win_threshold"`

	// Loans
	MaxLoan           int     `yaml:"max_loan" json:"max_loan"`
	DailyInterestRate float64 `yaml:"daily_interest_rate" json:"daily_interest_rate"`

	// Daily costs
	DailyTaxRate        float64 `yaml:"daily_tax_rate" json:"daily_tax_rate"`
	ContractorDailyWage int     `yaml:"contractor_daily_wage" json:"contractor_daily_wage"`

	// Renovation speed
	ContractorSpeedMultiplier float64 `yaml:"contractor_speed_multiplier" json:"contractor_speed_multiplier"`
	RenovationTimeFloor       float64 `yaml:"renovation_time_floor" json:"renovation_time_floor"`

	// Skills
	MaxSkillLevel            int     `yaml:"max_skill_level" json:"max_skill_level"`
	SkillBaseCost            int     `yaml:"skill_base_cost" json:"skill_base_cost"`
	SkillCostFactor          float64 `yaml:"skill_cost_factor" json:"skill_cost_factor"`
	NegotiationBonusPerLevel float64 `yaml:"negotiation_bonus_per_level" json:"negotiation_bonus_per_level"`
	MarketingBonusPerLevel   float64 `yaml:"marketing_bonus_per_level" json:"marketing_bonus_per_level"`
	HandinessStepPerLevel    float64 `yaml:"handiness_step_per_level" json:"handiness_step_per_level"`
	HandinessFloor           float64 `yaml:"handiness_floor" json:"handiness_floor"`

	// Market listings
	ListingCap          int     `yaml:"listing_cap" json:"listing_cap"`
	DailyListingChance  float64 `yaml:"daily_listing_chance" json:"daily_listing_chance"`
	InitialListings     int     `yaml:"initial_listings" json:"initial_listings"`
	MinInitialCondition int     `yaml:"min_initial_condition" json:"min_initial_condition"`
	MaxInitialCondition int     `yaml:"max_initial_condition" json:"max_initial_condition"`

	// Market events
	MaxActiveEvents  int     `yaml:"max_active_events" json:"max_active_events"`
	DailyEventChance float64 `yaml:"daily_event_chance" json:"daily_event_chance"`
}

// Default returns the canonical balance.
func Default() Balance {
	return Balance{
		StartingCash:              50000,
		WinThreshold:              1000000,
		MaxLoan:                   200000,
		DailyInterestRate:         0.001,
		DailyTaxRate:              0.0005,
		ContractorDailyWage:       100,
		ContractorSpeedMultiplier: 0.75,
		RenovationTimeFloor:       0.1,
		MaxSkillLevel:             5,
		SkillBaseCost:             5000,
		SkillCostFactor:           2.0,
		NegotiationBonusPerLevel:  0.02,
		MarketingBonusPerLevel:    0.03,
		HandinessStepPerLevel:     0.05,
		HandinessFloor:            0.5,
		ListingCap:                10,
		DailyListingChance:        0.3,
		InitialListings:           2,
		MinInitialCondition:       30,
		MaxInitialCondition:       85,
		MaxActiveEvents:           1,
		DailyEventChance:          0.05,
	}
}

// Casual returns an easier balance for relaxed play.
func Casual() Balance {
	cfg := Default()
	cfg.StartingCash = 80000
	cfg.WinThreshold = 500000
	cfg.DailyInterestRate = 0.0005
	cfg.DailyTaxRate = 0.00025
	cfg.DailyListingChance = 0.4
	return cfg
}

// Hard returns a tighter balance for experienced players.
func Hard() Balance {
	cfg := Default()
	cfg.StartingCash = 30000
	cfg.MaxLoan = 150000
	cfg.DailyInterestRate = 0.002
	cfg.DailyTaxRate = 0.001
	cfg.ContractorDailyWage = 150
	cfg.MaxActiveEvents = 2
	cfg.DailyEventChance = 0.08
	return cfg
}
