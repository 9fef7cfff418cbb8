package config

import (
	"os"
	"strconv"
)

// FromEnv loads a balance from environment variables, falling back to the
// default (or a difficulty preset) for anything unset.
func FromEnv() Balance {
	cfg := Default()
	if mode := os.Getenv("DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			cfg = Casual()
		case "hard":
			cfg = Hard()
		}
	}

	if v := getEnvInt("STARTING_CASH"); v > 0 {
		cfg.StartingCash = v
	}
	if v := getEnvInt("WIN_THRESHOLD"); v > 0 {
		cfg.WinThreshold = v
	}
	if v := getEnvInt("MAX_LOAN"); v > 0 {
		cfg.MaxLoan = v
	}
	if v := getEnvFloat("DAILY_INTEREST_RATE"); v > 0 {
		cfg.DailyInterestRate = v
	}
	if v := getEnvFloat("DAILY_TAX_RATE"); v > 0 {
		cfg.DailyTaxRate = v
	}
	if v := getEnvInt("CONTRACTOR_DAILY_WAGE"); v > 0 {
		cfg.ContractorDailyWage = v
	}
	if v := getEnvInt("MAX_SKILL_LEVEL"); v > 0 {
		cfg.MaxSkillLevel = v
	}
	if v := getEnvInt("LISTING_CAP"); v > 0 {
		cfg.ListingCap = v
	}
	if v := getEnvFloat("DAILY_LISTING_CHANCE"); v > 0 {
		cfg.DailyListingChance = v
	}
	if v := getEnvInt("MAX_ACTIVE_EVENTS"); v > 0 {
		cfg.MaxActiveEvents = v
	}
	if v := getEnvFloat("DAILY_EVENT_CHANCE"); v > 0 {
		cfg.DailyEventChance = v
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}
