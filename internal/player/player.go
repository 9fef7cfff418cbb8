// Package player holds the player's finances, skills and property portfolio,
// plus the daily cost engine that charges interest, taxes and wages.
package player

import (
	"math"
	"sort"

	"houseflip/internal/config"
	"houseflip/internal/event"
	"houseflip/internal/fault"
	"houseflip/internal/market"
	"houseflip/internal/property"
	"houseflip/internal/refdata"
)

type Player struct {
	Cash          int
	Loan          int
	Skills        map[Skill]int
	HasContractor bool
	Properties    map[string]*property.Property

	cfg config.Balance
}

func New(cfg config.Balance) *Player {
	skills := make(map[Skill]int, len(AllSkills()))
	for _, s := range AllSkills() {
		skills[s] = 0
	}
	return &Player{
		Cash:       cfg.StartingCash,
		Skills:     skills,
		Properties: map[string]*property.Property{},
		cfg:        cfg,
	}
}

func (pl *Player) Balance() config.Balance { return pl.cfg }

func (pl *Player) SkillLevel(s Skill) int { return pl.Skills[s] }

// NegotiationBonus is the fractional price edge on both buying and selling.
func (pl *Player) NegotiationBonus() float64 {
	return float64(pl.Skills[SkillNegotiation]) * pl.cfg.NegotiationBonusPerLevel
}

// MarketingBonus is the fractional bonus on the final sale price only.
func (pl *Player) MarketingBonus() float64 {
	return float64(pl.Skills[SkillMarketing]) * pl.cfg.MarketingBonusPerLevel
}

// HandinessCostMultiplier scales renovation cost down with handiness level,
// never below the configured floor.
func (pl *Player) HandinessCostMultiplier() float64 {
	return pl.handinessMultiplier()
}

// HandinessSpeedMultiplier scales renovation time down with handiness level.
func (pl *Player) HandinessSpeedMultiplier() float64 {
	return pl.handinessMultiplier()
}

func (pl *Player) handinessMultiplier() float64 {
	m := 1.0 - float64(pl.Skills[SkillHandiness])*pl.cfg.HandinessStepPerLevel
	if m < pl.cfg.HandinessFloor {
		return pl.cfg.HandinessFloor
	}
	return m
}

// SkillUpgradeCost is exponential in the current level.
func (pl *Player) SkillUpgradeCost(s Skill) int {
	return int(math.Floor(float64(pl.cfg.SkillBaseCost) * math.Pow(pl.cfg.SkillCostFactor, float64(pl.Skills[s]))))
}

func (pl *Player) UpgradeSkill(s Skill) error {
	if pl.Skills[s] >= pl.cfg.MaxSkillLevel {
		return fault.InvalidOperationf("%s is already at maximum level %d", s, pl.cfg.MaxSkillLevel)
	}
	cost := pl.SkillUpgradeCost(s)
	if pl.Cash < cost {
		return fault.InsufficientFundsf("upgrading %s costs $%d, you have $%d", s, cost, pl.Cash)
	}
	pl.Cash -= cost
	pl.Skills[s]++
	return nil
}

func (pl *Player) TakeLoan(amount int) error {
	if amount <= 0 {
		return fault.Validationf("loan amount must be positive")
	}
	if pl.Loan+amount > pl.cfg.MaxLoan {
		return fault.InvalidOperationf("loan limit is $%d, current loan is $%d", pl.cfg.MaxLoan, pl.Loan)
	}
	pl.Loan += amount
	pl.Cash += amount
	return nil
}

// RepayLoan repays min(amount, outstanding loan). Repaying against a zero
// balance is a successful no-op.
func (pl *Player) RepayLoan(amount int) (int, error) {
	if amount <= 0 {
		return 0, fault.Validationf("repayment amount must be positive")
	}
	repayment := amount
	if repayment > pl.Loan {
		repayment = pl.Loan
	}
	if repayment > pl.Cash {
		return 0, fault.InsufficientFundsf("repaying $%d requires more than your $%d cash", repayment, pl.Cash)
	}
	pl.Loan -= repayment
	pl.Cash -= repayment
	return repayment, nil
}

func (pl *Player) HireContractor() error {
	if pl.HasContractor {
		return fault.InvalidOperationf("contractor is already hired")
	}
	pl.HasContractor = true
	return nil
}

func (pl *Player) FireContractor() error {
	if !pl.HasContractor {
		return fault.InvalidOperationf("no contractor is hired")
	}
	pl.HasContractor = false
	return nil
}

func (pl *Player) Owns(propertyID string) bool {
	_, ok := pl.Properties[propertyID]
	return ok
}

func (pl *Player) Property(propertyID string) (*property.Property, bool) {
	p, ok := pl.Properties[propertyID]
	return p, ok
}

func (pl *Player) AddProperty(p *property.Property) {
	pl.Properties[p.ID] = p
}

func (pl *Player) RemoveProperty(propertyID string) {
	delete(pl.Properties, propertyID)
}

// OwnedIDs returns owned property ids in sorted order so daily charges and
// reports are deterministic.
func (pl *Player) OwnedIDs() []string {
	ids := make([]string, 0, len(pl.Properties))
	for id := range pl.Properties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PortfolioValue is the summed current value of all owned properties.
func (pl *Player) PortfolioValue(m *market.Market, events *event.Engine) int {
	total := 0
	for _, id := range pl.OwnedIDs() {
		p := pl.Properties[id]
		total += p.Value(m.CurrentMultiplier(p.LocationID, events))
	}
	return total
}

// RenovationStart reports the charges applied when a renovation begins.
type RenovationStart struct {
	PropertyID   string  `json:"property_id"`
	UpgradeID    string  `json:"upgrade_id"`
	Cost         int     `json:"cost"`
	TimeRequired float64 `json:"time_required"`
}

// StartRenovation charges the scaled upgrade cost and puts the property into
// the renovating state. Every precondition is checked before anything
// mutates; a failed start leaves both cash and property untouched.
func (pl *Player) StartRenovation(p *property.Property, u refdata.Upgrade, events *event.Engine) (RenovationStart, error) {
	if !pl.Owns(p.ID) {
		return RenovationStart{}, fault.InvalidOperationf("property %s is not owned by you", p.ID)
	}

	costMod := events.CombinedModifier(p.LocationID, refdata.EffectUpgradeCost)
	cost := int(math.Floor(float64(u.Cost) * costMod * pl.HandinessCostMultiplier()))
	if pl.Cash < cost {
		return RenovationStart{}, fault.InsufficientFundsf("%q costs $%d, you have $%d", u.Name, cost, pl.Cash)
	}

	timeMod := events.CombinedModifier(p.LocationID, refdata.EffectRenovationTime)
	days := float64(u.TimeRequired) * timeMod
	if pl.HasContractor {
		days *= pl.cfg.ContractorSpeedMultiplier
	}
	days *= pl.HandinessSpeedMultiplier()

	// Stacked speedups can never shrink a job below the floor fraction of its
	// base time.
	if minDays := float64(u.TimeRequired) * pl.cfg.RenovationTimeFloor; days < minDays {
		days = minDays
	}

	if err := p.StartRenovation(u, days); err != nil {
		return RenovationStart{}, err
	}
	pl.Cash -= cost

	return RenovationStart{
		PropertyID:   p.ID,
		UpgradeID:    u.ID,
		Cost:         cost,
		TimeRequired: days,
	}, nil
}

// CompletedRenovation names an upgrade that finished during a daily update.
type CompletedRenovation struct {
	PropertyID string          `json:"property_id"`
	Upgrade    refdata.Upgrade `json:"upgrade"`
}

// DailyCosts reports one day's charges.
type DailyCosts struct {
	Interest  int                   `json:"interest"`
	Taxes     int                   `json:"taxes"`
	Wages     int                   `json:"wages"`
	Completed []CompletedRenovation `json:"completed,omitempty"`
}

// ApplyDailyCosts runs the fixed daily sequence: loan interest, property tax,
// contractor wages, then renovation progress. Every step runs even if cash
// goes negative partway through; bankruptcy is evaluated by the orchestrator
// afterwards.
func (pl *Player) ApplyDailyCosts(m *market.Market, events *event.Engine) DailyCosts {
	var costs DailyCosts

	if pl.Loan > 0 {
		interest := int(math.Floor(float64(pl.Loan) * pl.cfg.DailyInterestRate))
		if interest >= 1 {
			pl.Cash -= interest
			costs.Interest = interest
		}
	}

	for _, id := range pl.OwnedIDs() {
		p := pl.Properties[id]
		value := p.Value(m.CurrentMultiplier(p.LocationID, events))
		costs.Taxes += int(math.Floor(float64(value) * pl.cfg.DailyTaxRate))
	}
	pl.Cash -= costs.Taxes

	if pl.HasContractor {
		pl.Cash -= pl.cfg.ContractorDailyWage
		costs.Wages = pl.cfg.ContractorDailyWage
	}

	for _, id := range pl.OwnedIDs() {
		p := pl.Properties[id]
		if done, ok := p.AdvanceRenovation(1); ok {
			costs.Completed = append(costs.Completed, CompletedRenovation{PropertyID: p.ID, Upgrade: *done})
		}
	}

	return costs
}
