package game

import (
	"fmt"
	"math"

	"houseflip/internal/fault"
	"houseflip/internal/ledger"
	"houseflip/internal/player"
)

// TradeResult reports a completed buy or sell.
type TradeResult struct {
	PropertyID string `json:"property_id"`
	Price      int    `json:"price"`
	BaseValue  int    `json:"base_value"`
	Cash       int    `json:"cash"`
}

// Buy purchases a listed property at its current value discounted by the
// player's negotiation bonus, and moves it from the pool into the portfolio.
func (s *State) Buy(propertyID string) (TradeResult, error) {
	if err := s.inProgress(); err != nil {
		return TradeResult{}, err
	}
	p, ok := s.Listings[propertyID]
	if !ok {
		return TradeResult{}, fault.InvalidOperationf("property %s is not on the market", propertyID)
	}

	value := s.PropertyValue(p)
	price := int(math.Floor(float64(value) * (1.0 - s.Player.NegotiationBonus())))
	if s.Player.Cash < price {
		return TradeResult{}, fault.InsufficientFundsf("buying %s costs $%d, you have $%d", propertyID, price, s.Player.Cash)
	}

	s.Player.Cash -= price
	delete(s.Listings, propertyID)
	s.Player.AddProperty(p)

	s.recordTx(ledger.TxBuy, propertyID, -price, p.Type.Name)
	return TradeResult{PropertyID: propertyID, Price: price, BaseValue: value, Cash: s.Player.Cash}, nil
}

// Sell sells an owned, idle property at its current value raised by the
// negotiation and marketing bonuses. Sold properties leave the simulation;
// they do not return to the listing pool.
func (s *State) Sell(propertyID string) (TradeResult, error) {
	if err := s.inProgress(); err != nil {
		return TradeResult{}, err
	}
	p, ok := s.Player.Property(propertyID)
	if !ok {
		return TradeResult{}, fault.InvalidOperationf("property %s is not owned by you", propertyID)
	}
	if p.Renovating() {
		return TradeResult{}, fault.InvalidOperationf("property %s cannot be sold during a renovation", propertyID)
	}

	value := s.PropertyValue(p)
	price := int(math.Floor(float64(value) * (1.0 + s.Player.NegotiationBonus() + s.Player.MarketingBonus())))

	s.Player.Cash += price
	s.Player.RemoveProperty(propertyID)

	s.recordTx(ledger.TxSell, propertyID, price, p.Type.Name)
	return TradeResult{PropertyID: propertyID, Price: price, BaseValue: value, Cash: s.Player.Cash}, nil
}

// StartRenovation begins applying an upgrade to an owned property. The cost
// is charged up front; event modifiers, the contractor and handiness all
// scale cost and duration.
func (s *State) StartRenovation(propertyID, upgradeID string) (player.RenovationStart, error) {
	if err := s.inProgress(); err != nil {
		return player.RenovationStart{}, err
	}
	p, ok := s.Player.Property(propertyID)
	if !ok {
		return player.RenovationStart{}, fault.InvalidOperationf("property %s is not owned by you", propertyID)
	}
	u, ok := s.Catalogs.Upgrade(upgradeID)
	if !ok {
		return player.RenovationStart{}, fault.Validationf("unknown upgrade %q", upgradeID)
	}

	start, err := s.Player.StartRenovation(p, u, s.Events)
	if err != nil {
		return player.RenovationStart{}, err
	}

	s.recordTx(ledger.TxRenovationStart, propertyID, -start.Cost, u.Name)
	return start, nil
}

func (s *State) TakeLoan(amount int) error {
	if err := s.inProgress(); err != nil {
		return err
	}
	if err := s.Player.TakeLoan(amount); err != nil {
		return err
	}
	s.recordTx(ledger.TxLoanTaken, "", amount, "")
	return nil
}

func (s *State) RepayLoan(amount int) (int, error) {
	if err := s.inProgress(); err != nil {
		return 0, err
	}
	repaid, err := s.Player.RepayLoan(amount)
	if err != nil {
		return 0, err
	}
	if repaid > 0 {
		s.recordTx(ledger.TxLoanRepaid, "", -repaid, "")
	}
	return repaid, nil
}

// UpgradeSkill raises the named skill one level, charging the exponential
// upgrade cost.
func (s *State) UpgradeSkill(name string) (player.Skill, int, error) {
	if err := s.inProgress(); err != nil {
		return "", 0, err
	}
	skill, err := player.ParseSkill(name)
	if err != nil {
		return "", 0, err
	}
	cost := s.Player.SkillUpgradeCost(skill)
	if err := s.Player.UpgradeSkill(skill); err != nil {
		return "", 0, err
	}
	s.recordTx(ledger.TxSkillUpgrade, "", -cost, fmt.Sprintf("%s -> level %d", skill, s.Player.SkillLevel(skill)))
	return skill, cost, nil
}

func (s *State) HireContractor() error {
	if err := s.inProgress(); err != nil {
		return err
	}
	return s.Player.HireContractor()
}

func (s *State) FireContractor() error {
	if err := s.inProgress(); err != nil {
		return err
	}
	return s.Player.FireContractor()
}
