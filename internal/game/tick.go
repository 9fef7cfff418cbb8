package game

import (
	"houseflip/internal/event"
	"houseflip/internal/ledger"
	"houseflip/internal/player"
)

// DayReport summarizes everything one advanced day did to the session.
type DayReport struct {
	Day         int                `json:"day"`
	Costs       player.DailyCosts  `json:"costs"`
	Events      event.UpdateResult `json:"events"`
	NewListings []string           `json:"new_listings,omitempty"`
	Cash        int                `json:"cash"`
	Loan        int                `json:"loan"`
	NetWorth    int                `json:"net_worth"`
	Outcome     Outcome            `json:"outcome"`
}

// AdvanceDay advances the simulation by one day: daily costs (interest, tax,
// wages, renovation progress), then the event engine, then listing-pool
// regeneration, then the win/loss check. A finished game is a no-op.
func (s *State) AdvanceDay() DayReport {
	if s.Outcome != OutcomeInProgress {
		return DayReport{
			Day: s.Day, Cash: s.Player.Cash, Loan: s.Player.Loan,
			NetWorth: s.NetWorth(), Outcome: s.Outcome,
		}
	}

	s.Day++

	costs := s.Player.ApplyDailyCosts(s.Market, s.Events)
	evres := s.Events.Update(1)

	var newListings []string
	if len(s.Listings) < s.Balance.ListingCap && s.rng.Float64() < s.Balance.DailyListingChance {
		if p := s.addListing(); p != nil {
			newListings = append(newListings, p.ID)
		}
	}

	s.evaluateOutcome()

	report := DayReport{
		Day:         s.Day,
		Costs:       costs,
		Events:      evres,
		NewListings: newListings,
		Cash:        s.Player.Cash,
		Loan:        s.Player.Loan,
		NetWorth:    s.NetWorth(),
		Outcome:     s.Outcome,
	}

	if s.Ledger != nil {
		_ = s.Ledger.RecordDay(ledger.DayRecord{
			Day:          s.Day,
			Cash:         s.Player.Cash,
			Loan:         s.Player.Loan,
			InterestPaid: costs.Interest,
			TaxesPaid:    costs.Taxes,
			WagesPaid:    costs.Wages,
			NetWorth:     report.NetWorth,
			RecordedAt:   s.Clock.Now(),
		})
	}

	return report
}

// evaluateOutcome sets the terminal outcome. The win check runs first and an
// outcome, once set, never reverts.
func (s *State) evaluateOutcome() {
	if s.Outcome != OutcomeInProgress {
		return
	}
	if s.Player.Cash >= s.Balance.WinThreshold {
		s.Outcome = OutcomeWon
		return
	}
	if s.Player.Cash < 0 && len(s.Player.Properties) == 0 {
		s.Outcome = OutcomeLost
	}
}
