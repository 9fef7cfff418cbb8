// Package save owns the persisted save-state contract: capturing a session
// into a plain snapshot, restoring a session from one, and the JSON file
// store underneath. Restore builds a complete new session or fails without
// touching anything; it never leaves a half-loaded game behind.
package save

import (
	"houseflip/internal/config"
	"houseflip/internal/event"
	"houseflip/internal/fault"
	"houseflip/internal/game"
	"houseflip/internal/player"
	"houseflip/internal/property"
	"houseflip/internal/refdata"
)

// CurrentVersion is bumped whenever the snapshot shape changes.
const CurrentVersion = 1

type PropertyState struct {
	ID                      string   `json:"id"`
	TypeID                  string   `json:"type_id"`
	LocationID              string   `json:"location_id"`
	Condition               int      `json:"condition"`
	AppliedUpgradeIDs       []string `json:"applied_upgrade_ids"`
	OngoingUpgradeID        *string  `json:"ongoing_upgrade_id"`
	RenovationTimeRemaining float64  `json:"renovation_time_remaining"`
}

type PlayerState struct {
	Cash          int             `json:"cash"`
	LoanBalance   int             `json:"loan_balance"`
	Skills        map[string]int  `json:"skills"`
	HasContractor bool            `json:"has_contractor"`
	Properties    []PropertyState `json:"properties"`
}

type EventState struct {
	EventID       string `json:"event_id"`
	DaysRemaining int    `json:"days_remaining"`
}

type Snapshot struct {
	Version           int             `json:"version"`
	CurrentDay        int             `json:"current_day"`
	Player            PlayerState     `json:"player"`
	MarketListingPool []PropertyState `json:"market_listing_pool"`
	ActiveEvents      []EventState    `json:"active_events"`
	Outcome           string          `json:"outcome"`
}

// Capture freezes a session into a snapshot. Collections are emitted in
// sorted id order so capturing the same state twice yields identical bytes.
func Capture(s *game.State) Snapshot {
	snap := Snapshot{
		Version:    CurrentVersion,
		CurrentDay: s.Day,
		Outcome:    string(s.Outcome),
		Player: PlayerState{
			Cash:          s.Player.Cash,
			LoanBalance:   s.Player.Loan,
			Skills:        map[string]int{},
			HasContractor: s.Player.HasContractor,
			Properties:    []PropertyState{},
		},
		MarketListingPool: []PropertyState{},
		ActiveEvents:      []EventState{},
	}

	for _, sk := range player.AllSkills() {
		snap.Player.Skills[string(sk)] = s.Player.Skills[sk]
	}
	for _, id := range s.Player.OwnedIDs() {
		snap.Player.Properties = append(snap.Player.Properties, captureProperty(s.Player.Properties[id]))
	}
	for _, id := range s.ListingIDs() {
		snap.MarketListingPool = append(snap.MarketListingPool, captureProperty(s.Listings[id]))
	}
	for _, ev := range s.Events.Snapshot() {
		snap.ActiveEvents = append(snap.ActiveEvents, EventState{EventID: ev.EventID, DaysRemaining: ev.DaysRemaining})
	}
	return snap
}

func captureProperty(p *property.Property) PropertyState {
	ps := PropertyState{
		ID:                p.ID,
		TypeID:            p.Type.ID,
		LocationID:        p.LocationID,
		Condition:         p.Condition,
		AppliedUpgradeIDs: p.UpgradeIDs(),
	}
	if p.Renovation != nil {
		id := p.Renovation.Upgrade.ID
		ps.OngoingUpgradeID = &id
		ps.RenovationTimeRemaining = p.Renovation.TimeRemaining()
	}
	return ps
}

// Restore rebuilds a session from a snapshot, validating every reference
// against the catalogs. It either returns a fully-formed session or an error;
// the caller's existing session is never touched.
func Restore(snap Snapshot, cats *refdata.Catalogs, bal config.Balance, opts game.Options) (*game.State, error) {
	if snap.Version != CurrentVersion {
		return nil, fault.DataIntegrityf("unsupported save version %d", snap.Version)
	}
	if snap.CurrentDay < 1 {
		return nil, fault.DataIntegrityf("save has invalid day %d", snap.CurrentDay)
	}
	outcome, err := parseOutcome(snap.Outcome)
	if err != nil {
		return nil, err
	}

	opts.Catalogs = cats
	opts.Balance = bal
	opts.SkipInitialListings = true
	s, err := game.New(opts)
	if err != nil {
		return nil, err
	}

	s.Day = snap.CurrentDay
	s.Outcome = outcome

	s.Player.Cash = snap.Player.Cash
	if snap.Player.LoanBalance < 0 || snap.Player.LoanBalance > bal.MaxLoan {
		return nil, fault.DataIntegrityf("save loan balance %d is outside [0, %d]", snap.Player.LoanBalance, bal.MaxLoan)
	}
	s.Player.Loan = snap.Player.LoanBalance
	s.Player.HasContractor = snap.Player.HasContractor

	for name, level := range snap.Player.Skills {
		sk, err := player.ParseSkill(name)
		if err != nil {
			return nil, fault.DataIntegrityf("save references unknown skill %q", name)
		}
		if level < 0 || level > bal.MaxSkillLevel {
			return nil, fault.DataIntegrityf("save skill %s level %d is outside [0, %d]", name, level, bal.MaxSkillLevel)
		}
		s.Player.Skills[sk] = level
	}

	seen := map[string]bool{}
	for _, ps := range snap.Player.Properties {
		p, err := restoreProperty(ps, cats, seen)
		if err != nil {
			return nil, err
		}
		s.Player.AddProperty(p)
	}
	for _, ps := range snap.MarketListingPool {
		p, err := restoreProperty(ps, cats, seen)
		if err != nil {
			return nil, err
		}
		s.Listings[p.ID] = p
	}

	events := make([]event.State, 0, len(snap.ActiveEvents))
	for _, es := range snap.ActiveEvents {
		events = append(events, event.State{EventID: es.EventID, DaysRemaining: es.DaysRemaining})
	}
	if err := s.Events.Restore(events); err != nil {
		return nil, err
	}

	return s, nil
}

func parseOutcome(raw string) (game.Outcome, error) {
	switch game.Outcome(raw) {
	case game.OutcomeInProgress, game.OutcomeWon, game.OutcomeLost:
		return game.Outcome(raw), nil
	}
	return "", fault.DataIntegrityf("save has unknown outcome %q", raw)
}

func restoreProperty(ps PropertyState, cats *refdata.Catalogs, seen map[string]bool) (*property.Property, error) {
	if ps.ID == "" {
		return nil, fault.DataIntegrityf("save contains a property without an id")
	}
	if seen[ps.ID] {
		return nil, fault.DataIntegrityf("save contains duplicate property id %q", ps.ID)
	}
	seen[ps.ID] = true

	t, ok := cats.PropertyType(ps.TypeID)
	if !ok {
		return nil, fault.DataIntegrityf("property %s references unknown type %q", ps.ID, ps.TypeID)
	}
	if _, ok := cats.Location(ps.LocationID); !ok {
		return nil, fault.DataIntegrityf("property %s references unknown location %q", ps.ID, ps.LocationID)
	}
	if ps.Condition < 0 || ps.Condition > 100 {
		return nil, fault.DataIntegrityf("property %s condition %d is outside [0, 100]", ps.ID, ps.Condition)
	}

	p := property.New(ps.ID, t, ps.LocationID, ps.Condition)
	for _, uid := range ps.AppliedUpgradeIDs {
		u, ok := cats.Upgrade(uid)
		if !ok {
			return nil, fault.DataIntegrityf("property %s references unknown upgrade %q", ps.ID, uid)
		}
		if p.HasUpgrade(uid) {
			return nil, fault.DataIntegrityf("property %s lists upgrade %q twice", ps.ID, uid)
		}
		p.Upgrades = append(p.Upgrades, u)
	}
	if len(p.Upgrades) > t.MaxUpgrades {
		return nil, fault.DataIntegrityf("property %s has %d upgrades, type %s allows %d", ps.ID, len(p.Upgrades), t.ID, t.MaxUpgrades)
	}

	if ps.OngoingUpgradeID != nil {
		u, ok := cats.Upgrade(*ps.OngoingUpgradeID)
		if !ok {
			return nil, fault.DataIntegrityf("property %s renovation references unknown upgrade %q", ps.ID, *ps.OngoingUpgradeID)
		}
		if ps.RenovationTimeRemaining <= 0 {
			return nil, fault.DataIntegrityf("property %s renovation has non-positive time remaining", ps.ID)
		}
		if err := p.StartRenovation(u, ps.RenovationTimeRemaining); err != nil {
			return nil, fault.DataIntegrityf("property %s renovation is inconsistent: %v", ps.ID, err)
		}
	}

	return p, nil
}
