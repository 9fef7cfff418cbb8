// Package game orchestrates the simulation: it owns the market, the event
// engine, the player and the listing pool, advances simulated days, and
// evaluates the session outcome.
package game

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"houseflip/internal/config"
	"houseflip/internal/event"
	"houseflip/internal/fault"
	"houseflip/internal/ledger"
	"houseflip/internal/market"
	"houseflip/internal/player"
	"houseflip/internal/property"
	"houseflip/internal/refdata"
)

type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWon        Outcome = "won"
	OutcomeLost       Outcome = "lost"
)

// State is one game session. All mutation is synchronous; callers running it
// behind a server must serialize access themselves.
type State struct {
	Catalogs *refdata.Catalogs
	Balance  config.Balance
	Market   *market.Market
	Events   *event.Engine
	Player   *player.Player
	Listings map[string]*property.Property
	Day      int
	Outcome  Outcome

	Clock  Clock
	Ledger ledger.Recorder

	rng *rand.Rand
}

type Options struct {
	Catalogs *refdata.Catalogs
	Balance  config.Balance
	// Rand is the session's random source. Leave nil for a time-seeded one;
	// tests inject a seeded source for determinism.
	Rand   *rand.Rand
	Clock  Clock
	Ledger ledger.Recorder
	// SkipInitialListings leaves the pool empty (used when restoring a save).
	SkipInitialListings bool
}

func New(opts Options) (*State, error) {
	if opts.Catalogs == nil {
		return nil, fault.DataIntegrityf("reference catalogs are required")
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Clock.Now().UnixNano()))
	}

	s := &State{
		Catalogs: opts.Catalogs,
		Balance:  opts.Balance,
		Market:   market.New(opts.Catalogs.Locations),
		Events:   event.NewEngine(opts.Catalogs, opts.Balance.MaxActiveEvents, opts.Balance.DailyEventChance, opts.Rand),
		Player:   player.New(opts.Balance),
		Listings: map[string]*property.Property{},
		Day:      1,
		Outcome:  OutcomeInProgress,
		Clock:    opts.Clock,
		Ledger:   opts.Ledger,
		rng:      opts.Rand,
	}

	if !opts.SkipInitialListings {
		for i := 0; i < opts.Balance.InitialListings; i++ {
			s.addListing()
		}
	}
	return s, nil
}

// addListing generates a random property and puts it in the pool.
func (s *State) addListing() *property.Property {
	typeIDs := s.Catalogs.PropertyTypeIDs()
	locIDs := s.Catalogs.LocationIDs()
	if len(typeIDs) == 0 || len(locIDs) == 0 {
		return nil
	}

	t := s.Catalogs.PropertyTypes[typeIDs[s.rng.Intn(len(typeIDs))]]
	loc := locIDs[s.rng.Intn(len(locIDs))]

	span := s.Balance.MaxInitialCondition - s.Balance.MinInitialCondition
	condition := s.Balance.MinInitialCondition
	if span > 0 {
		condition += s.rng.Intn(span + 1)
	}

	p := property.New(newPropertyID(), t, loc, condition)
	s.Listings[p.ID] = p
	return p
}

func newPropertyID() string {
	return "prop_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// PropertyByID finds a property owned by the player or listed on the market.
func (s *State) PropertyByID(id string) (p *property.Property, owned bool, ok bool) {
	if p, ok := s.Player.Property(id); ok {
		return p, true, true
	}
	if p, ok := s.Listings[id]; ok {
		return p, false, true
	}
	return nil, false, false
}

// PropertyValue is the current market value of any known property.
func (s *State) PropertyValue(p *property.Property) int {
	return p.Value(s.Market.CurrentMultiplier(p.LocationID, s.Events))
}

// NetWorth is cash plus portfolio value minus the outstanding loan.
func (s *State) NetWorth() int {
	return s.Player.Cash + s.Player.PortfolioValue(s.Market, s.Events) - s.Player.Loan
}

// ListingIDs returns the pool ids in sorted order.
func (s *State) ListingIDs() []string {
	ids := make([]string, 0, len(s.Listings))
	for id := range s.Listings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *State) inProgress() error {
	if s.Outcome != OutcomeInProgress {
		return fault.InvalidOperationf("game is over (%s)", s.Outcome)
	}
	return nil
}

func (s *State) recordTx(kind ledger.TransactionKind, propertyID string, amount int, detail string) {
	if s.Ledger == nil {
		return
	}
	_ = s.Ledger.RecordTransaction(ledger.TransactionRecord{
		Day:        s.Day,
		Kind:       kind,
		PropertyID: propertyID,
		Amount:     amount,
		Detail:     detail,
		RecordedAt: s.Clock.Now(),
	})
}
