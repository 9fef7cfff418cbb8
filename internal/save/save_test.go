package save

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseflip/internal/config"
	"houseflip/internal/event"
	"houseflip/internal/fault"
	"houseflip/internal/game"
	"houseflip/internal/refdata"
)

func testCatalogs() *refdata.Catalogs {
	return &refdata.Catalogs{
		PropertyTypes: map[string]refdata.PropertyType{
			"starter_home": {ID: "starter_home", Name: "Starter Home", BaseValue: 80000, MaxUpgrades: 2},
		},
		Locations: map[string]refdata.Location{
			"suburbs": {ID: "suburbs", Name: "Suburbs", BaseMultiplier: 1.0},
		},
		Upgrades: map[string]refdata.Upgrade{
			"fresh_paint": {ID: "fresh_paint", Name: "Fresh Paint", Cost: 2000, ValueIncrease: 4000, ConditionIncrease: 10, TimeRequired: 2},
			"new_roof":    {ID: "new_roof", Name: "New Roof", Cost: 9000, ValueIncrease: 15000, ConditionIncrease: 20, TimeRequired: 4},
		},
		Events: map[string]refdata.MarketEvent{
			"housing_boom": {
				ID: "housing_boom", Name: "Housing Boom", DurationDays: 5,
				Effects: []refdata.Effect{{Kind: refdata.EffectValue, Scope: refdata.ScopeAll, Amount: 1.1}},
			},
		},
	}
}

func testBalance() config.Balance {
	bal := config.Default()
	bal.DailyEventChance = 0
	bal.DailyListingChance = 0
	bal.InitialListings = 2
	bal.MinInitialCondition = 50
	bal.MaxInitialCondition = 50
	return bal
}

func newTestState(t *testing.T) *game.State {
	t.Helper()
	s, err := game.New(game.Options{
		Catalogs: testCatalogs(),
		Balance:  testBalance(),
		Rand:     rand.New(rand.NewSource(1)),
		Clock:    game.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	return s
}

func playedState(t *testing.T) *game.State {
	t.Helper()
	s := newTestState(t)
	s.Player.Cash = 150000

	require.NoError(t, s.TakeLoan(20000))
	id := s.ListingIDs()[0]
	_, err := s.Buy(id)
	require.NoError(t, err)
	_, err = s.StartRenovation(id, "new_roof")
	require.NoError(t, err)
	require.NoError(t, s.Events.Restore([]event.State{{EventID: "housing_boom", DaysRemaining: 3}}))
	s.Player.Skills["handiness"] = 2
	require.NoError(t, s.Player.HireContractor())
	s.Day = 14
	return s
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	s := playedState(t)
	snap := Capture(s)

	assert.Equal(t, CurrentVersion, snap.Version)
	assert.Equal(t, 14, snap.CurrentDay)
	require.Len(t, snap.Player.Properties, 1)
	require.NotNil(t, snap.Player.Properties[0].OngoingUpgradeID)
	assert.Equal(t, "new_roof", *snap.Player.Properties[0].OngoingUpgradeID)
	require.Len(t, snap.ActiveEvents, 1)

	restored, err := Restore(snap, testCatalogs(), testBalance(), game.Options{
		Rand:  rand.New(rand.NewSource(2)),
		Clock: game.NewFakeClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	assert.Equal(t, s.Day, restored.Day)
	assert.Equal(t, s.Outcome, restored.Outcome)
	assert.Equal(t, s.Player.Cash, restored.Player.Cash)
	assert.Equal(t, s.Player.Loan, restored.Player.Loan)
	assert.Equal(t, s.Player.HasContractor, restored.Player.HasContractor)
	assert.Equal(t, s.Player.Skills, restored.Player.Skills)
	assert.Equal(t, s.Player.OwnedIDs(), restored.Player.OwnedIDs())
	assert.Equal(t, s.ListingIDs(), restored.ListingIDs())

	// capturing the restored session yields the identical snapshot
	assert.Equal(t, snap, Capture(restored))
}

func TestRestoreRenovationRemainingTime(t *testing.T) {
	s := playedState(t)
	id := s.Player.OwnedIDs()[0]

	// half a day of progress before saving
	s.Player.Properties[id].AdvanceRenovation(0.5)
	remaining := s.Player.Properties[id].Renovation.TimeRemaining()

	restored, err := Restore(Capture(s), testCatalogs(), testBalance(), game.Options{})
	require.NoError(t, err)

	ren := restored.Player.Properties[id].Renovation
	require.NotNil(t, ren)
	assert.InDelta(t, remaining, ren.TimeRequired, 1e-9)
	assert.InDelta(t, 0.0, ren.TimeElapsed, 1e-9)
	assert.InDelta(t, remaining, ren.TimeRemaining(), 1e-9)
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	cats := testCatalogs()
	bal := testBalance()

	base := func() Snapshot { return Capture(playedState(t)) }

	cases := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"unsupported version", func(sn *Snapshot) { sn.Version = 99 }},
		{"invalid day", func(sn *Snapshot) { sn.CurrentDay = 0 }},
		{"unknown outcome", func(sn *Snapshot) { sn.Outcome = "rage_quit" }},
		{"loan over cap", func(sn *Snapshot) { sn.Player.LoanBalance = bal.MaxLoan + 1 }},
		{"negative loan", func(sn *Snapshot) { sn.Player.LoanBalance = -1 }},
		{"unknown skill", func(sn *Snapshot) { sn.Player.Skills["bribery"] = 1 }},
		{"skill over cap", func(sn *Snapshot) { sn.Player.Skills["handiness"] = bal.MaxSkillLevel + 1 }},
		{"unknown property type", func(sn *Snapshot) { sn.Player.Properties[0].TypeID = "castle" }},
		{"unknown location", func(sn *Snapshot) { sn.Player.Properties[0].LocationID = "atlantis" }},
		{"condition out of range", func(sn *Snapshot) { sn.Player.Properties[0].Condition = 101 }},
		{"missing property id", func(sn *Snapshot) { sn.Player.Properties[0].ID = "" }},
		{"duplicate property id", func(sn *Snapshot) { sn.MarketListingPool[0].ID = sn.Player.Properties[0].ID }},
		{"unknown applied upgrade", func(sn *Snapshot) { sn.Player.Properties[0].AppliedUpgradeIDs = []string{"helipad"} }},
		{"unknown ongoing upgrade", func(sn *Snapshot) { id := "helipad"; sn.Player.Properties[0].OngoingUpgradeID = &id }},
		{"non-positive renovation time", func(sn *Snapshot) { sn.Player.Properties[0].RenovationTimeRemaining = 0 }},
		{"unknown active event", func(sn *Snapshot) { sn.ActiveEvents[0].EventID = "alien_invasion" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := base()
			tc.mutate(&snap)
			_, err := Restore(snap, cats, bal, game.Options{})
			require.Error(t, err)
			assert.Equal(t, fault.DataIntegrity, fault.KindOf(err))
		})
	}
}

func TestRestoreRejectsTooManyUpgrades(t *testing.T) {
	s := newTestState(t)
	snap := Capture(s)
	snap.MarketListingPool[0].AppliedUpgradeIDs = []string{"fresh_paint", "new_roof"}
	snap.MarketListingPool[0].OngoingUpgradeID = nil

	// two applied upgrades is the type cap, still fine
	_, err := Restore(snap, testCatalogs(), testBalance(), game.Options{})
	require.NoError(t, err)

	snap.MarketListingPool[0].AppliedUpgradeIDs = []string{"fresh_paint", "fresh_paint"}
	_, err = Restore(snap, testCatalogs(), testBalance(), game.Options{})
	assert.Equal(t, fault.DataIntegrity, fault.KindOf(err))
}

func TestFileStoreSaveLoadList(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	snap := Capture(playedState(t))
	require.NoError(t, store.Save("slot_1", snap))
	require.NoError(t, store.Save("", snap)) // defaults to savegame

	loaded, err := store.Load("slot_1")
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"savegame", "slot_1"}, names)
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = store.Save("../escape", Snapshot{})
	assert.Equal(t, fault.Validation, fault.KindOf(err))

	_, err = store.Load("slot one")
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestFileStoreMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Load("nothing_here")
	assert.Equal(t, fault.DataIntegrity, fault.KindOf(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	_, err = store.Load("broken")
	assert.Equal(t, fault.DataIntegrity, fault.KindOf(err))
}
