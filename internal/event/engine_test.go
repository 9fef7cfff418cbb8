package event

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseflip/internal/fault"
	"houseflip/internal/refdata"
)

func testCatalogs() *refdata.Catalogs {
	return &refdata.Catalogs{
		Locations: map[string]refdata.Location{
			"downtown": {ID: "downtown", Name: "Downtown", BaseMultiplier: 1.2},
			"suburbs":  {ID: "suburbs", Name: "Suburbs", BaseMultiplier: 1.0},
		},
		Events: map[string]refdata.MarketEvent{
			"housing_boom": {
				ID: "housing_boom", Name: "Housing Boom", DurationDays: 5,
				Effects: []refdata.Effect{{Kind: refdata.EffectValue, Scope: refdata.ScopeAll, Amount: 1.1}},
			},
			"downtown_development": {
				ID: "downtown_development", Name: "Downtown Development", DurationDays: 3,
				Effects: []refdata.Effect{{Kind: refdata.EffectValue, Scope: "downtown", Amount: 1.2}},
			},
			"material_shortage": {
				ID: "material_shortage", Name: "Material Shortage", DurationDays: 4,
				Effects: []refdata.Effect{
					{Kind: refdata.EffectUpgradeCost, Scope: refdata.ScopeAll, Amount: 1.5},
					{Kind: refdata.EffectRenovationTime, Scope: refdata.ScopeAll, Amount: 1.25},
				},
			},
		},
	}
}

func TestCombinedModifierStacks(t *testing.T) {
	e := NewEngine(testCatalogs(), 2, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, e.Restore([]State{
		{EventID: "housing_boom", DaysRemaining: 5},
		{EventID: "downtown_development", DaysRemaining: 3},
	}))

	// the global boom stacks multiplicatively with the downtown-only event
	assert.InDelta(t, 1.32, e.CombinedModifier("downtown", refdata.EffectValue), 1e-9)
	assert.InDelta(t, 1.1, e.CombinedModifier("suburbs", refdata.EffectValue), 1e-9)

	// no matching effects means a neutral 1.0
	assert.InDelta(t, 1.0, e.CombinedModifier("downtown", refdata.EffectUpgradeCost), 1e-9)
}

func TestCombinedModifierNonValueKinds(t *testing.T) {
	e := NewEngine(testCatalogs(), 1, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, e.Restore([]State{{EventID: "material_shortage", DaysRemaining: 4}}))

	assert.InDelta(t, 1.5, e.CombinedModifier("suburbs", refdata.EffectUpgradeCost), 1e-9)
	assert.InDelta(t, 1.25, e.CombinedModifier("suburbs", refdata.EffectRenovationTime), 1e-9)
	assert.InDelta(t, 1.0, e.CombinedModifier("suburbs", refdata.EffectValue), 1e-9)
}

func TestUpdateExpiresSpentEvents(t *testing.T) {
	e := NewEngine(testCatalogs(), 1, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, e.Restore([]State{{EventID: "downtown_development", DaysRemaining: 1}}))

	res := e.Update(1)
	assert.Equal(t, []string{"downtown_development"}, res.Expired)
	assert.Empty(t, e.Active())
	assert.InDelta(t, 1.0, e.CombinedModifier("downtown", refdata.EffectValue), 1e-9)
}

func TestUpdateStartsEventWhenTriggered(t *testing.T) {
	// chance 1.0 makes the daily roll always succeed
	e := NewEngine(testCatalogs(), 1, 1.0, rand.New(rand.NewSource(42)))

	res := e.Update(1)
	require.Len(t, res.Started, 1)
	require.Len(t, e.Active(), 1)
	assert.Equal(t, res.Started[0], e.Active()[0].Event.ID)
	assert.Equal(t, e.Active()[0].Event.DurationDays, e.Active()[0].DaysRemaining)
}

func TestUpdateHonorsConcurrencyCap(t *testing.T) {
	e := NewEngine(testCatalogs(), 1, 1.0, rand.New(rand.NewSource(7)))
	require.Len(t, e.Update(1).Started, 1)

	// at the cap, nothing new starts even with a guaranteed roll
	res := e.Update(1)
	assert.Empty(t, res.Started)
	assert.Len(t, e.Active(), 1)
}

func TestUpdateZeroChanceNeverStarts(t *testing.T) {
	e := NewEngine(testCatalogs(), 2, 0, rand.New(rand.NewSource(3)))
	for i := 0; i < 50; i++ {
		assert.Empty(t, e.Update(1).Started)
	}
}

func TestUpdateNeverStartsDuplicate(t *testing.T) {
	e := NewEngine(testCatalogs(), 3, 1.0, rand.New(rand.NewSource(9)))
	started := map[string]bool{}
	for i := 0; i < 3; i++ {
		for _, id := range e.Update(1).Started {
			assert.False(t, started[id], "event %s started while already active", id)
			started[id] = true
		}
	}
	// every definition is active exactly once
	assert.Len(t, e.Active(), 3)
}

func TestUpdateZeroDaysIsNoop(t *testing.T) {
	e := NewEngine(testCatalogs(), 1, 1.0, rand.New(rand.NewSource(5)))
	res := e.Update(0)
	assert.Empty(t, res.Started)
	assert.Empty(t, res.Expired)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	e := NewEngine(testCatalogs(), 2, 0, rand.New(rand.NewSource(1)))
	states := []State{
		{EventID: "housing_boom", DaysRemaining: 2},
		{EventID: "material_shortage", DaysRemaining: 4},
	}
	require.NoError(t, e.Restore(states))
	assert.Equal(t, states, e.Snapshot())
}

func TestRestoreRejectsBadState(t *testing.T) {
	e := NewEngine(testCatalogs(), 2, 0, rand.New(rand.NewSource(1)))

	err := e.Restore([]State{{EventID: "alien_invasion", DaysRemaining: 2}})
	assert.Equal(t, fault.DataIntegrity, fault.KindOf(err))

	err = e.Restore([]State{{EventID: "housing_boom", DaysRemaining: 0}})
	assert.Equal(t, fault.DataIntegrity, fault.KindOf(err))

	// a failed restore leaves the engine unchanged
	require.NoError(t, e.Restore([]State{{EventID: "housing_boom", DaysRemaining: 3}}))
	require.Error(t, e.Restore([]State{{EventID: "nope", DaysRemaining: 1}}))
	assert.Len(t, e.Active(), 1)
}
