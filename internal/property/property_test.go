package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseflip/internal/fault"
	"houseflip/internal/refdata"
)

var starterHome = refdata.PropertyType{ID: "starter_home", Name: "Starter Home", BaseValue: 80000, MaxUpgrades: 2}

var freshPaint = refdata.Upgrade{ID: "fresh_paint", Name: "Fresh Paint", Cost: 2000, ValueIncrease: 4000, ConditionIncrease: 10, TimeRequired: 2}
var newRoof = refdata.Upgrade{ID: "new_roof", Name: "New Roof", Cost: 9000, ValueIncrease: 15000, ConditionIncrease: 20, TimeRequired: 5}
var kitchen = refdata.Upgrade{ID: "kitchen_remodel", Name: "Kitchen Remodel", Cost: 18000, ValueIncrease: 30000, ConditionIncrease: 25, TimeRequired: 8}

func TestValue(t *testing.T) {
	// condition 50 maps to a 0.75 multiplier
	p := New("p1", starterHome, "suburbs", 50)
	assert.Equal(t, 60000, p.Value(1.0))

	// location multiplier scales the base, upgrades are additive on top
	assert.Equal(t, 72000, p.Value(1.2))
	p.Upgrades = append(p.Upgrades, freshPaint)
	assert.Equal(t, 76000, p.Value(1.2))
}

func TestValueConditionBounds(t *testing.T) {
	worst := New("p1", starterHome, "rural", 0)
	best := New("p2", starterHome, "rural", 100)
	assert.Equal(t, 40000, worst.Value(1.0))
	assert.Equal(t, 80000, best.Value(1.0))

	// constructor clamps out-of-range conditions
	assert.Equal(t, 0, New("p3", starterHome, "rural", -5).Condition)
	assert.Equal(t, 100, New("p4", starterHome, "rural", 240).Condition)
}

func TestValueMonotonicInCondition(t *testing.T) {
	prev := -1
	for c := 0; c <= 100; c += 5 {
		v := New("p", starterHome, "suburbs", c).Value(1.0)
		require.Greater(t, v, prev, "condition %d", c)
		prev = v
	}
}

func TestValueNeverNegative(t *testing.T) {
	p := New("p1", starterHome, "suburbs", 0)
	assert.Equal(t, 0, p.Value(-1.0))
}

func TestStartRenovationGuards(t *testing.T) {
	p := New("p1", starterHome, "suburbs", 50)

	require.NoError(t, p.StartRenovation(freshPaint, 2))
	assert.True(t, p.Renovating())

	// one renovation at a time
	err := p.StartRenovation(newRoof, 5)
	assert.Equal(t, fault.InvalidOperation, fault.KindOf(err))

	_, done := p.AdvanceRenovation(2)
	require.True(t, done)

	// duplicate upgrade
	err = p.StartRenovation(freshPaint, 2)
	assert.Equal(t, fault.InvalidOperation, fault.KindOf(err))

	require.NoError(t, p.StartRenovation(newRoof, 5))
	_, done = p.AdvanceRenovation(5)
	require.True(t, done)

	// type cap reached
	err = p.StartRenovation(kitchen, 8)
	assert.Equal(t, fault.InvalidOperation, fault.KindOf(err))
}

func TestAdvanceRenovation(t *testing.T) {
	p := New("p1", starterHome, "suburbs", 50)
	require.NoError(t, p.StartRenovation(newRoof, 4))

	done, ok := p.AdvanceRenovation(1)
	assert.False(t, ok)
	assert.Nil(t, done)
	assert.InDelta(t, 3.0, p.Renovation.TimeRemaining(), 1e-9)

	done, ok = p.AdvanceRenovation(3)
	require.True(t, ok)
	assert.Equal(t, "new_roof", done.ID)
	assert.False(t, p.Renovating())
	assert.Equal(t, 70, p.Condition)
	assert.Equal(t, []string{"new_roof"}, p.UpgradeIDs())
}

func TestAdvanceRenovationClampsCondition(t *testing.T) {
	p := New("p1", starterHome, "suburbs", 95)
	require.NoError(t, p.StartRenovation(newRoof, 1))
	_, ok := p.AdvanceRenovation(1)
	require.True(t, ok)
	assert.Equal(t, 100, p.Condition)
}

func TestAdvanceRenovationIdleIsNoop(t *testing.T) {
	p := New("p1", starterHome, "suburbs", 50)
	done, ok := p.AdvanceRenovation(1)
	assert.False(t, ok)
	assert.Nil(t, done)
}
