// Package property models a single real-estate asset: its condition, the
// upgrades applied to it, and the one renovation that may be in progress.
package property

import (
	"math"

	"houseflip/internal/fault"
	"houseflip/internal/refdata"
)

// Renovation tracks the single upgrade currently being applied.
type Renovation struct {
	Upgrade      refdata.Upgrade `json:"upgrade"`
	TimeRequired float64         `json:"time_required"`
	TimeElapsed  float64         `json:"time_elapsed"`
}

func (r Renovation) TimeRemaining() float64 {
	left := r.TimeRequired - r.TimeElapsed
	if left < 0 {
		return 0
	}
	return left
}

type Property struct {
	ID         string               `json:"id"`
	Type       refdata.PropertyType `json:"type"`
	LocationID string               `json:"location_id"`
	Condition  int                  `json:"condition"` // 0..100
	Upgrades   []refdata.Upgrade    `json:"upgrades"`  // applied, in application order
	Renovation *Renovation          `json:"renovation,omitempty"`
}

func New(id string, t refdata.PropertyType, locationID string, condition int) *Property {
	return &Property{
		ID:         id,
		Type:       t,
		LocationID: locationID,
		Condition:  clampCondition(condition),
	}
}

func (p *Property) Renovating() bool { return p.Renovation != nil }

func (p *Property) HasUpgrade(upgradeID string) bool {
	for _, u := range p.Upgrades {
		if u.ID == upgradeID {
			return true
		}
	}
	return false
}

func (p *Property) UpgradeIDs() []string {
	ids := make([]string, 0, len(p.Upgrades))
	for _, u := range p.Upgrades {
		ids = append(ids, u.ID)
	}
	return ids
}

// Value computes the property's current market value given the fully composed
// location multiplier (base location x active event modifiers). Upgrade value
// is additive on top of the scaled base. Never negative.
func (p *Property) Value(locationMultiplier float64) int {
	base := float64(p.Type.BaseValue)
	v := base * conditionMultiplier(p.Condition) * locationMultiplier

	for _, u := range p.Upgrades {
		v += float64(u.ValueIncrease)
	}

	if v < 0 {
		return 0
	}
	return int(math.Floor(v))
}

// conditionMultiplier maps condition 0..100 onto 0.5..1.0, monotonically.
func conditionMultiplier(condition int) float64 {
	return 0.5 + float64(clampCondition(condition))/200.0
}

// StartRenovation transitions the property into the renovating state.
// timeRequired is the already-scaled duration in days (events, contractor and
// skill multipliers are the caller's concern). Cash is also the caller's
// concern; this only guards the property-side invariants.
func (p *Property) StartRenovation(u refdata.Upgrade, timeRequired float64) error {
	if p.Renovating() {
		return fault.InvalidOperationf("property %s is already under renovation", p.ID)
	}
	if p.HasUpgrade(u.ID) {
		return fault.InvalidOperationf("upgrade %q is already applied to property %s", u.Name, p.ID)
	}
	if len(p.Upgrades) >= p.Type.MaxUpgrades {
		return fault.InvalidOperationf("property %s has reached its maximum of %d upgrades", p.ID, p.Type.MaxUpgrades)
	}
	if timeRequired <= 0 {
		timeRequired = 1
	}
	p.Renovation = &Renovation{Upgrade: u, TimeRequired: timeRequired}
	return nil
}

// AdvanceRenovation moves the active renovation forward by the given number of
// days. On completion the upgrade is appended, condition is raised (clamped to
// 100) and the property returns to idle. Returns the completed upgrade, if any.
func (p *Property) AdvanceRenovation(days float64) (*refdata.Upgrade, bool) {
	if p.Renovation == nil || days <= 0 {
		return nil, false
	}
	p.Renovation.TimeElapsed += days
	if p.Renovation.TimeElapsed < p.Renovation.TimeRequired {
		return nil, false
	}

	done := p.Renovation.Upgrade
	p.Upgrades = append(p.Upgrades, done)
	p.Condition = clampCondition(p.Condition + done.ConditionIncrease)
	p.Renovation = nil
	return &done, true
}

func clampCondition(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
