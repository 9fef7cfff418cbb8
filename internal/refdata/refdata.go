// Package refdata holds the immutable reference catalogs the simulation is
// built from: property types, locations, upgrades and market event
// definitions. Catalogs are loaded once at startup and never mutated.
package refdata

import "sort"

// EffectKind is the closed set of ways a market event can bend the economy.
type EffectKind string

const (
	EffectValue          EffectKind = "value_multiplier"
	EffectUpgradeCost    EffectKind = "upgrade_cost_multiplier"
	EffectRenovationTime EffectKind = "renovation_time_multiplier"
)

// ScopeAll marks an effect that applies to every location.
const ScopeAll = "all"

func ValidEffectKind(k EffectKind) bool {
	switch k {
	case EffectValue, EffectUpgradeCost, EffectRenovationTime:
		return true
	}
	return false
}

type PropertyType struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	BaseValue   int    `json:"base_value" validate:"gt=0"`
	MaxUpgrades int    `json:"max_upgrades" validate:"gte=1"`
}

type Location struct {
	ID             string  `json:"id"`
	Name           string  `json:"name" validate:"required"`
	BaseMultiplier float64 `json:"multiplier" validate:"gte=0"`
}

type Upgrade struct {
	ID                string `json:"id"`
	Name              string `json:"name" validate:"required"`
	Cost              int    `json:"cost" validate:"gte=0"`
	ValueIncrease     int    `json:"value_increase" validate:"gte=0"`
	ConditionIncrease int    `json:"condition_increase" validate:"gte=0,lte=100"`
	TimeRequired      int    `json:"time_required" validate:"gt=0"`
}

type Effect struct {
	Kind   EffectKind `json:"type" validate:"required"`
	Scope  string     `json:"location"` // ScopeAll or a location id
	Amount float64    `json:"amount" validate:"gt=0"`
}

type MarketEvent struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	DurationDays int      `json:"duration" validate:"gt=0"`
	Effects      []Effect `json:"effects" validate:"dive"`
}

// Catalogs bundles all four reference catalogs, keyed by id.
type Catalogs struct {
	PropertyTypes map[string]PropertyType
	Locations     map[string]Location
	Upgrades      map[string]Upgrade
	Events        map[string]MarketEvent
}

func (c *Catalogs) PropertyType(id string) (PropertyType, bool) {
	t, ok := c.PropertyTypes[id]
	return t, ok
}

func (c *Catalogs) Location(id string) (Location, bool) {
	l, ok := c.Locations[id]
	return l, ok
}

func (c *Catalogs) Upgrade(id string) (Upgrade, bool) {
	u, ok := c.Upgrades[id]
	return u, ok
}

func (c *Catalogs) Event(id string) (MarketEvent, bool) {
	e, ok := c.Events[id]
	return e, ok
}

// PropertyTypeIDs returns catalog ids in stable sorted order. Random listing
// generation indexes into this, so the order must not depend on map iteration.
func (c *Catalogs) PropertyTypeIDs() []string { return sortedKeys(c.PropertyTypes) }

func (c *Catalogs) LocationIDs() []string { return sortedKeys(c.Locations) }

func (c *Catalogs) UpgradeIDs() []string { return sortedKeys(c.Upgrades) }

func (c *Catalogs) EventIDs() []string { return sortedKeys(c.Events) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
