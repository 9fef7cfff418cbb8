// Package market exposes the per-location value multipliers used by property
// valuation: the static base multiplier from the location catalog composed
// with whatever the event engine is currently doing to that location.
package market

import (
	"houseflip/internal/event"
	"houseflip/internal/refdata"
)

type Market struct {
	base map[string]float64
}

func New(locations map[string]refdata.Location) *Market {
	base := make(map[string]float64, len(locations))
	for id, loc := range locations {
		base[id] = loc.BaseMultiplier
	}
	return &Market{base: base}
}

// BaseMultiplier returns the catalog multiplier for a location. Unknown
// locations fall back to 1.0 rather than failing valuation.
func (m *Market) BaseMultiplier(locationID string) float64 {
	if mult, ok := m.base[locationID]; ok {
		return mult
	}
	return 1.0
}

// CurrentMultiplier composes the base multiplier with the active value
// events for the location.
func (m *Market) CurrentMultiplier(locationID string, events *event.Engine) float64 {
	mult := m.BaseMultiplier(locationID)
	if events != nil {
		mult *= events.CombinedModifier(locationID, refdata.EffectValue)
	}
	return mult
}
