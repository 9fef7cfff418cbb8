// Package event runs the market event engine: zero or more concurrently
// active timed events whose effects bend property values, upgrade costs and
// renovation times, globally or per location.
package event

import (
	"math/rand"

	"houseflip/internal/fault"
	"houseflip/internal/refdata"
)

// Active is one running event instance.
type Active struct {
	Event         refdata.MarketEvent `json:"event"`
	DaysRemaining int                 `json:"days_remaining"`
}

// Engine tracks active events and decides when new ones start. The random
// source is injected so tests can seed it.
type Engine struct {
	catalog     *refdata.Catalogs
	maxActive   int
	dailyChance float64
	rng         *rand.Rand
	active      []Active
}

func NewEngine(catalog *refdata.Catalogs, maxActive int, dailyChance float64, rng *rand.Rand) *Engine {
	if maxActive < 0 {
		maxActive = 0
	}
	return &Engine{
		catalog:     catalog,
		maxActive:   maxActive,
		dailyChance: dailyChance,
		rng:         rng,
	}
}

// Active returns a copy of the running events, in start order.
func (e *Engine) Active() []Active {
	out := make([]Active, len(e.active))
	copy(out, e.active)
	return out
}

func (e *Engine) isActive(eventID string) bool {
	for _, a := range e.active {
		if a.Event.ID == eventID {
			return true
		}
	}
	return false
}

// UpdateResult reports what changed during one engine update.
type UpdateResult struct {
	Started []string `json:"started"`
	Expired []string `json:"expired"`
}

// Update ages active events by daysPassed, expires the spent ones, and — when
// below the concurrency cap — rolls the daily trigger to start a fresh event
// drawn uniformly from the definitions not currently active.
func (e *Engine) Update(daysPassed int) UpdateResult {
	var res UpdateResult
	if daysPassed <= 0 {
		return res
	}

	kept := e.active[:0]
	for _, a := range e.active {
		a.DaysRemaining -= daysPassed
		if a.DaysRemaining <= 0 {
			res.Expired = append(res.Expired, a.Event.ID)
			continue
		}
		kept = append(kept, a)
	}
	e.active = kept

	if len(e.active) >= e.maxActive {
		return res
	}
	if e.rng.Float64() >= e.dailyChance {
		return res
	}

	// Candidate order must be stable, not map order.
	candidates := make([]string, 0, len(e.catalog.Events))
	for _, id := range e.catalog.EventIDs() {
		if !e.isActive(id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return res
	}

	def := e.catalog.Events[candidates[e.rng.Intn(len(candidates))]]
	e.active = append(e.active, Active{Event: def, DaysRemaining: def.DurationDays})
	res.Started = append(res.Started, def.ID)
	return res
}

// CombinedModifier folds the matching effects of every active event into one
// multiplicative factor. Events or locations with no matching effect
// contribute 1.0.
func (e *Engine) CombinedModifier(locationID string, kind refdata.EffectKind) float64 {
	mod := 1.0
	for _, a := range e.active {
		for _, ef := range a.Event.Effects {
			if ef.Kind != kind {
				continue
			}
			if ef.Scope == "" || ef.Scope == refdata.ScopeAll || ef.Scope == locationID {
				mod *= ef.Amount
			}
		}
	}
	return mod
}

// Restore replaces the active set from persisted state. Unknown event ids or
// non-positive durations reject the whole restore.
func (e *Engine) Restore(states []State) error {
	restored := make([]Active, 0, len(states))
	for _, s := range states {
		def, ok := e.catalog.Event(s.EventID)
		if !ok {
			return fault.DataIntegrityf("active event references unknown event %q", s.EventID)
		}
		if s.DaysRemaining <= 0 {
			return fault.DataIntegrityf("active event %q has non-positive days remaining", s.EventID)
		}
		restored = append(restored, Active{Event: def, DaysRemaining: s.DaysRemaining})
	}
	e.active = restored
	return nil
}

// State is the persisted form of one active event.
type State struct {
	EventID       string `json:"event_id"`
	DaysRemaining int    `json:"days_remaining"`
}

// Snapshot returns the active set in persisted form.
func (e *Engine) Snapshot() []State {
	out := make([]State, 0, len(e.active))
	for _, a := range e.active {
		out = append(out, State{EventID: a.Event.ID, DaysRemaining: a.DaysRemaining})
	}
	return out
}
