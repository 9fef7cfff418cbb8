package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"houseflip/internal/game"
	"houseflip/internal/property"
	"houseflip/internal/save"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type stateView struct {
	Day           int            `json:"day"`
	Cash          int            `json:"cash"`
	Loan          int            `json:"loan"`
	NetWorth      int            `json:"net_worth"`
	Skills        map[string]int `json:"skills"`
	HasContractor bool           `json:"has_contractor"`
	Owned         int            `json:"owned_properties"`
	Listed        int            `json:"listed_properties"`
	ActiveEvents  int            `json:"active_events"`
	Outcome       game.Outcome   `json:"outcome"`
}

func (a *App) State(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state
	skills := make(map[string]int, len(s.Player.Skills))
	for name, lvl := range s.Player.Skills {
		skills[string(name)] = lvl
	}
	writeJSON(w, http.StatusOK, stateView{
		Day:           s.Day,
		Cash:          s.Player.Cash,
		Loan:          s.Player.Loan,
		NetWorth:      s.NetWorth(),
		Skills:        skills,
		HasContractor: s.Player.HasContractor,
		Owned:         len(s.Player.Properties),
		Listed:        len(s.Listings),
		ActiveEvents:  len(s.Events.Active()),
		Outcome:       s.Outcome,
	})
}

type propertyView struct {
	ID            string   `json:"id"`
	TypeID        string   `json:"type_id"`
	TypeName      string   `json:"type_name"`
	LocationID    string   `json:"location_id"`
	Condition     int      `json:"condition"`
	Value         int      `json:"value"`
	Owned         bool     `json:"owned"`
	UpgradeIDs    []string `json:"upgrade_ids"`
	MaxUpgrades   int      `json:"max_upgrades"`
	Renovating    bool     `json:"renovating"`
	RenovationID  string   `json:"renovation_upgrade_id,omitempty"`
	DaysRemaining float64  `json:"renovation_days_remaining,omitempty"`
}

func (a *App) propertyView(p *property.Property, owned bool) propertyView {
	v := propertyView{
		ID:          p.ID,
		TypeID:      p.Type.ID,
		TypeName:    p.Type.Name,
		LocationID:  p.LocationID,
		Condition:   p.Condition,
		Value:       a.state.PropertyValue(p),
		Owned:       owned,
		UpgradeIDs:  p.UpgradeIDs(),
		MaxUpgrades: p.Type.MaxUpgrades,
		Renovating:  p.Renovating(),
	}
	if p.Renovation != nil {
		v.RenovationID = p.Renovation.Upgrade.ID
		v.DaysRemaining = p.Renovation.TimeRemaining()
	}
	return v
}

func (a *App) Listings(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]propertyView, 0, len(a.state.Listings))
	for _, id := range a.state.ListingIDs() {
		out = append(out, a.propertyView(a.state.Listings[id], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) Portfolio(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]propertyView, 0, len(a.state.Player.Properties))
	for _, id := range a.state.Player.OwnedIDs() {
		out = append(out, a.propertyView(a.state.Player.Properties[id], true))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) Property(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := mux.Vars(r)["id"]
	p, owned, ok := a.state.PropertyByID(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown property "+id)
		return
	}
	writeJSON(w, http.StatusOK, a.propertyView(p, owned))
}

func (a *App) Buy(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := a.state.Buy(mux.Vars(r)["id"])
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *App) Sell(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := a.state.Sell(mux.Vars(r)["id"])
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *App) StartRenovation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UpgradeID string `json:"upgrade_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	start, err := a.state.StartRenovation(mux.Vars(r)["id"], req.UpgradeID)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, start)
}

type activeEventView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DaysRemaining int    `json:"days_remaining"`
}

func (a *App) Events(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	active := a.state.Events.Active()
	out := make([]activeEventView, 0, len(active))
	for _, ev := range active {
		out = append(out, activeEventView{ID: ev.Event.ID, Name: ev.Event.Name, DaysRemaining: ev.DaysRemaining})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) Upgrades(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := a.catalogs.UpgradeIDs()
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.catalogs.Upgrades[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) AdvanceDay(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	report := a.state.AdvanceDay()

	if a.autosave != "" && a.saves != nil {
		if err := a.saves.Save(a.autosave, save.Capture(a.state)); err != nil {
			a.logger.WithError(err).Warn("autosave failed")
		}
	}
	writeJSON(w, http.StatusOK, report)
}

type amountRequest struct {
	Amount int `json:"amount"`
}

func (a *App) TakeLoan(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.state.TakeLoan(req.Amount); err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"cash": a.state.Player.Cash,
		"loan": a.state.Player.Loan,
	})
}

func (a *App) RepayLoan(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	repaid, err := a.state.RepayLoan(req.Amount)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"repaid": repaid,
		"cash":   a.state.Player.Cash,
		"loan":   a.state.Player.Loan,
	})
}

func (a *App) UpgradeSkill(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	skill, cost, err := a.state.UpgradeSkill(mux.Vars(r)["name"])
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"skill": skill,
		"level": a.state.Player.SkillLevel(skill),
		"cost":  cost,
		"cash":  a.state.Player.Cash,
	})
}

func (a *App) HireContractor(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.state.HireContractor(); err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_contractor": true})
}

func (a *App) FireContractor(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.state.FireContractor(); err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_contractor": false})
}

func (a *App) ListSaves(w http.ResponseWriter, r *http.Request) {
	if a.saves == nil {
		writeErr(w, http.StatusNotImplemented, "saving is not configured")
		return
	}
	names, err := a.saves.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (a *App) Save(w http.ResponseWriter, r *http.Request) {
	if a.saves == nil {
		writeErr(w, http.StatusNotImplemented, "saving is not configured")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	name := mux.Vars(r)["name"]
	if err := a.saves.Save(name, save.Capture(a.state)); err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": name})
}

// Load replaces the running session with the saved one. A failed load leaves
// the current session untouched.
func (a *App) Load(w http.ResponseWriter, r *http.Request) {
	if a.saves == nil {
		writeErr(w, http.StatusNotImplemented, "saving is not configured")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	name := mux.Vars(r)["name"]
	snap, err := a.saves.Load(name)
	if err != nil {
		writeFault(w, err)
		return
	}

	restored, err := save.Restore(snap, a.catalogs, a.balance, game.Options{
		Clock:  a.clock,
		Ledger: a.recorder,
	})
	if err != nil {
		writeFault(w, err)
		return
	}
	a.state = restored

	writeJSON(w, http.StatusOK, map[string]any{
		"loaded": name,
		"day":    restored.Day,
		"cash":   restored.Player.Cash,
	})
}

func (a *App) History(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		writeErr(w, http.StatusNotImplemented, "history is not configured")
		return
	}

	limit := 30
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := a.history.History(limit)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *App) DayTransactions(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		writeErr(w, http.StatusNotImplemented, "history is not configured")
		return
	}

	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 1 {
		writeErr(w, http.StatusBadRequest, "day must be a positive integer")
		return
	}

	records, err := a.history.Transactions(day)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}
