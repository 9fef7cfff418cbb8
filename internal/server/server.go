// Package server exposes the simulation's operations over HTTP for the
// presentation layer. It serializes access to the single-threaded game state
// and maps fault kinds onto status codes.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"houseflip/internal/config"
	"houseflip/internal/fault"
	"houseflip/internal/game"
	"houseflip/internal/httpmw"
	"houseflip/internal/ledger"
	"houseflip/internal/refdata"
	"houseflip/internal/save"
)

type Options struct {
	State    *game.State
	Catalogs *refdata.Catalogs
	Balance  config.Balance
	Saves    *save.FileStore
	// History serves the /api/history endpoints; nil disables them.
	History *ledger.Store
	// Recorder is re-attached to sessions restored from a save.
	Recorder ledger.Recorder
	Clock    game.Clock
	Logger   *logrus.Logger
	// Autosave names a save slot written after every advanced day; empty
	// disables autosaving.
	Autosave       string
	AllowedOrigins []string
}

type App struct {
	mu sync.Mutex

	state    *game.State
	catalogs *refdata.Catalogs
	balance  config.Balance
	saves    *save.FileStore
	history  *ledger.Store
	recorder ledger.Recorder
	clock    game.Clock
	logger   *logrus.Logger
	autosave string
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.State == nil {
		return nil, errors.New("game state is required")
	}
	if opts.Catalogs == nil {
		return nil, errors.New("catalogs are required")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}

	app := &App{
		state:    opts.State,
		catalogs: opts.Catalogs,
		balance:  opts.Balance,
		saves:    opts.Saves,
		history:  opts.History,
		recorder: opts.Recorder,
		clock:    opts.Clock,
		logger:   opts.Logger,
		autosave: opts.Autosave,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", app.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", app.State).Methods(http.MethodGet)
	api.HandleFunc("/listings", app.Listings).Methods(http.MethodGet)
	api.HandleFunc("/portfolio", app.Portfolio).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}", app.Property).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}/buy", app.Buy).Methods(http.MethodPost)
	api.HandleFunc("/properties/{id}/sell", app.Sell).Methods(http.MethodPost)
	api.HandleFunc("/properties/{id}/renovation", app.StartRenovation).Methods(http.MethodPost)
	api.HandleFunc("/events", app.Events).Methods(http.MethodGet)
	api.HandleFunc("/upgrades", app.Upgrades).Methods(http.MethodGet)
	api.HandleFunc("/day/advance", app.AdvanceDay).Methods(http.MethodPost)
	api.HandleFunc("/loan/take", app.TakeLoan).Methods(http.MethodPost)
	api.HandleFunc("/loan/repay", app.RepayLoan).Methods(http.MethodPost)
	api.HandleFunc("/skills/{name}/upgrade", app.UpgradeSkill).Methods(http.MethodPost)
	api.HandleFunc("/contractor/hire", app.HireContractor).Methods(http.MethodPost)
	api.HandleFunc("/contractor/fire", app.FireContractor).Methods(http.MethodPost)
	api.HandleFunc("/saves", app.ListSaves).Methods(http.MethodGet)
	api.HandleFunc("/saves/{name}", app.Save).Methods(http.MethodPost)
	api.HandleFunc("/saves/{name}/load", app.Load).Methods(http.MethodPost)
	api.HandleFunc("/history", app.History).Methods(http.MethodGet)
	api.HandleFunc("/history/{day}/transactions", app.DayTransactions).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	})

	return httpmw.Chain(
		c.Handler(r),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithRequestLog(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// writeFault maps a fault kind onto an HTTP status. Non-fault errors are
// internal.
func writeFault(w http.ResponseWriter, err error) {
	switch fault.KindOf(err) {
	case fault.Validation:
		writeErr(w, http.StatusBadRequest, err.Error())
	case fault.InsufficientFunds:
		writeErr(w, http.StatusPaymentRequired, err.Error())
	case fault.InvalidOperation:
		writeErr(w, http.StatusConflict, err.Error())
	case fault.DataIntegrity:
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
