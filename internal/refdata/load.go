package refdata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"

	"houseflip/internal/fault"
)

// Catalog file names, relative to the data directory.
const (
	PropertiesFile = "properties.json"
	LocationsFile  = "locations.json"
	UpgradesFile   = "upgrades.json"
	EventsFile     = "market_events.json"
)

var validate = validator.New()

// LoadDir loads all four catalogs from a directory on disk. Any missing or
// malformed catalog is a fatal startup error for callers.
func LoadDir(dir string) (*Catalogs, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads the catalogs from any fs.FS (disk directory or embedded defaults).
func LoadFS(fsys fs.FS) (*Catalogs, error) {
	c := &Catalogs{}

	if err := loadCatalog(fsys, PropertiesFile, &c.PropertyTypes); err != nil {
		return nil, err
	}
	if err := loadCatalog(fsys, LocationsFile, &c.Locations); err != nil {
		return nil, err
	}
	if err := loadCatalog(fsys, UpgradesFile, &c.Upgrades); err != nil {
		return nil, err
	}
	if err := loadCatalog(fsys, EventsFile, &c.Events); err != nil {
		return nil, err
	}

	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

type identifiable interface {
	PropertyType | Location | Upgrade | MarketEvent
}

// loadCatalog reads a JSON object keyed by id and copies each key onto the
// record's ID field so records are self-describing afterwards.
func loadCatalog[V identifiable](fsys fs.FS, name string, dst *map[string]V) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fault.DataIntegrityf("read catalog %s: %v", name, err)
	}

	raw := map[string]V{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fault.DataIntegrityf("parse catalog %s: %v", name, err)
	}
	if len(raw) == 0 {
		return fault.DataIntegrityf("catalog %s is empty", name)
	}

	out := make(map[string]V, len(raw))
	for id, rec := range raw {
		setID(&rec, id)
		if err := validate.Struct(rec); err != nil {
			return fault.DataIntegrityf("catalog %s entry %q: %v", name, id, err)
		}
		out[id] = rec
	}
	*dst = out
	return nil
}

func setID[V identifiable](rec *V, id string) {
	switch r := any(rec).(type) {
	case *PropertyType:
		r.ID = id
	case *Location:
		r.ID = id
	case *Upgrade:
		r.ID = id
	case *MarketEvent:
		r.ID = id
	}
}

// check enforces the cross-catalog rules the struct tags cannot express:
// effect kinds come from the closed enumeration and scopes name real
// locations. A typo in a data file fails loudly here instead of being
// silently ignored at valuation time.
func (c *Catalogs) check() error {
	for id, ev := range c.Events {
		for i, ef := range ev.Effects {
			if !ValidEffectKind(ef.Kind) {
				return fault.DataIntegrityf("event %q effect %d: unknown effect type %q", id, i, ef.Kind)
			}
			if ef.Scope == "" || ef.Scope == ScopeAll {
				continue
			}
			if _, ok := c.Locations[ef.Scope]; !ok {
				return fault.DataIntegrityf("event %q effect %d: unknown location %q", id, i, ef.Scope)
			}
		}
	}
	return nil
}

// mustLoad is used for the embedded defaults, which are compiled in and
// therefore cannot legitimately fail.
func mustLoad(fsys fs.FS) *Catalogs {
	c, err := LoadFS(fsys)
	if err != nil {
		panic(fmt.Sprintf("embedded catalogs invalid: %v", err))
	}
	return c
}
