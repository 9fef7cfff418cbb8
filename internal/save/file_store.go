package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"houseflip/internal/fault"
)

var nameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// FileStore keeps snapshots as pretty-printed JSON files in one directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "savegame"
	}
	if !nameRe.MatchString(name) {
		return "", fault.Validationf("invalid save name %q", name)
	}
	return filepath.Join(fs.dir, name+".json"), nil
}

// Save writes the snapshot to a temp file and renames it into place, so a
// crash mid-write never corrupts an existing save.
func (fs *FileStore) Save(name string, snap Snapshot) error {
	path, err := fs.path(name)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (fs *FileStore) Load(name string) (Snapshot, error) {
	path, err := fs.path(name)
	if err != nil {
		return Snapshot{}, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, fault.DataIntegrityf("no save named %q", name)
		}
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fault.DataIntegrityf("save %q is corrupt: %v", name, err)
	}
	return snap, nil
}

// List returns the stored save names, sorted.
func (fs *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
