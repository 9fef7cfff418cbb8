package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a balance YAML file. Fields absent from the file keep their
// default values, so a file only needs to name the tunables it changes.
func LoadFile(path string) (Balance, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse balance file %s: %w", path, err)
	}
	return cfg, nil
}
