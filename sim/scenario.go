package sim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario bundles the inputs of one cascade study, loadable from a YAML file.
// Nil pointer fields and empty strings mean "not set in YAML"; explicit CLI
// flags take precedence over anything set here.
type Scenario struct {
	Snapshot  string        `yaml:"snapshot"` // relative to the scenario file
	Dgraph    string        `yaml:"dgraph"`
	Trigger   string        `yaml:"trigger"`
	Seed      *int64        `yaml:"seed"`
	MaxEvents *int          `yaml:"max_events"`
	Runs      *int          `yaml:"runs"`
	Catalog   Catalog       `yaml:"catalog"` // layered over DefaultCatalog
	Recovery  RecoveryTable `yaml:"recovery" validate:"omitempty,dive,gte=0"`
}

// LoadScenario reads and validates a scenario file with strict field checking.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if sc.Snapshot != "" && !filepath.IsAbs(sc.Snapshot) {
		sc.Snapshot = filepath.Join(filepath.Dir(path), sc.Snapshot)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks that the scenario's sources are consistent and every
// parameter is in range.
func (s *Scenario) Validate() error {
	if s.Snapshot != "" && s.Dgraph != "" {
		return fmt.Errorf("snapshot and dgraph are mutually exclusive")
	}
	if s.MaxEvents != nil && *s.MaxEvents < 0 {
		return fmt.Errorf("max_events must be non-negative, got %d", *s.MaxEvents)
	}
	if s.Runs != nil && *s.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", *s.Runs)
	}
	if err := configValidate.Struct(s); err != nil {
		return err
	}
	return s.Catalog.Validate()
}

// EffectiveCatalog returns the default catalog with the scenario's kinds applied.
func (s *Scenario) EffectiveCatalog() Catalog {
	c := DefaultCatalog()
	for kind, p := range s.Catalog {
		c[kind] = p
	}
	return c
}

// EffectiveRecovery returns the default recovery table with the scenario's hours applied.
func (s *Scenario) EffectiveRecovery() RecoveryTable {
	t := DefaultRecoveryTable()
	for typ, h := range s.Recovery {
		t[typ] = h
	}
	return t
}
