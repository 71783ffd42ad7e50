package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRecoveryHours applies to component types missing from the recovery table.
const DefaultRecoveryHours = 2.0

// RecoveryTable maps a component type to its estimated time to recover, in hours.
type RecoveryTable map[string]float64

// DefaultRecoveryTable returns a fresh copy of the built-in MTTR table.
func DefaultRecoveryTable() RecoveryTable {
	return RecoveryTable{
		"Substation":     24,
		"Transformer":    48,
		"PowerLine":      12,
		"Generator":      8,
		"UPS":            4,
		"PDU":            2,
		"CoolingUnit":    6,
		"ServerRack":     4,
		"Server":         3,
		"NetworkSwitch":  2,
		"Router":         3,
		"Firewall":       2,
		"StorageArray":   6,
		"Database":       4,
		"Application":    1,
		"VirtualMachine": 1,
	}
}

// HoursFor returns the recovery hours for a component type.
func (t RecoveryTable) HoursFor(componentType string) float64 {
	if h, ok := t[componentType]; ok {
		return h
	}
	return DefaultRecoveryHours
}

// LoadRecoveryTable reads a YAML mapping of type → hours, layered over the defaults.
func LoadRecoveryTable(path string) (RecoveryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recovery table: %w", err)
	}
	var f struct {
		Hours map[string]float64 `yaml:"hours" validate:"dive,gte=0"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing recovery table: %w", err)
	}
	if err := configValidate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid recovery table %s: %w", path, err)
	}
	table := DefaultRecoveryTable()
	for typ, h := range f.Hours {
		table[typ] = h
	}
	return table, nil
}
