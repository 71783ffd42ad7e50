package sim

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// configValidate is shared by the catalog, recovery table and snapshot loaders.
var configValidate = validator.New()

// DependencyProfile holds the propagation parameters of one dependency kind.
type DependencyProfile struct {
	DelaySeconds float64 `yaml:"delay_seconds" json:"delaySeconds" validate:"gte=0"`
	Probability  float64 `yaml:"probability" json:"probability" validate:"gte=0,lte=1"`
	Severity     float64 `yaml:"severity" json:"severity" validate:"gte=0,lte=1"`
}

// DefaultProfile is used for any kind absent from the catalog.
var DefaultProfile = DependencyProfile{DelaySeconds: 10, Probability: 0.5, Severity: 0.5}

// Catalog maps a canonical dependency kind to its profile.
type Catalog map[string]DependencyProfile

// DefaultCatalog returns a fresh copy of the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		"hosts":         {DelaySeconds: 0, Probability: 1.0, Severity: 1.0},
		"powers":        {DelaySeconds: 0, Probability: 1.0, Severity: 1.0},
		"feeds":         {DelaySeconds: 5, Probability: 0.9, Severity: 0.9},
		"suppliesPower": {DelaySeconds: 1, Probability: 0.95, Severity: 0.95},
		"cools":         {DelaySeconds: 300, Probability: 0.8, Severity: 0.7},
		"connectsTo":    {DelaySeconds: 2, Probability: 0.7, Severity: 0.6},
		"networkLink":   {DelaySeconds: 2, Probability: 0.7, Severity: 0.6},
		"dependsOn":     {DelaySeconds: 10, Probability: 0.8, Severity: 0.8},
		"contains":      {DelaySeconds: 0, Probability: 0.9, Severity: 0.8},
		"runsOn":        {DelaySeconds: 0, Probability: 1.0, Severity: 0.9},
		"monitors":      {DelaySeconds: 60, Probability: 0.3, Severity: 0.2},
		"backs":         {DelaySeconds: 3600, Probability: 0.5, Severity: 0.4},
	}
}

// Lookup returns the profile for kind and whether the kind is known.
// Unknown kinds (and a nil catalog) yield DefaultProfile.
func (c Catalog) Lookup(kind string) (DependencyProfile, bool) {
	if p, ok := c[kind]; ok {
		return p, true
	}
	return DefaultProfile, false
}

// Kinds returns the catalog's kinds in sorted order.
func (c Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c))
	for k := range c {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Validate checks every profile is within range.
func (c Catalog) Validate() error {
	for _, kind := range c.Kinds() {
		p := c[kind]
		if err := configValidate.Struct(p); err != nil {
			return fmt.Errorf("dependency kind %q: %w", kind, err)
		}
	}
	return nil
}

// catalogFile is the on-disk catalog layout.
type catalogFile struct {
	Version string  `yaml:"version"`
	Kinds   Catalog `yaml:"kinds"`
}

// LoadCatalog reads a YAML catalog file with strict field checking.
// Entries override the built-in catalog kind by kind.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var f catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	catalog := DefaultCatalog()
	for kind, p := range f.Kinds {
		catalog[kind] = p
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}

// MarshalCatalog renders the catalog in the same layout LoadCatalog reads.
func MarshalCatalog(c Catalog) ([]byte, error) {
	return yaml.Marshal(catalogFile{Version: "1", Kinds: c})
}
