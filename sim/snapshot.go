package sim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Relationship directions, relative to the component that records the relationship.
const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
)

// Snapshot is a point-in-time export of components and their relationships
// from the twin store.
type Snapshot struct {
	Components []ComponentRecord `yaml:"components" json:"components"`
}

// ComponentRecord is one component as exported by the twin store.
type ComponentRecord struct {
	ID            string               `yaml:"id" json:"id" validate:"required"`
	Name          string               `yaml:"name" json:"name"`
	Type          string               `yaml:"type" json:"type"`
	Attributes    map[string]any       `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Relationships []RelationshipRecord `yaml:"relationships,omitempty" json:"relationships,omitempty"`
}

// RelationshipRecord is a relationship as seen from its owning component.
type RelationshipRecord struct {
	OtherID   string `yaml:"otherId" json:"otherId" validate:"required"`
	Kind      string `yaml:"kind" json:"kind" validate:"required"`
	Direction string `yaml:"direction" json:"direction" validate:"oneof=incoming outgoing"`
}

// LoadSnapshot reads a snapshot file. Files ending in .json are decoded as JSON,
// everything else as YAML.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &snap)
	} else {
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&snap)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// NormalizeKind strips a namespace or URI prefix from a dependency kind:
// "https://ns.example/rel#powers", "rel/powers" and "rel:powers" all become "powers".
func NormalizeKind(kind string) string {
	kind = strings.TrimSpace(kind)
	if i := strings.LastIndexAny(kind, "#/:"); i >= 0 {
		kind = kind[i+1:]
	}
	return kind
}
