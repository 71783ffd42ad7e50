package sim

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Edge is a canonical dependency edge: a failure of From may affect To.
type Edge struct {
	From string
	To   string
	Kind string
}

// WellKnownIDPrefixes are tried, in order, when resolving a short component id.
var WellKnownIDPrefixes = []string{"urn:twin:", "twin:"}

// Graph is the in-memory component graph for one or more simulation runs.
// Components and adjacency are read-only after Build; only the published
// status map changes (via Simulate and Reset).
type Graph struct {
	components map[string]*Component
	ids        []string // sorted
	downstream map[string][]Edge
	statuses   map[string]Status
	edges      int
	dropped    int
}

// Build constructs a Graph from a twin snapshot. Relationships are normalized to the
// canonical "provider → dependent" direction; malformed records and relationships
// with a dangling endpoint are dropped.
func Build(snap *Snapshot) *Graph {
	g := &Graph{
		components: make(map[string]*Component),
		downstream: make(map[string][]Edge),
		statuses:   make(map[string]Status),
	}
	if snap == nil {
		return g
	}

	for i := range snap.Components {
		rec := &snap.Components[i]
		if err := configValidate.Struct(rec); err != nil {
			logrus.Debugf("dropping component record %d: %v", i, err)
			g.dropped++
			continue
		}
		if _, dup := g.components[rec.ID]; dup {
			logrus.Debugf("dropping duplicate component record %q", rec.ID)
			g.dropped++
			continue
		}
		attrs := make(map[string]any, len(rec.Attributes))
		for k, v := range rec.Attributes {
			attrs[k] = v
		}
		g.components[rec.ID] = &Component{ID: rec.ID, Name: rec.Name, Type: rec.Type, Attributes: attrs}
		g.statuses[rec.ID] = StatusOperational
		g.ids = append(g.ids, rec.ID)
	}
	sort.Strings(g.ids)

	seen := make(map[Edge]bool)
	for i := range snap.Components {
		rec := &snap.Components[i]
		if _, ok := g.components[rec.ID]; !ok {
			continue
		}
		for _, rel := range rec.Relationships {
			rel.Direction = strings.ToLower(strings.TrimSpace(rel.Direction))
			if err := configValidate.Struct(rel); err != nil {
				logrus.Debugf("dropping relationship on %q: %v", rec.ID, err)
				g.dropped++
				continue
			}
			if _, ok := g.components[rel.OtherID]; !ok {
				logrus.Debugf("dropping relationship %q -> %q: unknown endpoint", rec.ID, rel.OtherID)
				g.dropped++
				continue
			}
			e := Edge{From: rec.ID, To: rel.OtherID, Kind: NormalizeKind(rel.Kind)}
			if rel.Direction == DirectionIncoming {
				e.From, e.To = rel.OtherID, rec.ID
			}
			// the same relationship is usually exported on both endpoints
			if seen[e] {
				continue
			}
			seen[e] = true
			g.downstream[e.From] = append(g.downstream[e.From], e)
		}
	}

	g.edges = len(seen)
	logrus.Debugf("built graph: %d components, %d edges, %d records dropped", len(g.components), len(seen), g.dropped)
	return g
}

// Downstream returns the forward edges of id. Unknown and leaf ids return nil.
// The returned slice is the graph's internal storage and MUST NOT be modified.
func (g *Graph) Downstream(id string) []Edge {
	return g.downstream[id]
}

// Resolve maps a short or ambiguous identifier to the canonical component id.
// It tries an exact match, then WellKnownIDPrefixes, then a unique match on the
// last ":" or "/" separated segment. Unresolvable input is returned unchanged.
func (g *Graph) Resolve(shortID string) string {
	if _, ok := g.components[shortID]; ok {
		return shortID
	}
	for _, prefix := range WellKnownIDPrefixes {
		if _, ok := g.components[prefix+shortID]; ok {
			return prefix + shortID
		}
	}
	match := ""
	for _, id := range g.ids {
		if strings.HasSuffix(id, ":"+shortID) || strings.HasSuffix(id, "/"+shortID) {
			if match != "" {
				return shortID // ambiguous
			}
			match = id
		}
	}
	if match != "" {
		return match
	}
	return shortID
}

// Component returns the component with the given id.
func (g *Graph) Component(id string) (*Component, bool) {
	c, ok := g.components[id]
	return c, ok
}

// IDs returns all component ids in sorted order.
func (g *Graph) IDs() []string {
	return g.ids
}

// Len returns the number of components.
func (g *Graph) Len() int {
	return len(g.components)
}

// EdgeCount returns the number of canonical edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Dropped returns the number of snapshot records discarded during Build.
func (g *Graph) Dropped() int {
	return g.dropped
}

// Status returns the published status of id (OPERATIONAL for unknown ids).
func (g *Graph) Status(id string) Status {
	if s, ok := g.statuses[id]; ok {
		return s
	}
	return StatusOperational
}

// Reset returns every published status to OPERATIONAL.
func (g *Graph) Reset() {
	for id := range g.statuses {
		g.statuses[id] = StatusOperational
	}
}

// NewState allocates a fresh per-run state with every component OPERATIONAL.
func (g *Graph) NewState() *SimulationState {
	return newSimulationState(g)
}

// publish copies a finished run's statuses into the graph.
func (g *Graph) publish(st *SimulationState) {
	for id := range g.statuses {
		g.statuses[id] = st.Status(id)
	}
}
