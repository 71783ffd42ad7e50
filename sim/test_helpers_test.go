package sim

import (
	"fmt"
	"time"
)

// rec builds a component record with a numeric businessImpact attribute.
func rec(id, typ string, impact float64, rels ...RelationshipRecord) ComponentRecord {
	return ComponentRecord{
		ID:            id,
		Name:          "name-" + id,
		Type:          typ,
		Attributes:    map[string]any{AttrBusinessImpact: impact},
		Relationships: rels,
	}
}

func out(other, kind string) RelationshipRecord {
	return RelationshipRecord{OtherID: other, Kind: kind, Direction: DirectionOutgoing}
}

func in(other, kind string) RelationshipRecord {
	return RelationshipRecord{OtherID: other, Kind: kind, Direction: DirectionIncoming}
}

// edgeGraph builds a graph of "Server" components from (from, to, kind) triples,
// recording every relationship as outgoing on its provider.
func edgeGraph(ids []string, edges [][3]string) *Graph {
	byID := make(map[string]*ComponentRecord)
	snap := &Snapshot{}
	for _, id := range ids {
		snap.Components = append(snap.Components, rec(id, "Server", 10))
	}
	for i := range snap.Components {
		byID[snap.Components[i].ID] = &snap.Components[i]
	}
	for _, e := range edges {
		r := byID[e[0]]
		r.Relationships = append(r.Relationships, out(e[1], e[2]))
	}
	return Build(snap)
}

// chain builds n components c0 → c1 → ... → c(n-1) joined by kind.
func chain(n int, kind string) *Graph {
	ids := make([]string, n)
	var edges [][3]string
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
		if i > 0 {
			edges = append(edges, [3]string{ids[i-1], ids[i], kind})
		}
	}
	return edgeGraph(ids, edges)
}

// newTestSimulator returns a simulator with a fixed clock and sequential run ids.
func newTestSimulator(catalog Catalog) *Simulator {
	s := NewSimulator(catalog, nil)
	s.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	n := 0
	s.NewRunID = func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	}
	return s
}

// certainCatalog makes every listed kind propagate with probability 1 and severity 1.
func certainCatalog(kinds ...string) Catalog {
	c := Catalog{}
	for _, k := range kinds {
		c[k] = DependencyProfile{DelaySeconds: 0, Probability: 1, Severity: 1}
	}
	return c
}

func timelineIDs(run *CascadeRun) []string {
	ids := make([]string, len(run.Timeline))
	for i, e := range run.Timeline {
		ids[i] = e.ComponentID
	}
	return ids
}
