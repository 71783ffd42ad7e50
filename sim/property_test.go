package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var propertyKinds = []string{"hosts", "feeds", "dependsOn", "connectsTo", "monitors", "teleports"}

// randomGraph builds n components and one edge per code, where a code packs
// (from, to, kind) as from*n*len(kinds) + to*len(kinds) + kind.
func randomGraph(n int, codes []int) *Graph {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("n%d", i)
	}
	k := len(propertyKinds)
	edges := make([][3]string, 0, len(codes))
	for _, c := range codes {
		c %= n * n * k
		from, to, kind := c/(n*k), (c/k)%n, c%k
		edges = append(edges, [3]string{ids[from], ids[to], propertyKinds[kind]})
	}
	return edgeGraph(ids, edges)
}

// TestCascadeInvariants checks properties that hold for every graph, trigger and seed.
func TestCascadeInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	graphGen := gen.IntRange(1, 12)
	edgeGen := gen.SliceOf(gen.IntRange(0, 12*12*len(propertyKinds)))

	properties.Property("total affected is the trigger plus successful propagations", prop.ForAll(
		func(n int, codes []int, seed int64) bool {
			g := randomGraph(n, codes)
			run, err := Simulate(g, "n0", rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			return run.TotalAffected == 1+run.DirectImpacts && len(run.Timeline) == run.TotalAffected
		},
		graphGen, edgeGen, gen.Int64(),
	))

	properties.Property("each component appears at most once in the timeline", prop.ForAll(
		func(n int, codes []int, seed int64) bool {
			g := randomGraph(n, codes)
			run, err := Simulate(g, "n0", rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			for _, e := range run.Timeline {
				if seen[e.ComponentID] {
					return false
				}
				seen[e.ComponentID] = true
			}
			return true
		},
		graphGen, edgeGen, gen.Int64(),
	))

	properties.Property("timeline is ordered by time and severities stay in [0,1]", prop.ForAll(
		func(n int, codes []int, seed int64) bool {
			g := randomGraph(n, codes)
			run, err := Simulate(g, "n0", rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			for i, e := range run.Timeline {
				if e.Severity < 0 || e.Severity > 1 {
					return false
				}
				if i > 0 && e.Time < run.Timeline[i-1].Time {
					return false
				}
			}
			return run.MaxSeverity <= 1 && !run.Truncated
		},
		graphGen, edgeGen, gen.Int64(),
	))

	properties.Property("affected components are reachable from the trigger", prop.ForAll(
		func(n int, codes []int, seed int64) bool {
			g := randomGraph(n, codes)
			reachable := HopDistances(g, "n0")
			run, err := Simulate(g, "n0", rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			for _, e := range run.Timeline {
				if d, ok := reachable[e.ComponentID]; !ok || e.HopDistance != d {
					return false
				}
			}
			return len(AffectedComponents(g)) == run.TotalAffected
		},
		graphGen, edgeGen, gen.Int64(),
	))

	properties.Property("same seed yields the same timeline", prop.ForAll(
		func(n int, codes []int, seed int64) bool {
			g := randomGraph(n, codes)
			s := newTestSimulator(nil)
			a, errA := s.Run(g.NewState(), "n0", rand.New(rand.NewSource(seed)))
			b, errB := s.Run(g.NewState(), "n0", rand.New(rand.NewSource(seed)))
			if errA != nil || errB != nil || len(a.Timeline) != len(b.Timeline) {
				return false
			}
			for i := range a.Timeline {
				if a.Timeline[i] != b.Timeline[i] {
					return false
				}
			}
			return true
		},
		graphGen, edgeGen, gen.Int64(),
	))

	properties.TestingRun(t)
}
