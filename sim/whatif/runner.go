// Package whatif runs many independent cascades from the same trigger and
// summarizes how often each component ends up affected.
package whatif

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
)

// Runner executes one cascade per seed on a shared, read-only graph.
// Each run owns its SimulationState, so runs never observe each other.
type Runner struct {
	Simulator *sim.Simulator
	// Concurrency bounds the runs in flight. Zero or negative means GOMAXPROCS.
	Concurrency int
}

// NewRunner creates a Runner; a nil simulator uses the default catalog and recovery table.
func NewRunner(s *sim.Simulator, concurrency int) *Runner {
	if s == nil {
		s = sim.NewSimulator(nil, nil)
	}
	return &Runner{Simulator: s, Concurrency: concurrency}
}

// Seeds derives n run seeds from a master seed. The same master always yields
// the same list.
func Seeds(master int64, n int) []int64 {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(master)).ForSubsystem(sim.SubsystemWhatIf)
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	return seeds
}

// Run executes one cascade from triggerID per seed and aggregates the results.
// The graph's published statuses are not touched. Run stops early and returns
// the context's error if ctx is cancelled.
func (r *Runner) Run(ctx context.Context, g *sim.Graph, triggerID string, seeds []int64) (*Summary, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("what-if: no seeds")
	}
	if _, ok := g.Component(g.Resolve(triggerID)); !ok {
		return nil, &sim.NotFoundError{ID: triggerID}
	}

	limit := r.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	runs := make([]*sim.CascadeRun, len(seeds))
	states := make([]*sim.SimulationState, len(seeds))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, seed := range seeds {
		i, seed := i, seed
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			rng := sim.PropagationRNG(seed)
			st := g.NewState()
			run, err := r.Simulator.Run(st, triggerID, rng)
			if err != nil {
				return fmt.Errorf("what-if run %d (seed %d): %w", i, seed, err)
			}
			runs[i] = run
			states[i] = st
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary := summarize(g, runs, states, seeds)
	logrus.Infof("what-if from %s: %d runs, mean affected %.2f, max affected %d",
		summary.TriggerID, summary.Runs, summary.MeanAffected, summary.MaxAffected)
	return summary, nil
}

// summarize folds runs in seed order, which keeps the result independent of
// goroutine scheduling.
func summarize(g *sim.Graph, runs []*sim.CascadeRun, states []*sim.SimulationState, seeds []int64) *Summary {
	s := &Summary{
		TriggerID: runs[0].TriggerID,
		Runs:      len(runs),
		Seeds:     append([]int64(nil), seeds...),
		Results:   runs,
	}

	affected := make([]int, len(runs))
	impact := make([]float64, len(runs))
	recovery := make([]float64, len(runs))
	hits := make(map[string]int)
	worst := make(map[string]sim.Status)
	for i, run := range runs {
		affected[i] = run.TotalAffected
		impact[i] = run.TotalBusinessImpact
		recovery[i] = run.EstimatedRecoveryHours
		if run.Truncated {
			s.TruncatedRuns++
		}
		for _, a := range sim.AffectedComponents(states[i]) {
			hits[a.ID]++
			if statusRank(a.Status) > statusRank(worst[a.ID]) {
				worst[a.ID] = a.Status
			}
		}
	}
	s.MeanAffected = mean(affected)
	s.P50Affected = percentile(affected, 50)
	s.P95Affected = percentile(affected, 95)
	s.MaxAffected = slices.Max(affected)
	s.MeanBusinessImpact = mean(impact)
	s.P95BusinessImpact = percentile(impact, 95)
	s.MaxBusinessImpact = slices.Max(impact)
	s.MeanRecoveryHours = mean(recovery)

	n := float64(len(runs))
	s.Components = make([]ComponentHit, 0, len(hits))
	for id, h := range hits {
		c, _ := g.Component(id)
		s.Components = append(s.Components, ComponentHit{
			ID:          id,
			Name:        c.Name,
			Type:        c.Type,
			Hits:        h,
			HitRate:     float64(h) / n,
			WorstStatus: worst[id],
		})
	}
	sort.Slice(s.Components, func(i, j int) bool {
		if s.Components[i].Hits != s.Components[j].Hits {
			return s.Components[i].Hits > s.Components[j].Hits
		}
		return s.Components[i].ID < s.Components[j].ID
	})
	return s
}

func statusRank(s sim.Status) int {
	switch s {
	case sim.StatusFailed:
		return 3
	case sim.StatusImpacted:
		return 2
	case sim.StatusDegraded:
		return 1
	default:
		return 0
	}
}
