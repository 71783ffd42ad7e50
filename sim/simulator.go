// sim/simulator.go
package sim

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/penserai/tesseraidb-examples-sub001/sim/trace"
)

// DefaultMaxEventsFactor bounds the events one run may pop, relative to graph size.
const DefaultMaxEventsFactor = 10

// RunObserver is notified of every completed run (e.g. a metrics registry).
type RunObserver interface {
	ObserveRun(run *CascadeRun)
}

// Simulator holds the static configuration shared by every run.
// A Simulator is immutable after construction and safe for concurrent use.
type Simulator struct {
	Catalog  Catalog
	Recovery RecoveryTable
	// MaxEventsFactor caps popped events at MaxEventsFactor × (components + edges).
	// Under at-most-once semantics a run never pops more than edges+1 events, so the
	// cap only fires when the catalog or graph is corrupt.
	MaxEventsFactor int
	// MaxEvents, when positive, overrides the factor-derived cap.
	MaxEvents int
	Observer  RunObserver
	Now       func() time.Time
	NewRunID  func() string
}

// NewSimulator creates a Simulator. Nil tables fall back to the built-in defaults.
func NewSimulator(catalog Catalog, recovery RecoveryTable) *Simulator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if recovery == nil {
		recovery = DefaultRecoveryTable()
	}
	return &Simulator{
		Catalog:         catalog,
		Recovery:        recovery,
		MaxEventsFactor: DefaultMaxEventsFactor,
		Now:             time.Now,
		NewRunID:        uuid.NewString,
	}
}

// Simulate runs one cascade from triggerID with the default catalog and recovery table.
func Simulate(g *Graph, triggerID string, rng RandomSource) (*CascadeRun, error) {
	return NewSimulator(nil, nil).Simulate(g, triggerID, rng)
}

// Simulate runs one cascade on a fresh SimulationState and publishes the final
// statuses to g, so AffectedComponents(g) reflects this run until g.Reset().
// Must not be called concurrently on the same Graph; use Run with separate states.
func (s *Simulator) Simulate(g *Graph, triggerID string, rng RandomSource) (*CascadeRun, error) {
	st := g.NewState()
	run, err := s.Run(st, triggerID, rng)
	if err != nil {
		return nil, err
	}
	g.publish(st)
	return run, nil
}

// Run executes one cascade inside st. The trigger is resolved through the graph;
// an unknown trigger returns *NotFoundError and leaves st untouched.
func (s *Simulator) Run(st *SimulationState, triggerID string, rng RandomSource) (*CascadeRun, error) {
	g := st.graph
	resolved := g.Resolve(triggerID)
	trigger, ok := g.Component(resolved)
	if !ok {
		return nil, &NotFoundError{ID: triggerID}
	}

	run := newCascadeRun(s.newRunID(), trigger.ID, s.now())
	hops := HopDistances(g, trigger.ID)

	st.markProcessed(trigger.ID, StatusFailed)
	run.recordTrigger(trigger)
	logrus.Debugf("[t=%9.1fs] %s FAILED (trigger)", 0.0, trigger.ID)

	queue := NewEventQueue()
	for _, e := range g.Downstream(trigger.ID) {
		profile := s.profile(e.Kind)
		queue.Schedule(&PropagationEvent{
			DueTime:     profile.DelaySeconds,
			SourceID:    trigger.ID,
			TargetID:    e.To,
			Kind:        e.Kind,
			Probability: profile.Probability,
			Severity:    profile.Severity,
		})
	}

	maxEvents := s.maxEvents(g)
	cascadeLevel := 1
	for queue.Len() > 0 {
		if run.EventsProcessed >= maxEvents {
			run.Truncated = true
			logrus.Warnf("cascade from %s truncated after %d events with %d pending", trigger.ID, run.EventsProcessed, queue.Len())
			break
		}
		ev := queue.PopNext()
		run.EventsProcessed++

		_, known := s.Catalog.Lookup(ev.Kind)
		record := trace.AttemptRecord{
			Time:            ev.DueTime,
			SourceID:        ev.SourceID,
			TargetID:        ev.TargetID,
			Kind:            ev.Kind,
			FallbackProfile: !known,
			Probability:     clamp01(ev.Probability),
			Severity:        clamp01(ev.Severity),
		}

		if st.Processed(ev.TargetID) {
			record.Outcome = trace.OutcomeAlreadyProcessed
			st.Trace.RecordAttempt(record)
			continue
		}

		// draw < p: p=1 always propagates and p=0 never does
		record.Draw = rng.Float64()
		if record.Draw >= record.Probability {
			record.Outcome = trace.OutcomeNotPropagated
			st.Trace.RecordAttempt(record)
			logrus.Debugf("[t=%9.1fs] %s -[%s]-> %s not propagated (draw=%.3f p=%.3f)", ev.DueTime, ev.SourceID, ev.Kind, ev.TargetID, record.Draw, record.Probability)
			continue
		}
		record.Outcome = trace.OutcomePropagated
		st.Trace.RecordAttempt(record)

		target, _ := g.Component(ev.TargetID)
		severity := record.Severity
		status := classifySeverity(severity)
		st.markProcessed(target.ID, status)
		run.recordPropagation(target, ev, severity, status, cascadeLevel, hops[target.ID])
		logrus.Debugf("[t=%9.1fs] %s %s via %s from %s (severity=%.3f level=%d)", ev.DueTime, target.ID, status, ev.Kind, ev.SourceID, severity, cascadeLevel)

		for _, e := range g.Downstream(target.ID) {
			if st.Processed(e.To) {
				continue
			}
			profile := s.profile(e.Kind)
			queue.Schedule(&PropagationEvent{
				DueTime:     ev.DueTime + profile.DelaySeconds,
				SourceID:    target.ID,
				TargetID:    e.To,
				Kind:        e.Kind,
				Probability: clamp01(profile.Probability * severity),
				Severity:    clamp01(severity * profile.Severity),
			})
		}
		cascadeLevel++
	}

	run.EstimatedRecoveryHours = s.estimateRecovery(st)
	logrus.Infof("cascade from %s: %d affected, max level %d, business impact %.2f, recovery %.1fh",
		trigger.ID, run.TotalAffected, run.MaxCascadeLevel, run.TotalBusinessImpact, run.EstimatedRecoveryHours)

	if s.Observer != nil {
		s.Observer.ObserveRun(run)
	}
	return run, nil
}

// profile returns the clamped profile for kind, falling back to DefaultProfile.
func (s *Simulator) profile(kind string) DependencyProfile {
	p, known := s.Catalog.Lookup(kind)
	if !known {
		logrus.Debugf("unknown dependency kind %q, using default profile", kind)
	}
	return DependencyProfile{
		DelaySeconds: max(p.DelaySeconds, 0),
		Probability:  clamp01(p.Probability),
		Severity:     clamp01(p.Severity),
	}
}

// estimateRecovery returns the slowest recovery among FAILED and IMPACTED components.
func (s *Simulator) estimateRecovery(st *SimulationState) float64 {
	hours := 0.0
	for id, status := range st.statuses {
		if status != StatusFailed && status != StatusImpacted {
			continue
		}
		c, ok := st.graph.Component(id)
		if !ok {
			continue
		}
		hours = max(hours, s.Recovery.HoursFor(c.Type))
	}
	return hours
}

func (s *Simulator) maxEvents(g *Graph) int {
	if s.MaxEvents > 0 {
		return s.MaxEvents
	}
	factor := s.MaxEventsFactor
	if factor <= 0 {
		factor = DefaultMaxEventsFactor
	}
	return max(factor*(g.Len()+g.EdgeCount()), 1)
}

func (s *Simulator) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Simulator) newRunID() string {
	if s.NewRunID == nil {
		return uuid.NewString()
	}
	return s.NewRunID()
}

// clamp01 bounds v to [0,1]; NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
