package sim

import "github.com/penserai/tesseraidb-examples-sub001/sim/trace"

// StatusView is read access to component statuses, satisfied by both the Graph's
// published statuses and a per-run SimulationState.
type StatusView interface {
	IDs() []string
	Component(id string) (*Component, bool)
	Status(id string) Status
}

// SimulationState is the mutable state owned by exactly one run: component
// statuses and the processed set. It references its Graph read-only.
//
// Thread-safety: NOT thread-safe. Distinct states over the same Graph may be used
// from different goroutines.
type SimulationState struct {
	graph     *Graph
	statuses  map[string]Status
	processed map[string]bool

	// Trace, when non-nil and enabled, receives one record per popped event.
	Trace *trace.SimulationTrace
}

func newSimulationState(g *Graph) *SimulationState {
	return &SimulationState{
		graph:     g,
		statuses:  make(map[string]Status),
		processed: make(map[string]bool),
	}
}

// Status returns the run-local status of id; untouched components are OPERATIONAL.
func (s *SimulationState) Status(id string) Status {
	if st, ok := s.statuses[id]; ok {
		return st
	}
	return StatusOperational
}

// IDs returns the graph's component ids.
func (s *SimulationState) IDs() []string {
	return s.graph.IDs()
}

// Component returns the graph's component with the given id.
func (s *SimulationState) Component(id string) (*Component, bool) {
	return s.graph.Component(id)
}

// Processed reports whether id has already failed in this run.
func (s *SimulationState) Processed(id string) bool {
	return s.processed[id]
}

func (s *SimulationState) markProcessed(id string, status Status) {
	s.processed[id] = true
	s.statuses[id] = status
}

// Reset clears the state for reuse with the same graph.
func (s *SimulationState) Reset() {
	clear(s.statuses)
	clear(s.processed)
}
