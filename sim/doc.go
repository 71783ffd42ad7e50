// Package sim provides the discrete-event failure-propagation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - graph.go: component graph built once from a twin snapshot (canonical edge direction)
//   - catalog.go: dependency-kind → propagation profile (delay, probability, severity)
//   - event.go / queue.go: propagation events and the time-ordered event queue
//   - simulator.go: the event loop, probabilistic propagation and severity decay
//   - metrics.go: CascadeRun report, timeline and the AffectedComponents projection
//   - scenario.go: YAML bundle of snapshot, trigger, seed and table overrides
//
// # Architecture
//
// A Graph is read-only after Build. Each run owns a SimulationState (status map and
// processed set), so independent runs over one Graph can execute concurrently through
// Simulator.Run. Simulate is the convenience entry point that additionally publishes the
// run's final statuses to the Graph for AffectedComponents; it must not be called
// concurrently on the same Graph.
//
// Sub-packages:
//   - sim/trace/: per-attempt propagation trace recording
//   - sim/whatif/: concurrent multi-seed what-if runs and their summary
//   - sim/twin/: snapshot sources (files, Dgraph)
//   - sim/telemetry/: Prometheus run metrics
package sim
