// Package trace provides per-attempt recording of failure propagation.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Outcome classifies what happened when a propagation event was popped.
type Outcome string

const (
	// OutcomePropagated means the draw succeeded and the target failed.
	OutcomePropagated Outcome = "propagated"
	// OutcomeNotPropagated means the draw exceeded the effective probability.
	OutcomeNotPropagated Outcome = "not-propagated"
	// OutcomeAlreadyProcessed means the target had already failed earlier in the run.
	OutcomeAlreadyProcessed Outcome = "already-processed"
)

// AttemptRecord captures a single propagation attempt across one edge.
type AttemptRecord struct {
	Time            float64 // simulated seconds since the trigger
	SourceID        string
	TargetID        string
	Kind            string
	FallbackProfile bool    // kind was absent from the catalog
	Probability     float64 // effective, clamped
	Severity        float64 // effective, clamped
	Draw            float64 // uniform sample; 0 when no draw was taken
	Outcome         Outcome
}
