package sim

import "fmt"

// PropagationEvent is a pending attempt to propagate a failure across one edge.
// Probability and Severity are effective values, already decayed along the path.
type PropagationEvent struct {
	DueTime     float64 // simulated seconds since the trigger
	SourceID    string
	TargetID    string
	Kind        string
	Probability float64
	Severity    float64
	Seq         uint64 // insertion order, assigned by EventQueue.Schedule
}

func (e *PropagationEvent) String() string {
	return fmt.Sprintf("%s -[%s]-> %s @%.1fs p=%.3f s=%.3f", e.SourceID, e.Kind, e.TargetID, e.DueTime, e.Probability, e.Severity)
}
