package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAttempts    int            `json:"totalAttempts"`
	Propagated       int            `json:"propagated"`
	NotPropagated    int            `json:"notPropagated"`
	AlreadyProcessed int            `json:"alreadyProcessed"`
	FallbackAttempts int            `json:"fallbackAttempts"`
	KindDistribution map[string]int `json:"kindDistribution"` // dependency kind → attempts across it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAttempts = len(st.Attempts)
	for _, a := range st.Attempts {
		switch a.Outcome {
		case OutcomePropagated:
			summary.Propagated++
		case OutcomeNotPropagated:
			summary.NotPropagated++
		case OutcomeAlreadyProcessed:
			summary.AlreadyProcessed++
		}
		if a.FallbackProfile {
			summary.FallbackAttempts++
		}
		summary.KindDistribution[a.Kind]++
	}
	return summary
}
