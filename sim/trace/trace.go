package trace

// TraceLevel controls the verbosity of propagation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelAttempts captures every popped propagation event.
	TraceLevelAttempts TraceLevel = "attempts"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelAttempts: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects attempt records during one run.
type SimulationTrace struct {
	Config   TraceConfig
	Attempts []AttemptRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Attempts: make([]AttemptRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelAttempts
}

// RecordAttempt appends an attempt record if tracing is enabled.
func (st *SimulationTrace) RecordAttempt(record AttemptRecord) {
	if !st.Enabled() {
		return
	}
	st.Attempts = append(st.Attempts, record)
}
