package sim

import (
	"strconv"
)

// Status is the operational state of a component during a run.
type Status string

const (
	StatusOperational Status = "OPERATIONAL"
	StatusDegraded    Status = "DEGRADED"
	StatusImpacted    Status = "IMPACTED"
	StatusFailed      Status = "FAILED"
	StatusRecovered   Status = "RECOVERED"
)

// ApplicationType is the component type reported in CascadeRun.AffectedApplications.
const ApplicationType = "Application"

// DefaultBusinessImpact is used when a component carries no numeric businessImpact attribute.
const DefaultBusinessImpact = 5.0

// Attribute names read from twin records.
const (
	AttrBusinessImpact = "businessImpact"
	AttrCriticality    = "criticality"
)

// Component is a node of the infrastructure graph.
type Component struct {
	ID         string
	Name       string
	Type       string
	Attributes map[string]any
}

// BusinessImpact returns the numeric businessImpact attribute (0–100 by convention),
// or DefaultBusinessImpact when it is absent or not numeric.
func (c *Component) BusinessImpact() float64 {
	v, ok := c.Attributes[AttrBusinessImpact]
	if !ok {
		return DefaultBusinessImpact
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return DefaultBusinessImpact
}

// Criticality returns the criticality attribute, or "" when absent.
func (c *Component) Criticality() string {
	if s, ok := c.Attributes[AttrCriticality].(string); ok {
		return s
	}
	return ""
}

// classifySeverity maps an effective severity to the resulting status.
func classifySeverity(severity float64) Status {
	switch {
	case severity >= 0.9:
		return StatusFailed
	case severity >= 0.6:
		return StatusImpacted
	default:
		return StatusDegraded
	}
}
