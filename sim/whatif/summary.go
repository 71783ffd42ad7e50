package whatif

import (
	"fmt"
	"io"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
)

// ComponentHit is how often one component was affected across the runs.
type ComponentHit struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Type        string     `json:"type" yaml:"type"`
	Hits        int        `json:"hits" yaml:"hits"`
	HitRate     float64    `json:"hitRate" yaml:"hitRate"`
	WorstStatus sim.Status `json:"worstStatus" yaml:"worstStatus"`
}

// Summary aggregates a batch of what-if runs from one trigger.
type Summary struct {
	TriggerID          string         `json:"triggerId" yaml:"triggerId"`
	Runs               int            `json:"runs" yaml:"runs"`
	Seeds              []int64        `json:"seeds" yaml:"seeds"`
	MeanAffected       float64        `json:"meanAffected" yaml:"meanAffected"`
	P50Affected        float64        `json:"p50Affected" yaml:"p50Affected"`
	P95Affected        float64        `json:"p95Affected" yaml:"p95Affected"`
	MaxAffected        int            `json:"maxAffected" yaml:"maxAffected"`
	MeanBusinessImpact float64        `json:"meanBusinessImpact" yaml:"meanBusinessImpact"`
	P95BusinessImpact  float64        `json:"p95BusinessImpact" yaml:"p95BusinessImpact"`
	MaxBusinessImpact  float64        `json:"maxBusinessImpact" yaml:"maxBusinessImpact"`
	MeanRecoveryHours  float64        `json:"meanRecoveryHours" yaml:"meanRecoveryHours"`
	TruncatedRuns      int            `json:"truncatedRuns,omitempty" yaml:"truncatedRuns,omitempty"`
	Components         []ComponentHit `json:"components" yaml:"components"` // by hits desc, id asc

	// Results holds the individual runs in seed order.
	Results []*sim.CascadeRun `json:"-" yaml:"-"`
}

// Print displays the summary and the per-component hit rates.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== What-If Summary ===")
	fmt.Fprintf(w, "Trigger              : %s\n", s.TriggerID)
	fmt.Fprintf(w, "Runs                 : %d\n", s.Runs)
	fmt.Fprintf(w, "Mean Affected        : %.2f\n", s.MeanAffected)
	fmt.Fprintf(w, "P50 / P95 Affected   : %.1f / %.1f\n", s.P50Affected, s.P95Affected)
	fmt.Fprintf(w, "Max Affected         : %d\n", s.MaxAffected)
	fmt.Fprintf(w, "Mean Business Impact : %.2f\n", s.MeanBusinessImpact)
	fmt.Fprintf(w, "P95 Business Impact  : %.2f\n", s.P95BusinessImpact)
	fmt.Fprintf(w, "Max Business Impact  : %.2f\n", s.MaxBusinessImpact)
	fmt.Fprintf(w, "Mean Recovery        : %.1f hours\n", s.MeanRecoveryHours)
	if s.TruncatedRuns > 0 {
		fmt.Fprintf(w, "Truncated Runs       : %d\n", s.TruncatedRuns)
	}
	fmt.Fprintln(w, "=== Hit Rates ===")
	for _, c := range s.Components {
		fmt.Fprintf(w, "%6.1f%%  %-10s %s (%s)\n", 100*c.HitRate, c.WorstStatus, c.ID, c.Type)
	}
}
