// Aggregates the outcome of one cascade run: affected counts, business impact,
// recovery estimate and the chronological timeline.

package sim

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// TimelineEntry records one component's transition during a run.
type TimelineEntry struct {
	Time        float64 `json:"time" yaml:"time"` // simulated seconds since the trigger
	ComponentID string  `json:"componentId" yaml:"componentId"`
	Name        string  `json:"name" yaml:"name"`
	Type        string  `json:"type" yaml:"type"`
	Status      Status  `json:"status" yaml:"status"`
	// CascadeLevel is the propagation ordinal: the trigger is 0 and each successful
	// propagation in processing order takes the next value. It is not a graph distance;
	// see HopDistance for that.
	CascadeLevel int     `json:"cascadeLevel" yaml:"cascadeLevel"`
	HopDistance  int     `json:"hopDistance" yaml:"hopDistance"`
	Severity     float64 `json:"severity" yaml:"severity"`
	Kind         string  `json:"kind,omitempty" yaml:"kind,omitempty"`         // empty for the trigger
	SourceID     string  `json:"sourceId,omitempty" yaml:"sourceId,omitempty"` // empty for the trigger
}

// CascadeRun is the report of one simulation from a trigger component.
type CascadeRun struct {
	RunID                  string          `json:"runId" yaml:"runId"`
	TriggerID              string          `json:"triggerId" yaml:"triggerId"`
	StartedAt              time.Time       `json:"startedAt" yaml:"startedAt"`
	TotalAffected          int             `json:"totalAffected" yaml:"totalAffected"` // includes the trigger
	DirectImpacts          int             `json:"directImpacts" yaml:"directImpacts"` // successful propagations
	MaxCascadeLevel        int             `json:"maxCascadeLevel" yaml:"maxCascadeLevel"`
	MaxSeverity            float64         `json:"maxSeverity" yaml:"maxSeverity"`
	TotalBusinessImpact    float64         `json:"totalBusinessImpact" yaml:"totalBusinessImpact"`
	EstimatedRecoveryHours float64         `json:"estimatedRecoveryHours" yaml:"estimatedRecoveryHours"`
	AffectedByType         map[string]int  `json:"affectedByType" yaml:"affectedByType"`
	AffectedApplications   []string        `json:"affectedApplications" yaml:"affectedApplications"`
	Timeline               []TimelineEntry `json:"timeline" yaml:"timeline"`
	EventsProcessed        int             `json:"eventsProcessed" yaml:"eventsProcessed"`
	Truncated              bool            `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

func newCascadeRun(runID, triggerID string, startedAt time.Time) *CascadeRun {
	return &CascadeRun{
		RunID:                runID,
		TriggerID:            triggerID,
		StartedAt:            startedAt,
		AffectedByType:       make(map[string]int),
		AffectedApplications: make([]string, 0),
		Timeline:             make([]TimelineEntry, 0),
	}
}

// recordTrigger registers the trigger as the level-0 failure.
func (r *CascadeRun) recordTrigger(c *Component) {
	r.TotalAffected = 1
	r.MaxSeverity = 1.0
	r.TotalBusinessImpact += c.BusinessImpact()
	r.Timeline = append(r.Timeline, TimelineEntry{
		ComponentID: c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Status:      StatusFailed,
		Severity:    1.0,
	})
}

// recordPropagation folds one successful propagation into the report.
func (r *CascadeRun) recordPropagation(c *Component, ev *PropagationEvent, severity float64, status Status, level, hops int) {
	r.TotalAffected++
	r.DirectImpacts++
	r.AffectedByType[c.Type]++
	if c.Type == ApplicationType {
		r.AffectedApplications = append(r.AffectedApplications, c.ID)
	}
	r.TotalBusinessImpact += c.BusinessImpact() * severity
	r.MaxSeverity = max(r.MaxSeverity, severity)
	r.MaxCascadeLevel = max(r.MaxCascadeLevel, level)
	r.Timeline = append(r.Timeline, TimelineEntry{
		Time:         ev.DueTime,
		ComponentID:  c.ID,
		Name:         c.Name,
		Type:         c.Type,
		Status:       status,
		CascadeLevel: level,
		HopDistance:  hops,
		Severity:     severity,
		Kind:         ev.Kind,
		SourceID:     ev.SourceID,
	})
}

// Print displays the run summary and timeline.
func (r *CascadeRun) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Cascade Metrics ===")
	fmt.Fprintf(w, "Run ID               : %s\n", r.RunID)
	fmt.Fprintf(w, "Trigger              : %s\n", r.TriggerID)
	fmt.Fprintf(w, "Total Affected       : %d\n", r.TotalAffected)
	fmt.Fprintf(w, "Direct Impacts       : %d\n", r.DirectImpacts)
	fmt.Fprintf(w, "Max Cascade Level    : %d\n", r.MaxCascadeLevel)
	fmt.Fprintf(w, "Max Severity         : %.2f\n", r.MaxSeverity)
	fmt.Fprintf(w, "Business Impact      : %.2f\n", r.TotalBusinessImpact)
	fmt.Fprintf(w, "Est. Recovery        : %.1f hours\n", r.EstimatedRecoveryHours)
	if r.Truncated {
		fmt.Fprintf(w, "Truncated            : after %d events\n", r.EventsProcessed)
	}
	if len(r.AffectedByType) > 0 {
		types := make([]string, 0, len(r.AffectedByType))
		for t := range r.AffectedByType {
			types = append(types, t)
		}
		sort.Strings(types)
		fmt.Fprintln(w, "Affected By Type     :")
		for _, t := range types {
			fmt.Fprintf(w, "  %-18s : %d\n", t, r.AffectedByType[t])
		}
	}
	if len(r.AffectedApplications) > 0 {
		fmt.Fprintf(w, "Applications         : %v\n", r.AffectedApplications)
	}
	fmt.Fprintln(w, "=== Timeline ===")
	for _, e := range r.Timeline {
		if e.SourceID == "" {
			fmt.Fprintf(w, "[%8.1fs] L%-3d %-10s %s (%s)\n", e.Time, e.CascadeLevel, e.Status, e.ComponentID, e.Type)
			continue
		}
		fmt.Fprintf(w, "[%8.1fs] L%-3d %-10s %s (%s) <-[%s]- %s\n", e.Time, e.CascadeLevel, e.Status, e.ComponentID, e.Type, e.Kind, e.SourceID)
	}
}

// AffectedComponent is one row of the ranked impact projection.
type AffectedComponent struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Type           string  `json:"type" yaml:"type"`
	Status         Status  `json:"status" yaml:"status"`
	BusinessImpact float64 `json:"businessImpact" yaml:"businessImpact"`
}

// AffectedComponents lists every non-OPERATIONAL component of view, sorted by
// business impact descending, ties by id ascending.
func AffectedComponents(view StatusView) []AffectedComponent {
	out := make([]AffectedComponent, 0)
	for _, id := range view.IDs() {
		status := view.Status(id)
		if status == StatusOperational {
			continue
		}
		c, ok := view.Component(id)
		if !ok {
			continue
		}
		out = append(out, AffectedComponent{
			ID:             c.ID,
			Name:           c.Name,
			Type:           c.Type,
			Status:         status,
			BusinessImpact: c.BusinessImpact(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BusinessImpact != out[j].BusinessImpact {
			return out[i].BusinessImpact > out[j].BusinessImpact
		}
		return out[i].ID < out[j].ID
	})
	return out
}
