package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
)

// affectedCmd ranks the components a cascade leaves non-operational
var affectedCmd = &cobra.Command{
	Use:   "affected",
	Short: "Simulate a cascade and list affected components by business impact",
	Run: func(cmd *cobra.Command, args []string) {
		if err := prepareRun(cmd); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if err := listAffected(cmd.Context(), cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

func listAffected(ctx context.Context, w io.Writer) error {
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	s, registry, err := newSimulator()
	if err != nil {
		return err
	}
	rng := sim.PropagationRNG(seed)
	run, err := s.Simulate(g, triggerID, rng)
	if err != nil {
		return err
	}

	affected := sim.AffectedComponents(g)
	if err := writeReport(w, affected, func(w io.Writer) {
		fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Affected by %s (%d)", run.TriggerID, len(affected))))
		for i, a := range affected {
			fmt.Fprintf(w, "%3d. %-10s %8.2f  %s (%s)\n", i+1, a.Status, a.BusinessImpact, a.ID, a.Type)
		}
	}); err != nil {
		return err
	}
	return flushMetrics(registry)
}

func init() {
	addSourceFlags(affectedCmd)
	rootCmd.AddCommand(affectedCmd)
}
