package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penserai/tesseraidb-examples-sub001/sim/whatif"
)

var (
	whatIfRuns        int // Number of independent runs
	whatIfConcurrency int // Runs in flight; 0 means GOMAXPROCS
)

// whatifCmd repeats a cascade under many seeds and reports hit rates
var whatifCmd = &cobra.Command{
	Use:   "whatif",
	Short: "Repeat a cascade under derived seeds and summarize how often each component fails",
	Run: func(cmd *cobra.Command, args []string) {
		if err := prepareRun(cmd); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if err := runWhatIf(cmd.Context(), cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("What-if failed: %v", err)
		}
	},
}

func runWhatIf(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if whatIfRuns < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", whatIfRuns)
	}
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	s, registry, err := newSimulator()
	if err != nil {
		return err
	}

	summary, err := whatif.NewRunner(s, whatIfConcurrency).Run(ctx, g, triggerID, whatif.Seeds(seed, whatIfRuns))
	if err != nil {
		return err
	}
	if err := writeReport(w, summary, func(w io.Writer) {
		fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("What-if from %s (%d runs)", summary.TriggerID, summary.Runs)))
		summary.Print(w)
	}); err != nil {
		return err
	}
	return flushMetrics(registry)
}

func init() {
	addSourceFlags(whatifCmd)
	whatifCmd.Flags().IntVar(&whatIfRuns, "runs", 100, "Number of independent runs")
	whatifCmd.Flags().IntVar(&whatIfConcurrency, "concurrency", 0, "Runs executed in parallel (0 means GOMAXPROCS)")
	rootCmd.AddCommand(whatifCmd)
}
