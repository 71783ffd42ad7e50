package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
	"github.com/penserai/tesseraidb-examples-sub001/sim/telemetry"
	"github.com/penserai/tesseraidb-examples-sub001/sim/trace"
	"github.com/penserai/tesseraidb-examples-sub001/sim/twin"
)

var (
	scenarioPath string        // YAML scenario supplying defaults for the flags below
	scenario     *sim.Scenario // loaded by applyScenario

	// Snapshot source
	snapshotPath string // YAML/JSON twin snapshot
	dgraphAddr   string // Dgraph alpha address; overrides --snapshot

	// Cascade configuration
	triggerID    string // Component whose failure starts the cascade
	seed         int64  // Seed for propagation draws
	catalogPath  string // Dependency catalog overrides (YAML)
	recoveryPath string // Recovery table overrides (YAML)
	maxEvents    int    // Hard cap on popped events; 0 derives it from graph size

	// Output
	logLevel        string // Log verbosity level
	outputFormat    string // text or json
	traceAttempts   bool   // Record and summarize every propagation attempt
	metricsTextfile string // Write Prometheus metrics here after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Discrete-event failure propagation simulator for digital twins",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates one cascade and prints its report
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the cascade from a failed component",
	Run: func(cmd *cobra.Command, args []string) {
		if err := prepareRun(cmd); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if err := runCascade(cmd.Context(), cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runReport is the JSON shape of `run`.
type runReport struct {
	Run   *sim.CascadeRun     `json:"run"`
	Trace *trace.TraceSummary `json:"trace,omitempty"`
}

func runCascade(ctx context.Context, w io.Writer) error {
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	s, registry, err := newSimulator()
	if err != nil {
		return err
	}

	st := g.NewState()
	if traceAttempts {
		st.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelAttempts})
	}
	rng := sim.PropagationRNG(seed)
	run, err := s.Run(st, triggerID, rng)
	if err != nil {
		return err
	}

	report := runReport{Run: run}
	if st.Trace.Enabled() {
		report.Trace = trace.Summarize(st.Trace)
	}
	if err := writeReport(w, report, func(w io.Writer) {
		fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Cascade from %s", run.TriggerID)))
		run.Print(w)
		if report.Trace != nil {
			printTraceSummary(w, report.Trace)
		}
	}); err != nil {
		return err
	}
	return flushMetrics(registry)
}

// applyScenario loads --scenario and copies its values into every flag the
// user did not set explicitly.
func applyScenario(cmd *cobra.Command) error {
	scenario = nil
	if scenarioPath == "" {
		return nil
	}
	sc, err := sim.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}
	scenario = sc

	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && !f.Changed
	}
	if sc.Snapshot != "" && unset("snapshot") && !cmd.Flags().Changed("dgraph") {
		snapshotPath = sc.Snapshot
	}
	if sc.Dgraph != "" && unset("dgraph") && !cmd.Flags().Changed("snapshot") {
		dgraphAddr = sc.Dgraph
	}
	if sc.Trigger != "" && unset("trigger") {
		triggerID = sc.Trigger
	}
	if sc.Seed != nil && unset("seed") {
		seed = *sc.Seed
	}
	if sc.MaxEvents != nil && unset("max-events") {
		maxEvents = *sc.MaxEvents
	}
	if sc.Runs != nil && unset("runs") {
		whatIfRuns = *sc.Runs
	}
	logrus.Infof("loaded scenario %s", scenarioPath)
	return nil
}

// prepareRun applies the scenario and checks the inputs every cascade needs.
func prepareRun(cmd *cobra.Command) error {
	if err := applyScenario(cmd); err != nil {
		return err
	}
	if triggerID == "" {
		return fmt.Errorf("--trigger is required")
	}
	return nil
}

// loadGraph reads the twin from Dgraph when --dgraph is set, else from --snapshot.
func loadGraph(ctx context.Context) (*sim.Graph, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var (
		src    twin.Source
		origin string
	)
	switch {
	case dgraphAddr != "":
		dg, conn, err := twin.Dial(dgraphAddr)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		src, origin = twin.DgraphSource{Client: dg}, "dgraph "+dgraphAddr
	case snapshotPath != "":
		src, origin = twin.FileSource{Path: snapshotPath}, snapshotPath
	default:
		return nil, fmt.Errorf("one of --snapshot or --dgraph is required")
	}

	g, err := twin.LoadGraph(ctx, src)
	if err != nil {
		return nil, err
	}
	warnDropped(g, origin)
	return g, nil
}

// warnDropped reports records Build discarded as malformed.
func warnDropped(g *sim.Graph, origin string) {
	if g.Dropped() > 0 {
		logrus.Warnf("dropped %d malformed records from %s", g.Dropped(), origin)
	}
}

// newSimulator builds a Simulator from the scenario, catalog, recovery and metrics flags.
// Catalog and recovery files replace the scenario's tables, both layered over the defaults.
// The registry is nil unless --metrics-textfile is set.
func newSimulator() (*sim.Simulator, *telemetry.Registry, error) {
	catalog := sim.DefaultCatalog()
	recovery := sim.DefaultRecoveryTable()
	if scenario != nil {
		catalog = scenario.EffectiveCatalog()
		recovery = scenario.EffectiveRecovery()
	}
	if catalogPath != "" {
		c, err := sim.LoadCatalog(catalogPath)
		if err != nil {
			return nil, nil, err
		}
		catalog = c
	}
	if recoveryPath != "" {
		r, err := sim.LoadRecoveryTable(recoveryPath)
		if err != nil {
			return nil, nil, err
		}
		recovery = r
	}

	s := sim.NewSimulator(catalog, recovery)
	s.MaxEvents = maxEvents
	var registry *telemetry.Registry
	if metricsTextfile != "" {
		registry = telemetry.NewRegistry()
		s.Observer = registry
	}
	return s, registry, nil
}

func flushMetrics(registry *telemetry.Registry) error {
	if registry == nil {
		return nil
	}
	if err := registry.WriteTextfile(metricsTextfile); err != nil {
		return err
	}
	logrus.Infof("metrics written to %s", metricsTextfile)
	return nil
}

// writeReport emits v as indented JSON or calls text, per --format.
func writeReport(w io.Writer, v any, text func(io.Writer)) error {
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "":
		text(w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", outputFormat)
	}
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace ===")
	fmt.Fprintf(w, "Attempts             : %d\n", s.TotalAttempts)
	fmt.Fprintf(w, "Propagated           : %d\n", s.Propagated)
	fmt.Fprintf(w, "Not Propagated       : %d\n", s.NotPropagated)
	fmt.Fprintf(w, "Already Processed    : %d\n", s.AlreadyProcessed)
	fmt.Fprintf(w, "Default Profile Used : %d\n", s.FallbackAttempts)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSourceFlags registers the snapshot and cascade flags shared by run, affected and whatif.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file supplying defaults for unset flags")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Path to a YAML or JSON twin snapshot")
	cmd.Flags().StringVar(&dgraphAddr, "dgraph", "", "Dgraph alpha address (host:port) to load the twin from")
	cmd.Flags().StringVar(&triggerID, "trigger", "", "Component id whose failure starts the cascade")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for propagation draws")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML dependency catalog layered over the defaults")
	cmd.Flags().StringVar(&recoveryPath, "recovery", "", "YAML recovery table layered over the defaults")
	cmd.Flags().IntVar(&maxEvents, "max-events", 0, "Cap on processed events per run (0 derives it from graph size)")
	cmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")
	cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addSourceFlags(runCmd)
	runCmd.Flags().BoolVar(&traceAttempts, "trace", false, "Record every propagation attempt and print a summary")

	rootCmd.AddCommand(runCmd)
}
