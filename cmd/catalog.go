package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
)

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#00FFFF"))

var showRecovery bool // Also print the recovery table

// catalogCmd prints the effective dependency catalog and recovery table
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective dependency catalog as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := applyScenario(cmd); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if err := printCatalog(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Could not print catalog: %v", err)
		}
	},
}

func printCatalog(w io.Writer) error {
	s, _, err := newSimulator()
	if err != nil {
		return err
	}
	data, err := sim.MarshalCatalog(s.Catalog)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if !showRecovery {
		return nil
	}
	rec, err := yaml.Marshal(struct {
		Hours sim.RecoveryTable `yaml:"hours"`
	}{s.Recovery})
	if err != nil {
		return fmt.Errorf("encode recovery table: %w", err)
	}
	_, err = fmt.Fprintf(w, "---\n%s", rec)
	return err
}

func init() {
	catalogCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario whose catalog and recovery overrides apply")
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML dependency catalog layered over the defaults")
	catalogCmd.Flags().StringVar(&recoveryPath, "recovery", "", "YAML recovery table layered over the defaults")
	catalogCmd.Flags().BoolVar(&showRecovery, "recovery-table", false, "Also print the recovery table as a second YAML document")
	rootCmd.AddCommand(catalogCmd)
}
