// Package testutil provides shared test infrastructure for the cascade simulator.
// It consolidates golden dataset types, fixed random sources and assertion helpers
// used across sim/ and its sub-package tests. It does not import sim/.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/cascade_golden.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single cascade scenario from the golden dataset.
type GoldenTestCase struct {
	Name     string        `json:"name"`
	Snapshot string        `json:"snapshot"` // relative to testdata/
	Trigger  string        `json:"trigger"`
	Seed     int64         `json:"seed"`
	Metrics  GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected report of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	TotalAffected   int `json:"total_affected"`
	DirectImpacts   int `json:"direct_impacts"`
	MaxCascadeLevel int `json:"max_cascade_level"`

	// Floating-point metrics, compared with relative tolerance
	MaxSeverity            float64 `json:"max_severity"`
	TotalBusinessImpact    float64 `json:"total_business_impact"`
	EstimatedRecoveryHours float64 `json:"estimated_recovery_hours"`

	AffectedByType       map[string]int `json:"affected_by_type"`
	AffectedApplications []string       `json:"affected_applications"`
}

// TestdataPath resolves a path under the repo root testdata/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, elem ...string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	parts := append([]string{filepath.Dir(thisFile), "..", "..", "..", "testdata"}, elem...)
	return filepath.Join(parts...)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "cascade_golden.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// WriteTempFile writes content to name inside a per-test temp dir and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
