package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penserai/tesseraidb-examples-sub001/sim/internal/testutil"
)

func TestLoadScenario(t *testing.T) {
	path := testutil.WriteTempFile(t, "outage.yaml", `
snapshot: snapshots/site.yaml
trigger: sub-1
seed: 7
max_events: 500
runs: 20
catalog:
  cools:
    delay_seconds: 60
    probability: 1
    severity: 0.9
recovery:
  Substation: 36
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "snapshots", "site.yaml"), sc.Snapshot)
	assert.Equal(t, "sub-1", sc.Trigger)
	require.NotNil(t, sc.Seed)
	assert.Equal(t, int64(7), *sc.Seed)
	require.NotNil(t, sc.Runs)
	assert.Equal(t, 20, *sc.Runs)

	cools, _ := sc.EffectiveCatalog().Lookup("cools")
	assert.Equal(t, DependencyProfile{DelaySeconds: 60, Probability: 1, Severity: 0.9}, cools)
	hosts, known := sc.EffectiveCatalog().Lookup("hosts")
	assert.True(t, known)
	assert.Equal(t, 1.0, hosts.Probability)
	assert.Equal(t, 36.0, sc.EffectiveRecovery().HoursFor("Substation"))
	assert.Equal(t, 4.0, sc.EffectiveRecovery().HoursFor("UPS"))
}

func TestLoadScenario_UnsetFieldsStayNil(t *testing.T) {
	sc, err := LoadScenario(testutil.WriteTempFile(t, "s.yaml", "trigger: x\n"))
	require.NoError(t, err)
	assert.Nil(t, sc.Seed)
	assert.Nil(t, sc.MaxEvents)
	assert.Nil(t, sc.Runs)
	assert.Empty(t, sc.Snapshot)
	assert.Equal(t, DefaultCatalog(), sc.EffectiveCatalog())
}

func TestLoadScenario_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "trigger: x\nhorizon: 5\n"},
		{"both sources", "snapshot: a.yaml\ndgraph: localhost:9080\n"},
		{"zero runs", "runs: 0\n"},
		{"negative max events", "max_events: -1\n"},
		{"bad catalog profile", "catalog:\n  hosts:\n    probability: 1.5\n"},
		{"negative recovery", "recovery:\n  UPS: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(testutil.WriteTempFile(t, "s.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	assert.Error(t, err)
}
