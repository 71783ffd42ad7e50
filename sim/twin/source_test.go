package twin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
	"github.com/penserai/tesseraidb-examples-sub001/sim/internal/testutil"
)

func TestFileSource_LoadsGoldenSnapshot(t *testing.T) {
	src := FileSource{Path: testutil.TestdataPath(t, "snapshots", "power_chain.yaml")}

	g, err := LoadGraph(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 7, g.Len())
	assert.Equal(t, 5, g.EdgeCount())
}

func TestFileSource_Errors(t *testing.T) {
	_, err := FileSource{}.Load(context.Background())
	assert.Error(t, err)

	_, err = FileSource{Path: "/nonexistent.yaml"}.Load(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileSource{Path: testutil.TestdataPath(t, "snapshots", "power_chain.yaml")}.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeDgraphJSON(t *testing.T) {
	data := []byte(`{"components":[
		{"id":"urn:twin:ups-1","name":"UPS 1","type":"UPS","businessImpact":40,"criticality":"high",
		 "relationships":[{"kind":"https://twin.example/rel#powers","target":{"id":"urn:twin:rack-1"}}]},
		{"id":"urn:twin:rack-1","name":"Rack 1","type":"ServerRack"}
	]}`)

	snap, err := DecodeDgraphJSON(data)
	require.NoError(t, err)
	require.Len(t, snap.Components, 2)

	ups := snap.Components[0]
	assert.Equal(t, 40.0, ups.Attributes[sim.AttrBusinessImpact])
	assert.Equal(t, "high", ups.Attributes[sim.AttrCriticality])
	assert.Equal(t, []sim.RelationshipRecord{{
		OtherID: "urn:twin:rack-1", Kind: "https://twin.example/rel#powers", Direction: sim.DirectionOutgoing,
	}}, ups.Relationships)

	rack := snap.Components[1]
	assert.NotContains(t, rack.Attributes, sim.AttrBusinessImpact)

	g := sim.Build(snap)
	assert.Equal(t, []sim.Edge{{From: "urn:twin:ups-1", To: "urn:twin:rack-1", Kind: "powers"}}, g.Downstream("urn:twin:ups-1"))
	c, _ := g.Component("urn:twin:rack-1")
	assert.Equal(t, sim.DefaultBusinessImpact, c.BusinessImpact())
}

func TestDecodeDgraphJSON_RelationshipWithoutTargetIsDroppedByBuild(t *testing.T) {
	snap, err := DecodeDgraphJSON([]byte(`{"components":[
		{"id":"a","type":"UPS","relationships":[{"kind":"powers"}]}
	]}`))
	require.NoError(t, err)

	g := sim.Build(snap)
	assert.Equal(t, 1, g.Dropped())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestDecodeDgraphJSON_Malformed(t *testing.T) {
	_, err := DecodeDgraphJSON([]byte(`{"components": {`))
	assert.Error(t, err)
}

func TestDgraphSource_RequiresClient(t *testing.T) {
	_, err := DgraphSource{}.Load(context.Background())
	assert.Error(t, err)
}

func TestDial_DoesNotConnectEagerly(t *testing.T) {
	dg, conn, err := Dial("localhost:9080")
	require.NoError(t, err)
	require.NotNil(t, dg)
	assert.NoError(t, conn.Close())
}
