package twin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/dgo/v210"
	"github.com/dgraph-io/dgo/v210/protos/api"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
)

// Schema is the Dgraph schema DefaultQuery reads. Relationships are reified as
// nodes so each one carries its own kind.
const Schema = `
	twin.id: string @index(exact) .
	twin.name: string .
	twin.type: string @index(exact) .
	twin.businessImpact: float .
	twin.criticality: string .
	twin.relationship: [uid] .
	rel.kind: string .
	rel.target: uid .
	type Component {
		twin.id
		twin.name
		twin.type
		twin.businessImpact
		twin.criticality
		twin.relationship
	}
	type Relationship {
		rel.kind
		rel.target
	}
`

// DefaultQuery fetches every component with its outgoing relationships.
const DefaultQuery = `{
	components(func: type(Component)) {
		id: twin.id
		name: twin.name
		type: twin.type
		businessImpact: twin.businessImpact
		criticality: twin.criticality
		relationships: twin.relationship {
			kind: rel.kind
			target: rel.target { id: twin.id }
		}
	}
}`

// Dial connects to a Dgraph alpha at address over plaintext gRPC. The caller
// closes the returned connection.
func Dial(address string) (*dgo.Dgraph, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to Dgraph at %s: %w", address, err)
	}
	return dgo.NewDgraphClient(api.NewDgraphClient(conn)), conn, nil
}

// ApplySchema installs Schema on the cluster.
func ApplySchema(ctx context.Context, dg *dgo.Dgraph) error {
	if err := dg.Alter(ctx, &api.Operation{Schema: Schema}); err != nil {
		return fmt.Errorf("set twin schema: %w", err)
	}
	return nil
}

// DgraphSource loads a snapshot with a read-only Dgraph query. The query must
// return a "components" block shaped like DefaultQuery's.
type DgraphSource struct {
	Client *dgo.Dgraph
	Query  string            // DefaultQuery when empty
	Vars   map[string]string // query variables, if Query declares any
}

// Load runs the query in a read-only transaction and decodes the response.
func (s DgraphSource) Load(ctx context.Context) (*sim.Snapshot, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("dgraph source has no client")
	}
	query := s.Query
	if query == "" {
		query = DefaultQuery
	}

	txn := s.Client.NewReadOnlyTxn()
	defer txn.Discard(ctx)

	var (
		resp *api.Response
		err  error
	)
	if len(s.Vars) > 0 {
		resp, err = txn.QueryWithVars(ctx, query, s.Vars)
	} else {
		resp, err = txn.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("query twin components: %w", err)
	}
	snap, err := DecodeDgraphJSON(resp.Json)
	if err != nil {
		return nil, err
	}
	logrus.Infof("loaded %d components from Dgraph", len(snap.Components))
	return snap, nil
}

type dgraphComponent struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Type           string               `json:"type"`
	BusinessImpact *float64             `json:"businessImpact"`
	Criticality    string               `json:"criticality"`
	Relationships  []dgraphRelationship `json:"relationships"`
}

type dgraphRelationship struct {
	Kind   string `json:"kind"`
	Target struct {
		ID string `json:"id"`
	} `json:"target"`
}

// DecodeDgraphJSON converts a DefaultQuery-shaped response into a snapshot.
// Every relationship is outgoing from the component that holds it.
func DecodeDgraphJSON(data []byte) (*sim.Snapshot, error) {
	var result struct {
		Components []dgraphComponent `json:"components"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode Dgraph response: %w", err)
	}

	snap := &sim.Snapshot{Components: make([]sim.ComponentRecord, 0, len(result.Components))}
	for _, c := range result.Components {
		rec := sim.ComponentRecord{
			ID:         c.ID,
			Name:       c.Name,
			Type:       c.Type,
			Attributes: make(map[string]any),
		}
		if c.BusinessImpact != nil {
			rec.Attributes[sim.AttrBusinessImpact] = *c.BusinessImpact
		}
		if c.Criticality != "" {
			rec.Attributes[sim.AttrCriticality] = c.Criticality
		}
		for _, r := range c.Relationships {
			rec.Relationships = append(rec.Relationships, sim.RelationshipRecord{
				OtherID:   r.Target.ID,
				Kind:      r.Kind,
				Direction: sim.DirectionOutgoing,
			})
		}
		snap.Components = append(snap.Components, rec)
	}
	return snap, nil
}
