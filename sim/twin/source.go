// Package twin loads digital-twin snapshots for the cascade simulator from
// files or from a Dgraph cluster. The simulator itself does no I/O; callers
// load a snapshot here and hand it to sim.Build.
package twin

import (
	"context"
	"fmt"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
)

// Source produces a twin snapshot.
type Source interface {
	Load(ctx context.Context) (*sim.Snapshot, error)
}

// FileSource reads a YAML or JSON snapshot from disk.
type FileSource struct {
	Path string
}

// Load reads the snapshot file. ctx is only checked before reading.
func (f FileSource) Load(ctx context.Context) (*sim.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Path == "" {
		return nil, fmt.Errorf("snapshot path is empty")
	}
	return sim.LoadSnapshot(f.Path)
}

// LoadGraph loads a snapshot from src and builds the propagation graph.
func LoadGraph(ctx context.Context, src Source) (*sim.Graph, error) {
	snap, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return sim.Build(snap), nil
}
