package sim

import (
	"hash/fnv"
	"math/rand"
)

// RandomSource supplies the uniform draws in [0,1) that decide propagation.
// *rand.Rand satisfies it; tests inject fixed sequences.
type RandomSource interface {
	Float64() float64
}

// SimulationKey identifies a reproducible cascade. Two runs with the same key,
// graph and catalog produce identical timelines.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemPropagation draws edge outcomes. It uses the key directly,
	// so --seed maps onto a plain rand.NewSource(seed).
	SubsystemPropagation = "propagation"

	// SubsystemWhatIf derives the per-run seeds of a what-if batch.
	SubsystemWhatIf = "whatif"
)

// PartitionedRNG hands out independent, deterministically seeded streams
// per subsystem. Streams other than SubsystemPropagation are seeded with
// key XOR fnv1a64(name). Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemPropagation {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// PropagationRNG returns the propagation stream for seed. A single run and
// the what-if run for the same seed draw identical sequences.
func PropagationRNG(seed int64) *rand.Rand {
	return NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemPropagation)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
