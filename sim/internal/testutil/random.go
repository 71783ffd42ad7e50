package testutil

// SequenceSource replays a fixed list of draws, then repeats the last one.
// An empty sequence always returns 0.
type SequenceSource struct {
	Draws []float64
	next  int
}

// Float64 returns the next draw.
func (s *SequenceSource) Float64() float64 {
	if len(s.Draws) == 0 {
		return 0
	}
	if s.next >= len(s.Draws) {
		return s.Draws[len(s.Draws)-1]
	}
	v := s.Draws[s.next]
	s.next++
	return v
}

// Calls returns how many draws have been consumed from the list.
func (s *SequenceSource) Calls() int {
	return s.next
}

// ConstantSource always returns the same draw.
type ConstantSource float64

// Float64 returns the constant.
func (c ConstantSource) Float64() float64 {
	return float64(c)
}
