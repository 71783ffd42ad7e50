package whatif

import (
	"math"
	"slices"
)

type intOrFloat64 interface {
	int | int64 | float64
}

// percentile returns the p-th percentile (0..100) of data with linear
// interpolation between closest ranks. data need not be sorted; empty data yields 0.
func percentile[T intOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := min(int(math.Ceil(rank)), n-1)
	if lowerIdx == upperIdx {
		return float64(sorted[lowerIdx])
	}
	lowerVal, upperVal := float64(sorted[lowerIdx]), float64(sorted[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// mean returns the arithmetic mean; empty data yields 0.
func mean[T intOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range numbers {
		sum += float64(n)
	}
	return sum / float64(len(numbers))
}
