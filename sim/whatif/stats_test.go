package whatif

import "testing"

func TestPercentile(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		p    float64
		want float64
	}{
		{"empty", nil, 50, 0},
		{"single", []float64{7}, 95, 7},
		{"median of odd", []float64{3, 1, 2}, 50, 2},
		{"interpolated", []float64{1, 2, 3, 4}, 50, 2.5},
		{"max", []float64{5, 1, 9}, 100, 9},
		{"min", []float64{5, 1, 9}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(tt.data, tt.p); got != tt.want {
				t.Errorf("percentile(%v, %v) = %v, want %v", tt.data, tt.p, got, tt.want)
			}
		})
	}
}

func TestPercentile_DoesNotReorderInput(t *testing.T) {
	data := []int{3, 1, 2}
	_ = percentile(data, 50)
	if data[0] != 3 || data[1] != 1 || data[2] != 2 {
		t.Errorf("input reordered: %v", data)
	}
}

func TestMean(t *testing.T) {
	if got := mean([]int{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("mean = %v, want 2.5", got)
	}
	if got := mean([]float64(nil)); got != 0 {
		t.Errorf("mean(nil) = %v, want 0", got)
	}
}
