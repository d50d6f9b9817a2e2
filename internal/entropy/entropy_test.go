package entropy

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestShannon_SingleValue(t *testing.T) {
	for _, size := range []int{1, 2, 17, 1000} {
		signal := make([]uint8, size)
		for i := range signal {
			signal[i] = 128
		}
		if got := Shannon(signal); got != 0 {
			t.Errorf("size %d: got %v, want exactly 0", size, got)
		}
	}
}

func TestShannon_Empty(t *testing.T) {
	if got := Shannon(nil); got != 0 {
		t.Errorf("nil signal: got %v, want 0", got)
	}
	if got := Shannon([]uint8{}); got != 0 {
		t.Errorf("empty signal: got %v, want 0", got)
	}
}

func TestShannon_EquallyFrequent(t *testing.T) {
	tests := []struct {
		name     string
		distinct int
		repeat   int
	}{
		{"two values", 2, 1},
		{"two values repeated", 2, 50},
		{"four values", 4, 3},
		{"sixteen values", 16, 7},
		{"all byte values", 256, 2},
		{"non power of two", 5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := make([]uint8, 0, tt.distinct*tt.repeat)
			for r := 0; r < tt.repeat; r++ {
				for v := 0; v < tt.distinct; v++ {
					signal = append(signal, uint8(v))
				}
			}
			want := math.Log2(float64(tt.distinct))
			if got := Shannon(signal); math.Abs(got-want) > 1e-9 {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestShannon_KnownDistribution(t *testing.T) {
	// p = {3/4, 1/4}: H = 0.75*log2(4/3) + 0.25*log2(4)
	signal := []uint8{0, 0, 0, 9}
	want := 0.75*math.Log2(4.0/3.0) + 0.25*2
	if got := Shannon(signal); math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestShannon_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	signal := make([]uint8, 500)
	for i := range signal {
		signal[i] = uint8(rng.IntN(256))
	}
	want := Shannon(signal)

	shuffled := append([]uint8(nil), signal...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	if got := Shannon(shuffled); got != want {
		t.Errorf("shuffled entropy %v differs from %v", got, want)
	}
}

func TestShannon_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	signal := make([]uint8, 4096)
	for i := range signal {
		signal[i] = uint8(rng.IntN(256))
	}
	got := Shannon(signal)
	if got <= 0 || got > 8 {
		t.Errorf("random byte entropy %v outside (0, 8]", got)
	}
}

func TestHistogram_Accumulate(t *testing.T) {
	var h Histogram
	h.Add([]uint8{1, 1})
	h.Add([]uint8{2, 2})

	if h.total != 4 {
		t.Errorf("total: got %d, want 4", h.total)
	}
	if h.Distinct() != 2 {
		t.Errorf("Distinct: got %d, want 2", h.Distinct())
	}
	if got := h.Entropy(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Entropy: got %v, want 1", got)
	}

	probs := h.Probabilities()
	if len(probs) != 2 || probs[0] != 0.5 || probs[1] != 0.5 {
		t.Errorf("Probabilities: got %v, want [0.5 0.5]", probs)
	}

	var empty Histogram
	if empty.Distinct() != 0 || empty.Probabilities() != nil || empty.Entropy() != 0 {
		t.Error("zero Histogram is not empty")
	}
}
