package entropy

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Histogram counts occurrences of each 8-bit intensity value.
//
// The zero value is an empty histogram ready for use. Several bands can be
// accumulated into one histogram without concatenating their pixels.
type Histogram struct {
	counts   [256]int
	total    int
	distinct int
}

// Add counts every value of signal.
func (h *Histogram) Add(signal []uint8) {
	for _, v := range signal {
		if h.counts[v] == 0 {
			h.distinct++
		}
		h.counts[v]++
	}
	h.total += len(signal)
}

// Distinct returns the number of distinct values added so far.
func (h *Histogram) Distinct() int {
	return h.distinct
}

// Probabilities returns p(v) = count(v)/N for every value that occurred,
// in ascending value order. It returns nil for an empty histogram.
func (h *Histogram) Probabilities() []float64 {
	if h.total == 0 {
		return nil
	}
	probs := make([]float64, 0, h.distinct)
	n := float64(h.total)
	for _, c := range h.counts {
		if c > 0 {
			probs = append(probs, float64(c)/n)
		}
	}
	return probs
}

// Entropy returns the Shannon entropy of the counted values in bits.
func (h *Histogram) Entropy() float64 {
	if h.distinct < 2 {
		return 0
	}
	// stat.Entropy works in nats.
	return stat.Entropy(h.Probabilities()) / math.Ln2
}

// Shannon returns the Shannon entropy of signal in bits:
//
//	H = Σ -p(v)·log2(p(v))
//
// where p(v) is the relative frequency of value v. A signal with fewer than
// two distinct values returns exactly 0.
func Shannon(signal []uint8) float64 {
	var h Histogram
	h.Add(signal)
	return h.Entropy()
}
