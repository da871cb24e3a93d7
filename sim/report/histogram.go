package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram is an equal-width binning of latencies. Edges has one more
// element than Counts; bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// NewHistogram bins values into the given number of equal-width bins
// spanning [min, max]. Empty input or bins < 1 yields an empty Histogram.
func NewHistogram(values []float64, bins int) Histogram {
	if len(values) == 0 || bins < 1 {
		return Histogram{Edges: []float64{}, Counts: []int{}}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		hi = lo + 1
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram treats the last divider as exclusive.
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	raw := stat.Histogram(nil, dividers, sorted, nil)
	counts := make([]int, len(raw))
	for i, c := range raw {
		counts[i] = int(c)
	}
	return Histogram{Edges: edges, Counts: counts}
}
