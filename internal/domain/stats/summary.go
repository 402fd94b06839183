package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes one box of a box plot.
type Summary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Mean   float64
	StdDev float64
	N      int
}

// Summarize computes quartiles, mean and the sample standard deviation.
// A single value has a zero standard deviation.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("stats.Summarize: %w", ErrEmpty)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		N:      len(sorted),
	}
	if len(sorted) == 1 {
		s.Mean = sorted[0]
		return s, nil
	}
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	return s, nil
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
