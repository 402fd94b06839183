// Package stats holds the numeric kernels behind the charts: least squares,
// Pearson correlation and box summaries. It is a thin layer over gonum/stat.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fit is the result of an ordinary least squares fit y = Intercept + Slope*x.
type Fit struct {
	Intercept float64
	Slope     float64
	RSquared  float64
	N         int
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// OLS fits y on x with an intercept. When y has no variance the line is exact
// and R² is reported as 1.
func OLS(x, y []float64) (Fit, error) {
	const op = "stats.OLS"
	if len(x) != len(y) {
		return Fit{}, fmt.Errorf("%s: %d x values, %d y values: %w", op, len(x), len(y), ErrLengthMismatch)
	}
	if len(x) < 2 || distinct(x) < 2 {
		return Fit{}, fmt.Errorf("%s: need two distinct x values: %w", op, ErrInsufficientVariation)
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	fit := Fit{Intercept: alpha, Slope: beta, N: len(x)}
	if distinct(y) < 2 {
		fit.RSquared = 1
		return fit, nil
	}
	fit.RSquared = stat.RSquared(x, y, nil, alpha, beta)
	return fit, nil
}

func distinct(v []float64) int {
	seen := make(map[float64]struct{}, len(v))
	for _, f := range v {
		if math.IsNaN(f) {
			continue
		}
		seen[f] = struct{}{}
		if len(seen) > 1 {
			return len(seen)
		}
	}
	return len(seen)
}
