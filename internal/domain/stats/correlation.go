package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Column is a named series. Nil entries are missing observations.
type Column struct {
	Name   string
	Values []*float64
}

// Matrix is a symmetric correlation matrix. Cells[i][j] is nil when the pair
// has fewer than two complete observations or one side has no variance.
type Matrix struct {
	Names []string
	Cells [][]*float64
}

// At returns the cell for the pair and whether it is defined.
func (m Matrix) At(i, j int) (float64, bool) {
	if c := m.Cells[i][j]; c != nil {
		return *c, true
	}
	return 0, false
}

// Correlation computes pairwise-complete Pearson coefficients. The diagonal is
// always 1.
func Correlation(cols []Column) Matrix {
	n := len(cols)
	m := Matrix{Names: make([]string, n), Cells: make([][]*float64, n)}
	for i := range cols {
		m.Names[i] = cols[i].Name
		m.Cells[i] = make([]*float64, n)
	}
	for i := 0; i < n; i++ {
		one := 1.0
		m.Cells[i][i] = &one
		for j := i + 1; j < n; j++ {
			r, ok := pearson(cols[i].Values, cols[j].Values)
			if !ok {
				continue
			}
			a, b := r, r
			m.Cells[i][j], m.Cells[j][i] = &a, &b
		}
	}
	return m
}

func pearson(a, b []*float64) (float64, bool) {
	size := min(len(a), len(b))
	x := make([]float64, 0, size)
	y := make([]float64, 0, size)
	for k := 0; k < size; k++ {
		if a[k] == nil || b[k] == nil {
			continue
		}
		x = append(x, *a[k])
		y = append(y, *b[k])
	}
	if len(x) < 2 || distinct(x) < 2 || distinct(y) < 2 {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}
