package aggregate

import (
	"sort"

	"github.com/okian/medalboard/internal/domain/model"
)

// JoinMode selects how GDP years without medals are treated.
type JoinMode int

const (
	// LeftJoin keeps every GDP year; medal fields are nil when missing.
	LeftJoin JoinMode = iota
	// InnerJoin keeps only years present in both series.
	InnerJoin
)

// EconomyRow is one GDP year joined with the country's medals.
type EconomyRow struct {
	Year         int
	GDP          float64
	WorldPercent float64
	Gold         *int
	Silver       *int
	Bronze       *int
	Total        *int
}

// Value returns the metric for the row and whether it is present.
func (r EconomyRow) Value(m model.Metric) (float64, bool) {
	switch m {
	case model.MetricGDP:
		return r.GDP, true
	case model.MetricGDPWorld:
		return r.WorldPercent, true
	case model.MetricGold:
		if r.Gold == nil {
			return 0, false
		}
		return float64(*r.Gold), true
	case model.MetricTotalMedals:
		if r.Total == nil {
			return 0, false
		}
		return float64(*r.Total), true
	}
	return 0, false
}

// JoinEconomy joins the GDP series with yearly medal tallies on year. Rows
// follow the GDP order sorted by year.
func JoinEconomy(gdp []model.GDPPoint, yearly []YearTally, mode JoinMode) []EconomyRow {
	byYear := make(map[int]Tally, len(yearly))
	for _, y := range yearly {
		byYear[y.Year] = y.Tally
	}
	out := make([]EconomyRow, 0, len(gdp))
	for _, p := range gdp {
		row := EconomyRow{Year: p.Year, GDP: p.GDP, WorldPercent: p.WorldPercent}
		t, ok := byYear[p.Year]
		if !ok && mode == InnerJoin {
			continue
		}
		if ok {
			gold, silver, bronze, total := t.Gold, t.Silver, t.Bronze, t.Total()
			row.Gold, row.Silver, row.Bronze, row.Total = &gold, &silver, &bronze, &total
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// YearRange keeps rows with from <= year <= to.
func YearRange(rows []EconomyRow, from, to int) []EconomyRow {
	var out []EconomyRow
	for _, r := range rows {
		if r.Year >= from && r.Year <= to {
			out = append(out, r)
		}
	}
	return out
}

// GDPYearBounds returns the first and last GDP years. ok is false when the
// series is empty.
func GDPYearBounds(gdp []model.GDPPoint) (first, last int, ok bool) {
	for i, p := range gdp {
		if i == 0 || p.Year < first {
			first = p.Year
		}
		if i == 0 || p.Year > last {
			last = p.Year
		}
	}
	return first, last, len(gdp) > 0
}
