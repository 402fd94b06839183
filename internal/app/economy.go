package service

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/okian/medalboard/internal/adapters/repository"
	"github.com/okian/medalboard/internal/domain/aggregate"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/colorscale"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/internal/domain/selection"
	"github.com/okian/medalboard/internal/domain/stats"
)

const (
	gdpColor   = "#1f77b4"
	totalColor = "#9b59b6"
	goldColor  = "#f39c12"
	tickStep   = 4
)

func (d *Dashboard) economyRows(store repository.Store, mode aggregate.JoinMode) []aggregate.EconomyRow {
	yearly := aggregate.ByYear(store.Medals(), d.economyCountry)
	return aggregate.JoinEconomy(store.GDP(), yearly, mode)
}

func (d *Dashboard) economyLine(store repository.Store) (chart.Result, error) {
	var rows []aggregate.EconomyRow
	for _, r := range d.economyRows(store, aggregate.InnerJoin) {
		if r.Year >= d.economyFromYear {
			rows = append(rows, r)
		}
	}
	title := fmt.Sprintf("%s GDP and Medal Counts Over the Years", d.economyCountry)
	if len(rows) == 0 {
		return chart.Warning(title, fmt.Sprintf("No %s medal years overlap the GDP series from %d", d.economyCountry, d.economyFromYear)), nil
	}

	var years, gdp, total, gold []float64
	for _, r := range rows {
		years = append(years, float64(r.Year))
		gdp = append(gdp, r.GDP)
		total = append(total, float64(*r.Total))
		gold = append(gold, float64(*r.Gold))
	}
	line := chart.Line{
		XLabel:  "Year",
		YLabel:  fmt.Sprintf("%s GDP (Trillions Dollars)", d.economyCountry),
		Y2Label: "Medals Count",
		Series: []chart.Series{
			{Name: d.economyCountry + " GDP", X: years, Y: gdp, Mode: chart.ModeLinesMarkers, Axis: chart.AxisLeft, Color: gdpColor},
			{Name: "Total Medals", X: years, Y: total, Mode: chart.ModeLinesMarkers, Axis: chart.AxisRight, Color: totalColor},
			{Name: "Gold Medals", X: years, Y: gold, Mode: chart.ModeLinesMarkers, Axis: chart.AxisRight, Color: goldColor},
		},
	}

	last := rows[len(rows)-1].Year
	for y := d.economyFromYear; y <= last; y += tickStep {
		line.XTicks = append(line.XTicks, float64(y))
	}

	rowYears := make([]int, len(rows))
	for i, r := range rows {
		rowYears[i] = r.Year
	}
	for _, hy := range aggregate.HostYears(store.Hosts(), d.economyCountry, rowYears) {
		r := rows[slices.Index(rowYears, hy)]
		line.Series = append(line.Series,
			chart.Series{Name: fmt.Sprintf("%d Total Medals (Highlight)", hy), X: []float64{float64(hy)}, Y: []float64{float64(*r.Total)}, Mode: chart.ModeMarkers, Axis: chart.AxisRight, Color: totalColor},
			chart.Series{Name: fmt.Sprintf("%d Gold Medals (Highlight)", hy), X: []float64{float64(hy)}, Y: []float64{float64(*r.Gold)}, Mode: chart.ModeMarkers, Axis: chart.AxisRight, Color: goldColor},
		)
	}
	return chart.Result{Type: chart.KindLine, Title: title, Chart: line}, nil
}

func (d *Dashboard) economyHeatmap(store repository.Store, s selection.EconomyHeatmap) (chart.Result, error) {
	first, last, ok := aggregate.GDPYearBounds(store.GDP())
	if !ok {
		return chart.Result{}, fmt.Errorf("service.economyHeatmap: no GDP years: %w", ErrNotFound)
	}
	start, end := s.Start, s.End
	if start == 0 {
		start = first
	}
	if end == 0 {
		end = last
	}
	title := fmt.Sprintf("Correlation between selected metrics from %d to %d", start, end)
	if start > end {
		return chart.Warning(title, "The starting year must be earlier than the ending year. Please choose again"), nil
	}

	metricList := uniqueMetrics(s.Metrics)
	if len(metricList) == 0 {
		metricList = model.Metrics
	}
	if len(metricList) < 2 {
		return chart.Warning(title, "Please select at least two indicators to calculate the correlation"), nil
	}

	rows := aggregate.YearRange(d.economyRows(store, aggregate.LeftJoin), start, end)
	cols := make([]stats.Column, len(metricList))
	for i, m := range metricList {
		cols[i] = stats.Column{Name: string(m), Values: make([]*float64, len(rows))}
		for j, r := range rows {
			if v, ok := r.Value(m); ok {
				cols[i].Values[j] = &v
			}
		}
	}
	matrix := stats.Correlation(cols)

	hm := chart.Heatmap{
		Labels:     matrix.Names,
		Z:          matrix.Cells,
		Text:       make([][]string, len(matrix.Cells)),
		ZMin:       -1,
		ZMax:       1,
		ColorScale: colorscale.BluesName,
	}
	for i, row := range matrix.Cells {
		hm.Text[i] = make([]string, len(row))
		for j, c := range row {
			if c != nil {
				hm.Text[i][j] = strconv.FormatFloat(math.Round(*c*100)/100, 'f', -1, 64)
			}
		}
	}
	return chart.Result{Type: chart.KindHeatmap, Title: title, Chart: hm}, nil
}

func uniqueMetrics(in []model.Metric) []model.Metric {
	var out []model.Metric
	for _, m := range in {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}
