package service

import (
	"fmt"
	"slices"

	"github.com/okian/medalboard/internal/adapters/repository"
	"github.com/okian/medalboard/internal/domain/aggregate"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/internal/domain/selection"
	"github.com/okian/medalboard/internal/domain/stats"
)

const (
	hostMarkerColor = "rgba(255, 99, 71, 0.6)"
	averageColor    = "red"
)

// countryHistory is a country's yearly tallies and the host years among them.
type countryHistory struct {
	country   string
	yearly    []aggregate.YearTally
	hostYears []int
}

func history(store repository.Store, idx index, country string) (countryHistory, error) {
	if country == "" {
		if len(idx.countries) == 0 {
			return countryHistory{}, fmt.Errorf("no countries: %w", ErrNotFound)
		}
		country = idx.countries[0]
	}
	if _, ok := idx.known[country]; !ok {
		return countryHistory{}, fmt.Errorf("country %q: %w", country, ErrNotFound)
	}
	yearly := aggregate.ByYear(store.Medals(), country)
	years := make([]int, len(yearly))
	for i, y := range yearly {
		years[i] = y.Year
	}
	return countryHistory{
		country:   country,
		yearly:    yearly,
		hostYears: aggregate.HostYears(store.Hosts(), country, years),
	}, nil
}

func (h countryHistory) series(tier model.Tier) (x, y []float64) {
	x = make([]float64, len(h.yearly))
	y = make([]float64, len(h.yearly))
	for i, t := range h.yearly {
		x[i] = float64(t.Year)
		y[i] = float64(t.Count(tier))
	}
	return x, y
}

func (h countryHistory) isHost(year int) bool {
	return slices.Contains(h.hostYears, year)
}

func (d *Dashboard) hostLine(store repository.Store, idx index, s selection.HostLine) (chart.Result, error) {
	const op = "service.hostLine"
	h, err := history(store, idx, s.Country)
	if err != nil {
		return chart.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	tier := orTier(s.Tier, model.Gold)
	x, y := h.series(tier)

	line := chart.Line{
		XLabel: "Year",
		YLabel: "Medals Count",
		Series: []chart.Series{{Name: string(tier), X: x, Y: y, Mode: chart.ModeLinesMarkers, Color: "blue"}},
	}
	for _, t := range h.yearly {
		if !h.isHost(t.Year) {
			continue
		}
		line.Series = append(line.Series, chart.Series{
			Name:  fmt.Sprintf("Host Year: %d", t.Year),
			X:     []float64{float64(t.Year)},
			Y:     []float64{float64(t.Count(tier))},
			Mode:  chart.ModeMarkers,
			Color: hostMarkerColor,
		})
	}
	if len(x) > 0 {
		mean := stats.Mean(y)
		line.Series = append(line.Series, chart.Series{
			Name:  "Average",
			X:     []float64{x[0], x[len(x)-1]},
			Y:     []float64{mean, mean},
			Mode:  chart.ModeLines,
			Dash:  "dash",
			Color: averageColor,
		})
	}
	return chart.Result{
		Type:  chart.KindLine,
		Title: fmt.Sprintf("%s %s Medal History", h.country, tier),
		Chart: line,
	}, nil
}

func (d *Dashboard) hostBox(store repository.Store, idx index, s selection.HostBox) (chart.Result, error) {
	const op = "service.hostBox"
	h, err := history(store, idx, s.Country)
	if err != nil {
		return chart.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(h.yearly) == 0 {
		return chart.Warning(h.country, fmt.Sprintf("%s has no medal history", h.country)), nil
	}

	plot := chart.BoxPlot{YLabel: "Medals Count"}
	for _, tier := range model.Tiers {
		_, y := h.series(tier)
		sum, err := stats.Summarize(y)
		if err != nil {
			return chart.Result{}, fmt.Errorf("%s: %s: %w", op, tier, err)
		}
		plot.Boxes = append(plot.Boxes, chart.Box{
			Name:   string(tier),
			Values: y,
			Min:    sum.Min,
			Q1:     sum.Q1,
			Median: sum.Median,
			Q3:     sum.Q3,
			Max:    sum.Max,
			Mean:   sum.Mean,
			StdDev: sum.StdDev,
		})
	}
	return chart.Result{
		Type:  chart.KindBox,
		Title: fmt.Sprintf("%s Medal Distribution Boxplot", h.country),
		Chart: plot,
	}, nil
}

func (d *Dashboard) hostRegression(store repository.Store, idx index, s selection.HostRegression) (chart.Result, error) {
	const op = "service.hostRegression"
	h, err := history(store, idx, s.Country)
	if err != nil {
		return chart.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	tier := orTier(s.Tier, model.Gold)

	x := make([]float64, len(h.yearly))
	_, y := h.series(tier)
	for i, t := range h.yearly {
		if h.isHost(t.Year) {
			x[i] = 1
		}
	}
	fit, err := stats.OLS(x, y)
	if err != nil {
		return chart.Result{}, fmt.Errorf("%s: %s: %w", op, h.country, err)
	}

	reg := chart.Regression{
		XLabel:     "Host Year (0=Non-Host, 1=Host)",
		YLabel:     fmt.Sprintf("%s Medals", tier),
		Line:       []chart.Point{{X: 0, Y: fit.Predict(0)}, {X: 1, Y: fit.Predict(1)}},
		Intercept:  fit.Intercept,
		Slope:      fit.Slope,
		RSquared:   fit.RSquared,
		Annotation: fmt.Sprintf("R-squared: %.2f", fit.RSquared),
	}
	for i := range x {
		reg.Points = append(reg.Points, chart.Point{X: x[i], Y: y[i]})
	}
	return chart.Result{
		Type:  chart.KindRegression,
		Title: fmt.Sprintf("Regression Analysis: %s Medals vs Host Year", tier),
		Chart: reg,
	}, nil
}
