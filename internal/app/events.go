package service

import (
	"fmt"
	"slices"

	"github.com/okian/medalboard/internal/adapters/repository"
	"github.com/okian/medalboard/internal/domain/aggregate"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/colorscale"
	"github.com/okian/medalboard/internal/domain/selection"
)

// Sankey node placement.
const (
	sankeySourceX = 0.03
	sankeySourceY = 0.52
	sankeyTargetX = 0.6
)

func (d *Dashboard) eventsBar(store repository.Store, idx index, s selection.EventsBar) (chart.Result, error) {
	const op = "service.eventsBar"
	sport := s.Sport
	if sport == "" {
		if len(idx.sports) == 0 {
			return chart.Result{}, fmt.Errorf("%s: no sports: %w", op, ErrNotFound)
		}
		sport = idx.sports[0]
	}
	if !slices.Contains(idx.sports, sport) {
		return chart.Result{}, fmt.Errorf("%s: sport %q: %w", op, sport, ErrNotFound)
	}
	year, err := resolveYear(idx.eventYears, s.Year, false)
	if err != nil {
		return chart.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	counts := aggregate.GoldByTeam(store.Results(), aggregate.GoldFilter{Season: d.season, Sport: sport, Year: year})
	top := aggregate.TopTeams(counts, idx.teams, d.barTopN)

	bar := chart.Bar{
		XLabel:     "Country",
		YLabel:     "Number of Gold Medals",
		ColorScale: colorscale.BluesName,
	}
	for _, c := range top {
		bar.Categories = append(bar.Categories, c.Team)
		bar.Values = append(bar.Values, c.Count)
	}
	return chart.Result{
		Type:  chart.KindBar,
		Title: fmt.Sprintf("Top %d Gold Medals in %s by Country in %d (%s Olympics)", d.barTopN, sport, year, d.season),
		Chart: bar,
	}, nil
}

func (d *Dashboard) eventsSankey(store repository.Store, idx index, s selection.EventsSankey) (chart.Result, error) {
	const op = "service.eventsSankey"
	if len(idx.sankeyYears) == 0 {
		return chart.Result{}, fmt.Errorf("%s: no gold medal years: %w", op, ErrNotFound)
	}
	year := s.Year
	if year == 0 {
		year = idx.sankeyYears[0]
	}
	if !slices.Contains(idx.sankeyYears, year) {
		return chart.Result{}, fmt.Errorf("%s: year %d: %w", op, year, ErrNotFound)
	}

	country := s.Country
	if country == "" {
		top := aggregate.TopGoldTeams(store.Results(), d.season, year, d.sankeyTop)
		if len(top) == 0 {
			return chart.Result{}, fmt.Errorf("%s: no teams in %d: %w", op, year, ErrNotFound)
		}
		country = top[0].Team
	}

	title := fmt.Sprintf("Gold Medals Flow by %s in Sport (%d %s Olympics)", country, year, d.season)
	flows := aggregate.SportFlows(store.Results(), d.season, country, year)
	if len(flows) == 0 {
		return chart.Warning(title, fmt.Sprintf("%s won no gold medals in %d", country, year)), nil
	}

	y := sankeySourceY
	sk := chart.Sankey{Nodes: []chart.Node{{Label: country, X: sankeySourceX, Y: &y}}}
	weights := make([]float64, len(flows))
	for i, f := range flows {
		sk.Nodes = append(sk.Nodes, chart.Node{Label: f.Sport, X: sankeyTargetX})
		weights[i] = float64(f.Gold)
	}
	colors := colorscale.Blues.LinkColors(weights)
	for i, f := range flows {
		sk.Links = append(sk.Links, chart.Link{Source: 0, Target: i + 1, Value: f.Gold, Color: colors[i]})
	}
	return chart.Result{Type: chart.KindSankey, Title: title, Chart: sk}, nil
}
