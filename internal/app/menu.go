package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/medalboard/internal/domain/aggregate"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/internal/domain/selection"
)

// Menu lists every value a host can offer in its selectors.
type Menu struct {
	Categories  []selection.Option `json:"categories"`
	Tiers       []model.Tier       `json:"tiers"`
	Metrics     []model.Metric     `json:"metrics"`
	Years       []int              `json:"years"`
	Countries   []string           `json:"countries"`
	Sports      []string           `json:"sports"`
	EventYears  []int              `json:"eventYears"`
	SankeyYears []int              `json:"sankeyYears"`
	GDPYears    []int              `json:"gdpYears"`
}

// Options returns the selector values derived from the tables.
func (d *Dashboard) Options(_ context.Context) (Menu, error) {
	store, idx, err := d.snapshot()
	if err != nil {
		return Menu{}, err
	}
	m := Menu{
		Categories:  selection.Menu,
		Tiers:       model.Tiers,
		Metrics:     model.Metrics,
		Years:       idx.years,
		Countries:   idx.countries,
		Sports:      idx.sports,
		EventYears:  idx.eventYears,
		SankeyYears: idx.sankeyYears,
	}
	if first, last, ok := aggregate.GDPYearBounds(store.GDP()); ok {
		for y := first; y <= last; y++ {
			m.GDPYears = append(m.GDPYears, y)
		}
	}
	return m, nil
}

// SankeyCountries returns the teams offered for a Sankey year, most gold
// first. Year 0 means the most recent year.
func (d *Dashboard) SankeyCountries(_ context.Context, year int) ([]aggregate.TeamCount, error) {
	store, idx, err := d.snapshot()
	if err != nil {
		return nil, err
	}
	if len(idx.sankeyYears) == 0 {
		return nil, fmt.Errorf("service.SankeyCountries: no gold medal years: %w", ErrNotFound)
	}
	if year == 0 {
		year = idx.sankeyYears[0]
	}
	if !slices.Contains(idx.sankeyYears, year) {
		return nil, fmt.Errorf("service.SankeyCountries: year %d: %w", year, ErrNotFound)
	}
	return aggregate.TopGoldTeams(store.Results(), d.season, year, d.sankeyTop), nil
}

// MedalTable returns the sorted medal table of a year. Year 0 means the
// first games year; an empty sort means Gold.
func (d *Dashboard) MedalTable(_ context.Context, year int, sort model.Tier) (MedalTable, error) {
	store, idx, err := d.snapshot()
	if err != nil {
		return MedalTable{}, err
	}
	t, err := medalTable(store, idx, year, sort, false)
	if err != nil {
		return MedalTable{}, fmt.Errorf("service.MedalTable: %w", err)
	}
	return t, nil
}

// Averages returns every country's mean medals per games.
func (d *Dashboard) Averages(_ context.Context) ([]aggregate.CountryAverage, error) {
	store, _, err := d.snapshot()
	if err != nil {
		return nil, err
	}
	return aggregate.Averages(store.Medals()), nil
}

// Season is the games season the dashboard reports on.
func (d *Dashboard) Season() string { return d.season }
