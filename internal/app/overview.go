package service

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/okian/medalboard/internal/adapters/repository"
	"github.com/okian/medalboard/internal/domain/aggregate"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/colorscale"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/internal/domain/selection"
)

// TierColors are the Gold, Silver and Bronze colors of the overview pie.
var TierColors = []string{"#f0c05a", "#c0c0c0", "#a97142"}

const pieHole = 0.4

// MedalTable is one year of the medal table in display order.
type MedalTable struct {
	Year int                      `json:"year"`
	Sort model.Tier               `json:"sort"`
	Rows []aggregate.CountryTally `json:"rows"`
}

// Table converts the medal table to a plain grid.
func (m MedalTable) Table() *chart.Table {
	t := &chart.Table{Columns: []string{"Country_Name", "Gold", "Silver", "Bronze", "Total"}}
	for _, r := range m.Rows {
		t.Rows = append(t.Rows, []string{
			r.Country,
			strconv.Itoa(r.Gold),
			strconv.Itoa(r.Silver),
			strconv.Itoa(r.Bronze),
			strconv.Itoa(r.Total()),
		})
	}
	return t
}

// Title is the caption of the medal table.
func (m MedalTable) Title(season string) string {
	return fmt.Sprintf("Medals by Country: %s Olympic Games %d", season, m.Year)
}

func resolveYear(years []int, year int, latest bool) (int, error) {
	if len(years) == 0 {
		return 0, fmt.Errorf("no games years: %w", ErrNotFound)
	}
	if year == 0 {
		if latest {
			return years[len(years)-1], nil
		}
		return years[0], nil
	}
	if !slices.Contains(years, year) {
		return 0, fmt.Errorf("year %d: %w", year, ErrNotFound)
	}
	return year, nil
}

func orTier(t, def model.Tier) model.Tier {
	if t == "" {
		return def
	}
	return t
}

func medalTable(store repository.Store, idx index, year int, sort model.Tier, latest bool) (MedalTable, error) {
	y, err := resolveYear(idx.years, year, latest)
	if err != nil {
		return MedalTable{}, err
	}
	sort = orTier(sort, model.Gold)
	rows := aggregate.ByCountry(store.Medals(), y)
	aggregate.SortByTier(rows, sort)
	return MedalTable{Year: y, Sort: sort, Rows: rows}, nil
}

func (d *Dashboard) overviewData(store repository.Store, idx index, s selection.OverviewData) (chart.Result, error) {
	const op = "service.overviewData"
	table, err := medalTable(store, idx, s.Year, s.Sort, false)
	if err != nil {
		return chart.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	res := chart.Result{Type: chart.KindTable, Title: table.Title(d.season), Table: table.Table()}
	if len(table.Rows) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("No medals were recorded in %d", table.Year))
		return res, nil
	}

	country := s.Country
	if country == "" {
		country = table.Rows[0].Country
	}
	i := slices.IndexFunc(table.Rows, func(r aggregate.CountryTally) bool { return r.Country == country })
	if i < 0 {
		return chart.Result{}, fmt.Errorf("%s: country %q in %d: %w", op, country, table.Year, ErrNotFound)
	}
	row := table.Rows[i]
	if row.Total() == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s won no medals in %d", country, table.Year))
		return res, nil
	}

	res.Type = chart.KindPie
	res.Chart = chart.Pie{
		Country: country,
		Labels:  []string{string(model.Gold), string(model.Silver), string(model.Bronze)},
		Values:  []int{row.Gold, row.Silver, row.Bronze},
		Colors:  TierColors,
		Hole:    pieHole,
	}
	return res, nil
}

func (d *Dashboard) overviewMap(store repository.Store, idx index, s selection.OverviewMap) (chart.Result, error) {
	const op = "service.overviewMap"
	year, err := resolveYear(idx.years, s.Year, true)
	if err != nil {
		return chart.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	tier := orTier(s.Tier, model.Gold)

	m := chart.Choropleth{
		LocationMode: "country names",
		ColorScale:   colorscale.BluesName,
		ColorLabel:   fmt.Sprintf("%s Medals", tier),
	}
	for _, t := range aggregate.ByCountry(store.Medals(), year) {
		m.Locations = append(m.Locations, t.Country)
		m.Values = append(m.Values, t.Count(tier))
	}
	return chart.Result{
		Type:  chart.KindChoropleth,
		Title: fmt.Sprintf("%s Medals by Country in %d", tier, year),
		Chart: m,
	}, nil
}
