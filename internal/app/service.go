// Package service turns chart selections into render-ready results over the
// loaded Olympic tables.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/medalboard/internal/adapters/repository"
	"github.com/okian/medalboard/internal/domain/aggregate"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/selection"
	"github.com/okian/medalboard/pkg/logger"
	"github.com/okian/medalboard/pkg/metrics"
)

// Dashboard answers selections. It is safe for concurrent use once started.
type Dashboard struct {
	mu sync.RWMutex

	store repository.Store
	index index

	// Loading
	paths       repository.Paths
	loadWorkers int
	medalsDelim rune

	// Chart configuration
	season          string
	economyCountry  string
	economyFromYear int
	barTopN         int
	sankeyTop       int

	started bool
	logger  logger.Logger
}

// index holds the option lists derived once from the tables.
type index struct {
	years       []int
	countries   []string
	known       map[string]struct{}
	sports      []string
	teams       []string
	eventYears  []int
	sankeyYears []int
}

// Option applies a configuration option to the Dashboard.
type Option func(*Dashboard)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStore uses already loaded tables instead of reading files on Start.
func WithStore(s repository.Store) Option {
	return func(d *Dashboard) {
		d.store = s
	}
}

// WithPaths sets the dataset files read by Start.
func WithPaths(p repository.Paths) Option {
	return func(d *Dashboard) {
		d.paths = p
	}
}

// WithLoadWorkers sets how many files Start reads in parallel.
func WithLoadWorkers(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.loadWorkers = n
		}
	}
}

// WithMedalsDelimiter sets the separator of the medals file.
func WithMedalsDelimiter(r rune) Option {
	return func(d *Dashboard) {
		if r != 0 {
			d.medalsDelim = r
		}
	}
}

// WithSeason sets the games season used for hosts and events.
func WithSeason(season string) Option {
	return func(d *Dashboard) {
		if season != "" {
			d.season = season
		}
	}
}

// WithEconomyCountry sets the country whose GDP series is loaded.
func WithEconomyCountry(country string) Option {
	return func(d *Dashboard) {
		if country != "" {
			d.economyCountry = country
		}
	}
}

// WithEconomyFromYear sets the first year of the economy line chart.
func WithEconomyFromYear(year int) Option {
	return func(d *Dashboard) {
		if year > 0 {
			d.economyFromYear = year
		}
	}
}

// WithBarTopN sets how many teams the events bar chart shows.
func WithBarTopN(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.barTopN = n
		}
	}
}

// WithSankeyTopCountries sets how many teams are offered per Sankey year.
func WithSankeyTopCountries(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.sankeyTop = n
		}
	}
}

// New constructs a Dashboard with default configuration.
func New(opts ...Option) *Dashboard {
	d := &Dashboard{
		loadWorkers:     4,
		medalsDelim:     ';',
		season:          "Summer",
		economyCountry:  "China",
		economyFromYear: 1984,
		barTopN:         8,
		sankeyTop:       20,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start loads the datasets unless a store was supplied. A load failure is
// returned and the dashboard stays unusable.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return nil
	}
	if d.logger == nil {
		d.logger = logger.Get()
	}

	if d.store == nil {
		d.logger.Info(ctx, "loading datasets",
			logger.String("hosts", d.paths.Hosts),
			logger.String("medals", d.paths.Medals),
			logger.String("gdp", d.paths.GDP),
			logger.String("athletes", d.paths.Athletes),
		)
		tables, err := repository.Load(ctx, d.paths,
			repository.WithWorkers(d.loadWorkers),
			repository.WithSeason(d.season),
			repository.WithMedalsDelimiter(d.medalsDelim),
			repository.WithLogger(d.logger.Named("repository")),
		)
		if err != nil {
			return fmt.Errorf("start dashboard: %w", err)
		}
		d.store = tables
	}

	d.index = buildIndex(d.store, d.season)
	d.started = true
	d.logger.Info(ctx, "dashboard started",
		logger.String("season", d.season),
		logger.String("economyCountry", d.economyCountry),
		logger.Int("years", len(d.index.years)),
		logger.Int("countries", len(d.index.countries)),
	)
	return nil
}

// Stop marks the dashboard as stopped. Tables are kept for in-flight reads.
func (d *Dashboard) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return
	}
	d.started = false
	d.logger.Info(context.Background(), "dashboard stopped")
}

func buildIndex(s repository.Store, season string) index {
	idx := index{
		years:       aggregate.Years(s.Medals()),
		countries:   aggregate.Countries(s.Medals()),
		sports:      aggregate.Sports(s.Results(), season),
		teams:       aggregate.Teams(s.Results(), season),
		eventYears:  aggregate.ResultYears(s.Results(), season),
		sankeyYears: aggregate.GoldYears(s.Results(), season),
	}
	idx.known = make(map[string]struct{}, len(idx.countries))
	for _, c := range idx.countries {
		idx.known[c] = struct{}{}
	}
	return idx
}

func (d *Dashboard) snapshot() (repository.Store, index, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.started {
		return nil, index{}, ErrNotStarted
	}
	return d.store, d.index, nil
}

// Render builds the result for a selection.
func (d *Dashboard) Render(ctx context.Context, sel selection.Selection) (chart.Result, error) {
	store, idx, err := d.snapshot()
	if err != nil {
		return chart.Result{}, err
	}
	start := time.Now()

	var res chart.Result
	switch s := sel.(type) {
	case selection.OverviewData:
		res, err = d.overviewData(store, idx, s)
	case selection.OverviewMap:
		res, err = d.overviewMap(store, idx, s)
	case selection.HostLine:
		res, err = d.hostLine(store, idx, s)
	case selection.HostBox:
		res, err = d.hostBox(store, idx, s)
	case selection.HostRegression:
		res, err = d.hostRegression(store, idx, s)
	case selection.EconomyLine:
		res, err = d.economyLine(store)
	case selection.EconomyHeatmap:
		res, err = d.economyHeatmap(store, s)
	case selection.EventsBar:
		res, err = d.eventsBar(store, idx, s)
	case selection.EventsSankey:
		res, err = d.eventsSankey(store, idx, s)
	default:
		err = fmt.Errorf("%T: %w", sel, ErrUnknownSelection)
	}

	category, kind := "unknown", "unknown"
	if sel != nil {
		category, kind = string(sel.Category()), string(sel.Kind())
	}
	metrics.RecordBuildLatency(kind, float64(time.Since(start).Microseconds())/1000.0)
	if err != nil {
		metrics.RecordChartError(kind, errorType(err))
		d.logger.Debug(ctx, "render failed",
			logger.String("category", category),
			logger.String("kind", kind),
			logger.Error(err))
		return chart.Result{}, err
	}
	if len(res.Warnings) > 0 {
		metrics.RecordChartWarning(category, kind)
	}
	metrics.RecordChartRender(category, kind)
	return res, nil
}

// GetStats returns dashboard statistics for monitoring.
func (d *Dashboard) GetStats() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := map[string]any{
		"started":        d.started,
		"season":         d.season,
		"economyCountry": d.economyCountry,
	}
	if d.started {
		counts := d.store.Counts()
		stats["datasets"] = counts
		for name, n := range counts {
			metrics.UpdateDatasetRows(name, n)
		}
	}
	return stats
}
