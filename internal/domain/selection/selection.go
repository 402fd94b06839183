// Package selection holds the closed set of chart selections a host can make.
// Each variant carries only the parameters its chart needs; zero values mean
// "use the default" and are resolved against the loaded data.
package selection

import "github.com/okian/medalboard/internal/domain/model"

// Category is the top-level analysis a selection belongs to.
type Category string

// Categories.
const (
	Overview Category = "overview"
	Host     Category = "host"
	Economy  Category = "economy"
	Events   Category = "events"
)

// Kind is the chart requested inside a category.
type Kind string

// Kinds.
const (
	Data       Kind = "data"
	Map        Kind = "map"
	Line       Kind = "line"
	Box        Kind = "box"
	Regression Kind = "regression"
	Heatmap    Kind = "heatmap"
	Bar        Kind = "bar"
	Sankey     Kind = "sankey"
)

// Selection is implemented by every variant below.
type Selection interface {
	Category() Category
	Kind() Kind
}

// OverviewData is the medal table of a year plus a country's tier pie.
type OverviewData struct {
	Year    int
	Sort    model.Tier
	Country string
}

// OverviewMap is a world map of one tier for a year.
type OverviewMap struct {
	Year int
	Tier model.Tier
}

// HostLine is a country's tier across the years with host years marked.
type HostLine struct {
	Country string
	Tier    model.Tier
}

// HostBox is the distribution of each tier for a country.
type HostBox struct {
	Country string
}

// HostRegression regresses a tier on the host indicator.
type HostRegression struct {
	Country string
	Tier    model.Tier
}

// EconomyLine plots GDP against medals for the configured economy country.
type EconomyLine struct{}

// EconomyHeatmap correlates metrics over a year range.
type EconomyHeatmap struct {
	Start   int
	End     int
	Metrics []model.Metric
}

// EventsBar ranks teams by gold in one sport and year.
type EventsBar struct {
	Sport string
	Year  int
}

// EventsSankey splits a team's gold across sports for a year.
type EventsSankey struct {
	Year    int
	Country string
}

func (OverviewData) Category() Category   { return Overview }
func (OverviewMap) Category() Category    { return Overview }
func (HostLine) Category() Category       { return Host }
func (HostBox) Category() Category        { return Host }
func (HostRegression) Category() Category { return Host }
func (EconomyLine) Category() Category    { return Economy }
func (EconomyHeatmap) Category() Category { return Economy }
func (EventsBar) Category() Category      { return Events }
func (EventsSankey) Category() Category   { return Events }

func (OverviewData) Kind() Kind   { return Data }
func (OverviewMap) Kind() Kind    { return Map }
func (HostLine) Kind() Kind       { return Line }
func (HostBox) Kind() Kind        { return Box }
func (HostRegression) Kind() Kind { return Regression }
func (EconomyLine) Kind() Kind    { return Line }
func (EconomyHeatmap) Kind() Kind { return Heatmap }
func (EventsBar) Kind() Kind      { return Bar }
func (EventsSankey) Kind() Kind   { return Sankey }

// Option describes one category with its kinds, for building menus.
type Option struct {
	Category Category     `json:"category"`
	Label    string       `json:"label"`
	Kinds    []KindOption `json:"kinds"`
}

// KindOption is one selectable chart of a category.
type KindOption struct {
	Kind   Kind     `json:"kind"`
	Label  string   `json:"label"`
	Params []string `json:"params"`
}

// Menu lists every category and kind in display order.
var Menu = []Option{
	{Category: Overview, Label: "Overall Overview", Kinds: []KindOption{
		{Kind: Data, Label: "Data", Params: []string{"year", "sort", "country"}},
		{Kind: Map, Label: "Map", Params: []string{"year", "tier"}},
	}},
	{Category: Host, Label: "Host Advantage", Kinds: []KindOption{
		{Kind: Line, Label: "Line Chart", Params: []string{"country", "tier"}},
		{Kind: Box, Label: "Box Plot", Params: []string{"country"}},
		{Kind: Regression, Label: "Regression Analysis", Params: []string{"country", "tier"}},
	}},
	{Category: Economy, Label: "Impact on Economic Strength", Kinds: []KindOption{
		{Kind: Line, Label: "Line Chart", Params: []string{}},
		{Kind: Heatmap, Label: "Heatmap", Params: []string{"start", "end", "metrics"}},
	}},
	{Category: Events, Label: "Bonus for Strong Events", Kinds: []KindOption{
		{Kind: Bar, Label: "Bar Chart", Params: []string{"sport", "year"}},
		{Kind: Sankey, Label: "Sankey Diagram", Params: []string{"year", "country"}},
	}},
}
