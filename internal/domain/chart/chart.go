// Package chart defines render-ready chart descriptors. Descriptors carry
// data and the few presentation constants the charts depend on (colors,
// scales, node positions); layout and styling belong to the host.
package chart

// Kind identifies the descriptor carried by a Result.
type Kind string

// Descriptor kinds.
const (
	KindPie        Kind = "pie"
	KindChoropleth Kind = "choropleth"
	KindLine       Kind = "line"
	KindBox        Kind = "box"
	KindRegression Kind = "regression"
	KindHeatmap    Kind = "heatmap"
	KindBar        Kind = "bar"
	KindSankey     Kind = "sankey"
	KindTable      Kind = "table"
	KindNone       Kind = "none"
)

// Result is what a selection renders to. When Warnings is non-empty and
// Chart is nil the host shows the warnings instead of a chart.
type Result struct {
	Type     Kind     `json:"type"`
	Title    string   `json:"title"`
	Chart    any      `json:"chart,omitempty"`
	Table    *Table   `json:"table,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Warning builds a chartless result.
func Warning(title string, msgs ...string) Result {
	return Result{Type: KindNone, Title: title, Warnings: msgs}
}

// HasChart reports whether a chart descriptor is present.
func (r Result) HasChart() bool { return r.Chart != nil }

// Table is a plain grid with a header row.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Pie shows the tier proportions of one country.
type Pie struct {
	Country string   `json:"country"`
	Labels  []string `json:"labels"`
	Values  []int    `json:"values"`
	Colors  []string `json:"colors"`
	Hole    float64  `json:"hole"`
}

// Choropleth colors countries by a value.
type Choropleth struct {
	Locations    []string `json:"locations"`
	Values       []int    `json:"values"`
	LocationMode string   `json:"locationMode"`
	ColorScale   string   `json:"colorScale"`
	ColorLabel   string   `json:"colorLabel"`
}

// Axis names used by Series.
const (
	AxisLeft  = "y"
	AxisRight = "y2"
)

// Series modes.
const (
	ModeLines        = "lines"
	ModeMarkers      = "markers"
	ModeLinesMarkers = "lines+markers"
)

// Series is one trace of a line chart.
type Series struct {
	Name  string    `json:"name"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Mode  string    `json:"mode"`
	Axis  string    `json:"axis,omitempty"`
	Dash  string    `json:"dash,omitempty"`
	Color string    `json:"color,omitempty"`
}

// Line is a multi-series line chart, optionally with a secondary y axis.
type Line struct {
	XLabel  string    `json:"xLabel"`
	YLabel  string    `json:"yLabel"`
	Y2Label string    `json:"y2Label,omitempty"`
	XTicks  []float64 `json:"xTicks,omitempty"`
	Series  []Series  `json:"series"`
}

// Box is one box of a box plot.
type Box struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Min    float64   `json:"min"`
	Q1     float64   `json:"q1"`
	Median float64   `json:"median"`
	Q3     float64   `json:"q3"`
	Max    float64   `json:"max"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"sd"`
}

// BoxPlot is a set of boxes sharing a y axis.
type BoxPlot struct {
	YLabel string `json:"yLabel"`
	Boxes  []Box  `json:"boxes"`
}

// Point is an (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Regression is a scatter with its fitted line.
type Regression struct {
	XLabel     string  `json:"xLabel"`
	YLabel     string  `json:"yLabel"`
	Points     []Point `json:"points"`
	Line       []Point `json:"line"`
	Intercept  float64 `json:"intercept"`
	Slope      float64 `json:"slope"`
	RSquared   float64 `json:"rSquared"`
	Annotation string  `json:"annotation"`
}

// Heatmap is a labelled square matrix. Nil cells are undefined.
type Heatmap struct {
	Labels     []string     `json:"labels"`
	Z          [][]*float64 `json:"z"`
	Text       [][]string   `json:"text"`
	ZMin       float64      `json:"zmin"`
	ZMax       float64      `json:"zmax"`
	ColorScale string       `json:"colorScale"`
}

// Bar is a single-series bar chart colored by value.
type Bar struct {
	XLabel     string   `json:"xLabel"`
	YLabel     string   `json:"yLabel"`
	Categories []string `json:"categories"`
	Values     []int    `json:"values"`
	ColorScale string   `json:"colorScale"`
}

// Node is a Sankey node. X and Y are fractions of the plot area.
type Node struct {
	Label string   `json:"label"`
	X     float64  `json:"x"`
	Y     *float64 `json:"y,omitempty"`
}

// Link is a weighted edge between two node indexes.
type Link struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Value  int    `json:"value"`
	Color  string `json:"color"`
}

// Sankey is a flow diagram.
type Sankey struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}
