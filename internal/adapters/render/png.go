// Package render turns chart descriptors into files: PNG images drawn with
// gonum/plot, Sankey SVGs laid out by graphviz and XLSX workbooks.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/colorscale"
	"github.com/okian/medalboard/pkg/metrics"
)

// PNG draws descriptors as raster images.
type PNG struct {
	width  vg.Length
	height vg.Length
}

// Option configures a PNG renderer.
type Option func(*PNG)

// WithSize sets the image size in points.
func WithSize(width, height vg.Length) Option {
	return func(p *PNG) {
		if width > 0 && height > 0 {
			p.width, p.height = width, height
		}
	}
}

// NewPNG creates a renderer with a 10x6 inch default canvas.
func NewPNG(opts ...Option) *PNG {
	p := &PNG{width: 10 * vg.Inch, height: 6 * vg.Inch}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Supports reports whether the kind can be drawn as a PNG.
func (*PNG) Supports(k chart.Kind) bool {
	switch k {
	case chart.KindLine, chart.KindBox, chart.KindRegression, chart.KindHeatmap, chart.KindBar:
		return true
	}
	return false
}

// Render writes res as a PNG.
func (r *PNG) Render(w io.Writer, res chart.Result) error {
	if !res.HasChart() {
		return fmt.Errorf("png %q: %w", res.Title, ErrNoChart)
	}
	start := time.Now()
	defer func() {
		metrics.RecordImageLatency("png", float64(time.Since(start).Microseconds())/1000.0)
	}()

	switch c := res.Chart.(type) {
	case chart.Line:
		return r.line(w, res.Title, c)
	case chart.BoxPlot:
		return r.box(w, res.Title, c)
	case chart.Regression:
		return r.regression(w, res.Title, c)
	case chart.Heatmap:
		return r.heatmap(w, res.Title, c)
	case chart.Bar:
		return r.bar(w, res.Title, c)
	}
	return fmt.Errorf("png %s: %w", res.Type, ErrUnsupported)
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func (r *PNG) save(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// stacked draws the plots one above the other with aligned x axes.
func (r *PNG) stacked(w io.Writer, plots ...*plot.Plot) error {
	img := vgimg.New(r.width, r.height*vg.Length(len(plots))/2+r.height/2)
	dc := draw.New(img)
	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{Rows: len(plots), Cols: 1, PadY: vg.Points(8), PadTop: vg.Points(4), PadBottom: vg.Points(4)}
	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func xys(x, y []float64) plotter.XYs {
	n := min(len(x), len(y))
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return pts
}

func addSeries(p *plot.Plot, s chart.Series, i int) error {
	pts := xys(s.X, s.Y)
	if len(pts) == 0 {
		return nil
	}
	c := parseColor(s.Color, i)
	dashes := []vg.Length(nil)
	if s.Dash != "" {
		dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	}

	switch s.Mode {
	case chart.ModeMarkers:
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	case chart.ModeLines:
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		l.Color = c
		l.Width = vg.Points(2)
		l.Dashes = dashes
		p.Add(l)
		p.Legend.Add(s.Name, l)
	default:
		l, sc, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		l.Color = c
		l.Width = vg.Points(2)
		l.Dashes = dashes
		sc.Color = c
		p.Add(l, sc)
		p.Legend.Add(s.Name, l, sc)
	}
	return nil
}

func yearTicks(values []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return ticks
}

func (r *PNG) line(w io.Writer, title string, c chart.Line) error {
	left := newPlot(title, c.XLabel, c.YLabel)
	var right *plot.Plot
	for i, s := range c.Series {
		target := left
		if s.Axis == chart.AxisRight {
			if right == nil {
				right = newPlot("", c.XLabel, c.Y2Label)
			}
			target = right
		}
		if err := addSeries(target, s, i); err != nil {
			return err
		}
	}
	if len(c.XTicks) > 0 {
		left.X.Tick.Marker = yearTicks(c.XTicks)
		if right != nil {
			right.X.Tick.Marker = left.X.Tick.Marker
		}
	}
	if right == nil {
		return r.save(w, left)
	}
	return r.stacked(w, left, right)
}

func (r *PNG) box(w io.Writer, title string, c chart.BoxPlot) error {
	p := newPlot(title, "", c.YLabel)
	names := make([]string, 0, len(c.Boxes))
	for i, b := range c.Boxes {
		names = append(names, b.Name)
		if len(b.Values) == 0 {
			continue
		}
		bp, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(b.Values))
		if err != nil {
			return fmt.Errorf("box %q: %w", b.Name, err)
		}
		bp.FillColor = parseColor("", i)
		mean, err := plotter.NewScatter(plotter.XYs{{X: float64(i), Y: b.Mean}})
		if err != nil {
			return fmt.Errorf("box %q mean: %w", b.Name, err)
		}
		mean.GlyphStyle.Shape = draw.CrossGlyph{}
		mean.GlyphStyle.Radius = vg.Points(5)
		p.Add(bp, mean)
	}
	p.NominalX(names...)
	return r.save(w, p)
}

func (r *PNG) regression(w io.Writer, title string, c chart.Regression) error {
	p := newPlot(title, c.XLabel, c.YLabel)
	pts := make(plotter.XYs, len(c.Points))
	top := math.Inf(-1)
	for i, pt := range c.Points {
		pts[i].X, pts[i].Y = pt.X, pt.Y
		top = math.Max(top, pt.Y)
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("regression points: %w", err)
	}
	sc.GlyphStyle.Color = parseColor("blue", 0)
	sc.GlyphStyle.Radius = vg.Points(4)
	p.Add(sc)
	p.Legend.Add(c.YLabel, sc)

	fit := make(plotter.XYs, len(c.Line))
	for i, pt := range c.Line {
		fit[i].X, fit[i].Y = pt.X, pt.Y
		top = math.Max(top, pt.Y)
	}
	if len(fit) > 1 {
		l, err := plotter.NewLine(fit)
		if err != nil {
			return fmt.Errorf("regression line: %w", err)
		}
		l.Color = parseColor("red", 1)
		l.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add("Regression Line", l)
	}
	if c.Annotation != "" && !math.IsInf(top, -1) {
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: 0.5, Y: top}},
			Labels: []string{c.Annotation},
		})
		if err != nil {
			return fmt.Errorf("regression annotation: %w", err)
		}
		p.Add(labels)
	}
	p.X.Min, p.X.Max = -0.5, 1.5
	p.X.Tick.Marker = plot.ConstantTicks{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}}
	return r.save(w, p)
}

// matrixGrid exposes a square matrix as a heat map grid.
type matrixGrid [][]*float64

func (g matrixGrid) Dims() (c, r int) { return len(g), len(g) }
func (g matrixGrid) X(c int) float64  { return float64(c) }
func (g matrixGrid) Y(r int) float64  { return float64(r) }
func (g matrixGrid) Z(c, r int) float64 {
	if v := g[r][c]; v != nil {
		return *v
	}
	return math.NaN()
}

func (r *PNG) heatmap(w io.Writer, title string, c chart.Heatmap) error {
	if len(c.Z) == 0 {
		return fmt.Errorf("heatmap %q: %w", title, ErrNoChart)
	}
	p := newPlot(title, "Metrics", "Metrics")
	hm := plotter.NewHeatMap(matrixGrid(c.Z), samplePalette(colorscale.Blues, 64))
	hm.Min, hm.Max = c.ZMin, c.ZMax
	hm.NaN = color.Transparent
	p.Add(hm)

	var cells plotter.XYLabels
	for i, row := range c.Text {
		for j, text := range row {
			cells.XYs = append(cells.XYs, plotter.XY{X: float64(j), Y: float64(i)})
			cells.Labels = append(cells.Labels, text)
		}
	}
	if len(cells.Labels) > 0 {
		labels, err := plotter.NewLabels(cells)
		if err != nil {
			return fmt.Errorf("heatmap labels: %w", err)
		}
		p.Add(labels)
	}
	p.NominalX(c.Labels...)
	p.NominalY(c.Labels...)
	return r.save(w, p)
}

func (r *PNG) bar(w io.Writer, title string, c chart.Bar) error {
	p := newPlot(title, c.XLabel, c.YLabel)
	values := make(plotter.Values, len(c.Values))
	for i, v := range c.Values {
		values[i] = float64(v)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("bar %q: %w", title, err)
	}
	rc, gc, bc := colorscale.Blues.Sample(0.7)
	bars.Color = color.RGBA{R: rc, G: gc, B: bc, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(c.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return r.save(w, p)
}
