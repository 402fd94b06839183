package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/pkg/metrics"
)

const (
	minPenWidth = 1.0
	maxPenWidth = 12.0
)

// SankeyDOT lays a Sankey out as a left-to-right digraph. Nodes sharing an
// x position share a rank and edge width grows with the link value.
func SankeyDOT(title string, s chart.Sankey) string {
	var sb strings.Builder

	sb.WriteString("digraph Sankey {\n")
	sb.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&sb, "  label=%q;\n", title)
	sb.WriteString("  labelloc=t;\n")
	sb.WriteString("  fontname=\"Helvetica-Bold\";\n")
	sb.WriteString("  nodesep=0.3;\n")
	sb.WriteString("  ranksep=2.5;\n\n")
	sb.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#f2f2f2\", fontname=\"Helvetica\", fontsize=12];\n")
	sb.WriteString("  edge [arrowhead=none];\n\n")

	for i, n := range s.Nodes {
		fmt.Fprintf(&sb, "  n%d [label=%q];\n", i, n.Label)
	}

	ranks := make(map[float64][]int)
	var xs []float64
	for i, n := range s.Nodes {
		if _, ok := ranks[n.X]; !ok {
			xs = append(xs, n.X)
		}
		ranks[n.X] = append(ranks[n.X], i)
	}
	slices.Sort(xs)
	for _, x := range xs {
		ids := make([]string, len(ranks[x]))
		for j, i := range ranks[x] {
			ids[j] = fmt.Sprintf("n%d", i)
		}
		fmt.Fprintf(&sb, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}
	sb.WriteString("\n")

	top := 0
	for _, l := range s.Links {
		top = max(top, l.Value)
	}
	for i, l := range s.Links {
		width := minPenWidth
		if top > 0 {
			width += (maxPenWidth - minPenWidth) * float64(l.Value) / float64(top)
		}
		fmt.Fprintf(&sb, "  n%d -> n%d [penwidth=%.2f, color=%q, tooltip=\"%d\"];\n",
			l.Source, l.Target, width, hex(parseColor(l.Color, i)), l.Value)
	}

	sb.WriteString("}\n")
	return sb.String()
}

// SankeySVG renders a Sankey result to SVG through graphviz.
func SankeySVG(ctx context.Context, w io.Writer, res chart.Result) error {
	if !res.HasChart() {
		return fmt.Errorf("svg %q: %w", res.Title, ErrNoChart)
	}
	s, ok := res.Chart.(chart.Sankey)
	if !ok {
		return fmt.Errorf("svg %s: %w", res.Type, ErrUnsupported)
	}
	start := time.Now()
	defer func() {
		metrics.RecordImageLatency("svg", float64(time.Since(start).Microseconds())/1000.0)
	}()

	g, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer g.Close()

	graph, err := graphviz.ParseBytes([]byte(SankeyDOT(res.Title, s)))
	if err != nil {
		return fmt.Errorf("failed to parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := g.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
