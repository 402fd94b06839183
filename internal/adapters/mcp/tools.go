// Package mcp exposes the dashboard as Model Context Protocol tools.
package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/olekukonko/tablewriter"

	"github.com/okian/medalboard/internal/adapters/render"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/internal/domain/selection"
)

// Dashboard is the part of the service the tools call.
type Dashboard interface {
	Render(ctx context.Context, sel selection.Selection) (chart.Result, error)
	Options(ctx context.Context) (service.Menu, error)
	MedalTable(ctx context.Context, year int, sort model.Tier) (service.MedalTable, error)
	Season() string
}

// Tools holds the tool handlers bound to one dashboard.
type Tools struct {
	dash Dashboard
	png  *render.PNG
}

// New binds the tools to a dashboard.
func New(d Dashboard) *Tools {
	return &Tools{dash: d, png: render.NewPNG()}
}

// Register registers all tools with the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_options",
		mcp.WithDescription("Lists chart categories, kinds and the values each selector accepts (years, countries, tiers, sports, metrics)."),
	), t.ListOptions)

	s.AddTool(mcp.NewTool("render_chart",
		mcp.WithDescription("Builds an Olympic medal chart. Returns the chart descriptor as JSON, or a PNG image for line, box, regression, heatmap and bar charts."),
		mcp.WithString("category", mcp.Required(), mcp.Description("overview, host, economy or events")),
		mcp.WithString("kind", mcp.Required(), mcp.Description("data, map, line, box, regression, heatmap, bar or sankey")),
		mcp.WithNumber("year", mcp.Description("Games year")),
		mcp.WithString("country", mcp.Description("Country or team name")),
		mcp.WithString("tier", mcp.Description("Gold, Silver, Bronze or Total")),
		mcp.WithString("sort", mcp.Description("Medal table sort tier")),
		mcp.WithString("sport", mcp.Description("Sport of the events bar chart")),
		mcp.WithNumber("start", mcp.Description("First heatmap year")),
		mcp.WithNumber("end", mcp.Description("Last heatmap year")),
		mcp.WithString("metrics", mcp.Description("Comma separated heatmap metrics")),
		mcp.WithString("format", mcp.Description("json (default) or png")),
	), t.RenderChart)

	s.AddTool(mcp.NewTool("medal_table",
		mcp.WithDescription("Prints the medal table of a games year as text."),
		mcp.WithNumber("year", mcp.Description("Games year, defaults to the first one")),
		mcp.WithString("sort", mcp.Description("Gold, Silver, Bronze or Total")),
	), t.MedalTable)
}

// ListOptions handles list_options.
func (t *Tools) ListOptions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := t.dash.Options(ctx)
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to list options: %v", err)), nil
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// RenderChart handles render_chart.
func (t *Tools) RenderChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request.Params.Arguments)
	sel, err := selection.Parse(args["category"], args["kind"], args)
	if err != nil {
		return newToolResultError(err.Error()), nil
	}
	res, err := t.dash.Render(ctx, sel)
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to render chart: %v", err)), nil
	}

	if strings.EqualFold(args["format"], "png") {
		var buf bytes.Buffer
		if err := t.png.Render(&buf, res); err != nil {
			return newToolResultError(fmt.Sprintf("failed to draw %s: %v", res.Type, err)), nil
		}
		return mcp.NewToolResultImage(res.Title, base64.StdEncoding.EncodeToString(buf.Bytes()), "image/png"), nil
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MedalTable handles medal_table.
func (t *Tools) MedalTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request.Params.Arguments)
	year := 0
	if v := args["year"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return newToolResultError(fmt.Sprintf("year %q is not a number", v)), nil
		}
		year = n
	}
	var tier model.Tier
	if v := args["sort"]; v != "" {
		p, err := model.ParseTier(v)
		if err != nil {
			return newToolResultError(err.Error()), nil
		}
		tier = p
	}
	mt, err := t.dash.MedalTable(ctx, year, tier)
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to build medal table: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(mt.Title(t.dash.Season()) + "\n\n")
	grid := mt.Table()
	tw := tablewriter.NewWriter(&sb)
	tw.SetHeader(grid.Columns)
	tw.AppendBulk(grid.Rows)
	tw.Render()
	return mcp.NewToolResultText(sb.String()), nil
}

// arguments flattens tool arguments to strings. Whole numbers lose their
// fraction and lists are joined with commas.
func arguments(in map[string]interface{}) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch x := v.(type) {
		case string:
			out[k] = x
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		case int:
			out[k] = strconv.Itoa(x)
		case bool:
			out[k] = strconv.FormatBool(x)
		case []interface{}:
			parts := make([]string, 0, len(x))
			for _, p := range x {
				parts = append(parts, fmt.Sprint(p))
			}
			out[k] = strings.Join(parts, ",")
		case nil:
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}

func newToolResultError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: message,
			},
		},
		IsError: true,
	}
}
