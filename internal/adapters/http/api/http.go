// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/okian/medalboard/internal/adapters/render"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/domain/aggregate"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/internal/domain/selection"
	"github.com/okian/medalboard/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Render(ctx context.Context, sel selection.Selection) (chart.Result, error)
	Options(ctx context.Context) (service.Menu, error)
	SankeyCountries(ctx context.Context, year int) ([]aggregate.TeamCount, error)
	MedalTable(ctx context.Context, year int, sort model.Tier) (service.MedalTable, error)
	Averages(ctx context.Context) ([]aggregate.CountryAverage, error)
	Season() string
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	chartsHandler  *ChartsHandler
	tablesHandler  *TablesHandler
	optionsHandler *OptionsHandler
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	png    *render.PNG
	logger logger.Logger
}

// WithPNG sets the renderer used for image endpoints.
func WithPNG(p *render.PNG) ServerOption {
	return func(o *serverOptions) {
		if p != nil {
			o.png = p
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	o := serverOptions{png: render.NewPNG(), logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		chartsHandler:  NewChartsHandler(deps, o.png, o.logger),
		tablesHandler:  NewTablesHandler(deps, o.logger),
		optionsHandler: NewOptionsHandler(deps),
	}
}

// Register attaches all HTTP routes to router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	router.Use(RequestIDMiddleware)

	// Specific paths first; gorilla/mux matches in registration order.
	router.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	router.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
	router.HandleFunc("/options", MetricsMiddleware(s.optionsHandler.HandleOptions, "options")).Methods(http.MethodGet)
	router.HandleFunc("/options/sankey", MetricsMiddleware(s.optionsHandler.HandleSankeyCountries, "options_sankey")).Methods(http.MethodGet)
	router.HandleFunc("/tables/medals.xlsx", MetricsMiddleware(s.tablesHandler.HandleMedalWorkbook, "tables_xlsx")).Methods(http.MethodGet)
	router.HandleFunc("/tables/medals", MetricsMiddleware(s.tablesHandler.HandleMedalTable, "tables_medals")).Methods(http.MethodGet)
	router.HandleFunc("/tables/averages", MetricsMiddleware(s.tablesHandler.HandleAverages, "tables_averages")).Methods(http.MethodGet)
	router.HandleFunc("/charts/events/sankey.svg", MetricsMiddleware(s.chartsHandler.HandleSankeySVG, "charts_svg")).Methods(http.MethodGet)
	router.HandleFunc("/charts/{category}/{kind:[^/.]+}.png", MetricsMiddleware(s.chartsHandler.HandlePNG, "charts_png")).Methods(http.MethodGet)
	router.HandleFunc("/charts/{category}/{kind:[^/.]+}", MetricsMiddleware(s.chartsHandler.HandleChart, "charts")).Methods(http.MethodGet)
}

// params flattens the query string. Repeated keys are joined with commas.
func params(r *http.Request) map[string]string {
	q := r.URL.Query()
	out := make(map[string]string, len(q))
	for k, vs := range q {
		out[k] = strings.Join(vs, ",")
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
