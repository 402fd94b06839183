package api

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/medalboard/internal/adapters/render"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/selection"
	"github.com/okian/medalboard/pkg/logger"
)

// ChartsHandler serves chart descriptors and their images.
type ChartsHandler struct {
	deps   Dependencies
	png    *render.PNG
	logger logger.Logger
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies, png *render.PNG, l logger.Logger) *ChartsHandler {
	return &ChartsHandler{deps: deps, png: png, logger: l}
}

func (h *ChartsHandler) result(r *http.Request, category, kind string) (chart.Result, error) {
	sel, err := selection.Parse(category, kind, params(r))
	if err != nil {
		return chart.Result{}, err
	}
	return h.deps.Render(r.Context(), sel)
}

// HandleChart handles GET /charts/{category}/{kind} with the descriptor as JSON.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := h.result(r, vars["category"], vars["kind"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandlePNG handles GET /charts/{category}/{kind}.png.
func (h *ChartsHandler) HandlePNG(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := h.result(r, vars["category"], vars["kind"])
	if err != nil {
		writeError(w, err)
		return
	}
	if res.HasChart() && !h.png.Supports(res.Type) {
		writeError(w, render.ErrUnsupported)
		return
	}

	var buf bytes.Buffer
	if err := h.png.Render(&buf, res); err != nil {
		h.logger.Warn(r.Context(), "png render failed",
			logger.String("category", vars["category"]),
			logger.String("kind", vars["kind"]),
			logger.Error(err))
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleSankeySVG handles GET /charts/events/sankey.svg.
func (h *ChartsHandler) HandleSankeySVG(w http.ResponseWriter, r *http.Request) {
	res, err := h.result(r, string(selection.Events), string(selection.Sankey))
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.SankeySVG(r.Context(), &buf, res); err != nil {
		h.logger.Warn(r.Context(), "svg render failed", logger.Error(err))
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
