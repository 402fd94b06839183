package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/medalboard/internal/adapters/render"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/pkg/logger"
)

// TablesHandler serves the medal tables as JSON and XLSX.
type TablesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewTablesHandler creates a new tables handler.
func NewTablesHandler(deps Dependencies, l logger.Logger) *TablesHandler {
	return &TablesHandler{deps: deps, logger: l}
}

type medalTableResponse struct {
	Title string       `json:"title"`
	Year  int          `json:"year"`
	Sort  model.Tier   `json:"sort"`
	Table *chart.Table `json:"table"`
}

type averageRow struct {
	Country string  `json:"country"`
	Games   int     `json:"games"`
	Gold    float64 `json:"gold"`
	Silver  float64 `json:"silver"`
	Bronze  float64 `json:"bronze"`
	Total   float64 `json:"total"`
}

func (h *TablesHandler) medalTable(r *http.Request) (service.MedalTable, error) {
	q := r.URL.Query()
	year := 0
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return service.MedalTable{}, fmt.Errorf("year=%q: %w", v, ErrBadRequest)
		}
		year = n
	}
	var sort model.Tier
	if v := q.Get("sort"); v != "" {
		t, err := model.ParseTier(v)
		if err != nil {
			return service.MedalTable{}, fmt.Errorf("sort: %v: %w", err, ErrBadRequest)
		}
		sort = t
	}
	return h.deps.MedalTable(r.Context(), year, sort)
}

// HandleMedalTable handles GET /tables/medals.
func (h *TablesHandler) HandleMedalTable(w http.ResponseWriter, r *http.Request) {
	t, err := h.medalTable(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, medalTableResponse{
		Title: t.Title(h.deps.Season()),
		Year:  t.Year,
		Sort:  t.Sort,
		Table: t.Table(),
	})
}

// HandleAverages handles GET /tables/averages.
func (h *TablesHandler) HandleAverages(w http.ResponseWriter, r *http.Request) {
	avgs, err := h.deps.Averages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rows := make([]averageRow, len(avgs))
	for i, a := range avgs {
		rows[i] = averageRow(a)
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleMedalWorkbook handles GET /tables/medals.xlsx: the medal table of a
// year plus every country's averages.
func (h *TablesHandler) HandleMedalWorkbook(w http.ResponseWriter, r *http.Request) {
	t, err := h.medalTable(r)
	if err != nil {
		writeError(w, err)
		return
	}
	avgs, err := h.deps.Averages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	medals := render.Sheet{
		Name:    fmt.Sprintf("Medals %d", t.Year),
		Title:   t.Title(h.deps.Season()),
		Columns: []string{"Country_Name", "Gold", "Silver", "Bronze", "Total"},
		Bars: []render.DataBar{
			{Column: 1, Color: service.TierColors[0]},
			{Column: 2, Color: service.TierColors[1]},
			{Column: 3, Color: service.TierColors[2]},
		},
	}
	for _, row := range t.Rows {
		medals.Rows = append(medals.Rows, []any{row.Country, row.Gold, row.Silver, row.Bronze, row.Total()})
	}
	averages := render.Sheet{
		Name:    "Averages",
		Title:   "Average Medals per Games",
		Columns: []string{"Country_Name", "Games", "Gold", "Silver", "Bronze", "Total"},
		Bars:    []render.DataBar{{Column: 5, Color: "#4472C4"}},
	}
	for _, a := range avgs {
		averages.Rows = append(averages.Rows, []any{a.Country, a.Games, a.Gold, a.Silver, a.Bronze, a.Total})
	}

	var buf bytes.Buffer
	if err := render.XLSX(&buf, medals, averages); err != nil {
		h.logger.Error(r.Context(), "xlsx export failed", logger.Error(err))
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("medals-%d.xlsx", t.Year)))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
