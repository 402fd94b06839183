package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// OptionsHandler serves selector values.
type OptionsHandler struct {
	deps Dependencies
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps Dependencies) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

type sankeyCountry struct {
	Country string `json:"country"`
	Gold    int    `json:"gold"`
}

// HandleOptions handles GET /options.
func (h *OptionsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	m, err := h.deps.Options(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleSankeyCountries handles GET /options/sankey?year=.
func (h *OptionsHandler) HandleSankeyCountries(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, fmt.Errorf("year=%q: %w", v, ErrBadRequest))
			return
		}
		year = n
	}
	teams, err := h.deps.SankeyCountries(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]sankeyCountry, len(teams))
	for i, t := range teams {
		out[i] = sankeyCountry{Country: t.Team, Gold: t.Count}
	}
	writeJSON(w, http.StatusOK, out)
}
