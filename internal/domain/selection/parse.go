package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/medalboard/internal/domain/model"
)

// ParseCategory accepts a category slug or its menu label.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, o := range Menu {
		if strings.EqualFold(s, string(o.Category)) || strings.EqualFold(s, o.Label) {
			return o.Category, nil
		}
	}
	return "", fmt.Errorf("category %q: %w", s, ErrBadSelection)
}

// ParseKind accepts a kind slug or its menu label within a category.
func ParseKind(c Category, s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, o := range Menu {
		if o.Category != c {
			continue
		}
		for _, k := range o.Kinds {
			if strings.EqualFold(s, string(k.Kind)) || strings.EqualFold(s, k.Label) {
				return k.Kind, nil
			}
		}
	}
	return "", fmt.Errorf("kind %q in %s: %w", s, c, ErrBadSelection)
}

// Parse builds a selection from string parameters. Unknown parameters are
// ignored; missing ones are left at their zero value.
func Parse(category, kind string, params map[string]string) (Selection, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	k, err := ParseKind(c, kind)
	if err != nil {
		return nil, err
	}
	p := reader{params: params}

	var sel Selection
	switch {
	case c == Overview && k == Data:
		sel = OverviewData{Year: p.int("year"), Sort: p.tier("sort"), Country: p.str("country")}
	case c == Overview && k == Map:
		sel = OverviewMap{Year: p.int("year"), Tier: p.tier("tier")}
	case c == Host && k == Line:
		sel = HostLine{Country: p.str("country"), Tier: p.tier("tier")}
	case c == Host && k == Box:
		sel = HostBox{Country: p.str("country")}
	case c == Host && k == Regression:
		sel = HostRegression{Country: p.str("country"), Tier: p.tier("tier")}
	case c == Economy && k == Line:
		sel = EconomyLine{}
	case c == Economy && k == Heatmap:
		sel = EconomyHeatmap{Start: p.int("start"), End: p.int("end"), Metrics: p.metrics("metrics")}
	case c == Events && k == Bar:
		sel = EventsBar{Sport: p.str("sport"), Year: p.int("year")}
	case c == Events && k == Sankey:
		sel = EventsSankey{Year: p.int("year"), Country: p.str("country")}
	}
	if p.err != nil {
		return nil, p.err
	}
	return sel, nil
}

// reader collects the first conversion error so Parse stays linear.
type reader struct {
	params map[string]string
	err    error
}

func (r *reader) str(key string) string {
	return strings.TrimSpace(r.params[key])
}

func (r *reader) int(key string) int {
	v := r.str(key)
	if v == "" || r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.err = fmt.Errorf("%s=%q: not a number: %w", key, v, ErrBadSelection)
		return 0
	}
	return n
}

func (r *reader) tier(key string) model.Tier {
	v := r.str(key)
	if v == "" || r.err != nil {
		return ""
	}
	t, err := model.ParseTier(v)
	if err != nil {
		r.err = fmt.Errorf("%s: %v: %w", key, err, ErrBadSelection)
		return ""
	}
	return t
}

func (r *reader) metrics(key string) []model.Metric {
	v := r.str(key)
	if v == "" || r.err != nil {
		return nil
	}
	var out []model.Metric
	for _, part := range strings.Split(v, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := model.ParseMetric(part)
		if err != nil {
			r.err = fmt.Errorf("%s: %v: %w", key, err, ErrBadSelection)
			return nil
		}
		out = append(out, m)
	}
	return out
}
