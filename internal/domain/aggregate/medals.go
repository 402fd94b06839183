// Package aggregate groups the loaded tables into the derived rows charts
// are built from. Every function is pure; inputs are never modified.
package aggregate

import (
	"sort"

	"github.com/okian/medalboard/internal/domain/model"
)

// Tally holds tier counts. Total is always derived from the three tiers.
type Tally struct {
	Gold   int
	Silver int
	Bronze int
}

// Total is Gold+Silver+Bronze.
func (t Tally) Total() int { return t.Gold + t.Silver + t.Bronze }

// Count returns the value for a tier, including Total.
func (t Tally) Count(tier model.Tier) int {
	switch tier {
	case model.Gold:
		return t.Gold
	case model.Silver:
		return t.Silver
	case model.Bronze:
		return t.Bronze
	default:
		return t.Total()
	}
}

func (t *Tally) add(r model.MedalRecord) {
	t.Gold += r.Gold
	t.Silver += r.Silver
	t.Bronze += r.Bronze
}

// CountryTally is a Tally keyed by country name.
type CountryTally struct {
	Country string
	Tally
}

// YearTally is a Tally keyed by games year.
type YearTally struct {
	Year int
	Tally
}

// CountryAverage is the per-games mean of each tier for a country.
type CountryAverage struct {
	Country string
	Games   int
	Gold    float64
	Silver  float64
	Bronze  float64
	Total   float64
}

// ByCountry sums the records of one year per country, in first-seen order.
func ByCountry(records []model.MedalRecord, year int) []CountryTally {
	index := make(map[string]int)
	var out []CountryTally
	for _, r := range records {
		if r.Year != year {
			continue
		}
		i, ok := index[r.CountryName]
		if !ok {
			i = len(out)
			index[r.CountryName] = i
			out = append(out, CountryTally{Country: r.CountryName})
		}
		out[i].add(r)
	}
	return out
}

// SortByTier orders tallies by the tier, highest first, ties broken by
// country name.
func SortByTier(tallies []CountryTally, tier model.Tier) {
	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i].Count(tier), tallies[j].Count(tier)
		if a != b {
			return a > b
		}
		return tallies[i].Country < tallies[j].Country
	})
}

// ByYear sums one country's records per year, ascending by year.
func ByYear(records []model.MedalRecord, country string) []YearTally {
	index := make(map[int]int)
	var out []YearTally
	for _, r := range records {
		if r.CountryName != country {
			continue
		}
		i, ok := index[r.Year]
		if !ok {
			i = len(out)
			index[r.Year] = i
			out = append(out, YearTally{Year: r.Year})
		}
		out[i].add(r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Averages computes each country's mean tier counts over its rows, sorted by
// country name.
func Averages(records []model.MedalRecord) []CountryAverage {
	type acc struct {
		n int
		t Tally
	}
	byCountry := make(map[string]*acc)
	for _, r := range records {
		a, ok := byCountry[r.CountryName]
		if !ok {
			a = &acc{}
			byCountry[r.CountryName] = a
		}
		a.n++
		a.t.add(r)
	}
	out := make([]CountryAverage, 0, len(byCountry))
	for name, a := range byCountry {
		n := float64(a.n)
		out = append(out, CountryAverage{
			Country: name,
			Games:   a.n,
			Gold:    float64(a.t.Gold) / n,
			Silver:  float64(a.t.Silver) / n,
			Bronze:  float64(a.t.Bronze) / n,
			Total:   float64(a.t.Total()) / n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}

// Years returns the distinct years of the medal table, ascending.
func Years(records []model.MedalRecord) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Ints(out)
	return out
}

// Countries returns the distinct country names in first-seen order.
func Countries(records []model.MedalRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if _, ok := seen[r.CountryName]; ok {
			continue
		}
		seen[r.CountryName] = struct{}{}
		out = append(out, r.CountryName)
	}
	return out
}

// HostYears returns the years the country hosted that also appear in its
// medal years, ascending.
func HostYears(hosts []model.Host, country string, medalYears []int) []int {
	have := make(map[int]struct{}, len(medalYears))
	for _, y := range medalYears {
		have[y] = struct{}{}
	}
	seen := make(map[int]struct{})
	var out []int
	for _, h := range hosts {
		if h.Location != country {
			continue
		}
		if _, ok := have[h.Year]; !ok {
			continue
		}
		if _, dup := seen[h.Year]; dup {
			continue
		}
		seen[h.Year] = struct{}{}
		out = append(out, h.Year)
	}
	sort.Ints(out)
	return out
}
