package aggregate

import (
	"sort"

	"github.com/okian/medalboard/internal/domain/dedupe"
	"github.com/okian/medalboard/internal/domain/model"
)

// EventKey identifies one medal award for a team.
type EventKey struct {
	Year  int
	Event string
	Team  string
}

// TeamCount is a number of gold medals won by a team.
type TeamCount struct {
	Team  string
	Count int
}

// SportFlow is a number of gold medals a team won in one sport.
type SportFlow struct {
	Sport string
	Gold  int
}

// GoldFilter narrows the gold medal rows. Zero values mean "any".
type GoldFilter struct {
	Season string
	Sport  string
	Team   string
	Year   int
}

func (f GoldFilter) match(r model.AthleteResult) bool {
	switch {
	case f.Season != "" && r.Season != f.Season:
		return false
	case f.Sport != "" && r.Sport != f.Sport:
		return false
	case f.Team != "" && r.Team != f.Team:
		return false
	case f.Year != 0 && r.Year != f.Year:
		return false
	}
	return true
}

// Golds returns the gold medal rows matching the filter, one per
// (year, event, team).
func Golds(results []model.AthleteResult, f GoldFilter) []model.AthleteResult {
	var golds []model.AthleteResult
	for _, r := range results {
		if r.Won(model.Gold) && f.match(r) {
			golds = append(golds, r)
		}
	}
	return dedupe.Filter(golds, func(r model.AthleteResult) EventKey {
		return EventKey{Year: r.Year, Event: r.Event, Team: r.Team}
	})
}

// GoldByTeam counts deduplicated gold medals per team, sorted by count
// descending then team name.
func GoldByTeam(results []model.AthleteResult, f GoldFilter) []TeamCount {
	index := make(map[string]int)
	var out []TeamCount
	for _, r := range Golds(results, f) {
		i, ok := index[r.Team]
		if !ok {
			i = len(out)
			index[r.Team] = i
			out = append(out, TeamCount{Team: r.Team})
		}
		out[i].Count++
	}
	sortCounts(out)
	return out
}

func sortCounts(c []TeamCount) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Count != c[j].Count {
			return c[i].Count > c[j].Count
		}
		return c[i].Team < c[j].Team
	})
}

// TopTeams keeps the n best teams. When fewer than n teams have medals, the
// list is padded with zero-count teams taken alphabetically from allTeams
// minus the medal winners, then re-sorted by count descending and name
// ascending. The result is shorter than n only if allTeams runs out.
func TopTeams(counts []TeamCount, allTeams []string, n int) []TeamCount {
	if n <= 0 {
		return nil
	}
	ranked := make([]TeamCount, len(counts))
	copy(ranked, counts)
	sortCounts(ranked)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	if len(ranked) < n {
		winners := make(map[string]struct{}, len(counts))
		for _, c := range counts {
			winners[c.Team] = struct{}{}
		}
		var without []string
		for _, team := range allTeams {
			if _, ok := winners[team]; !ok {
				winners[team] = struct{}{}
				without = append(without, team)
			}
		}
		sort.Strings(without)
		for _, team := range without {
			if len(ranked) == n {
				break
			}
			ranked = append(ranked, TeamCount{Team: team})
		}
	}
	sortCounts(ranked)
	return ranked
}

// TopGoldTeams returns the n teams with the most gold in a season/year.
func TopGoldTeams(results []model.AthleteResult, season string, year, n int) []TeamCount {
	counts := GoldByTeam(results, GoldFilter{Season: season, Year: year})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// SportFlows counts a team's deduplicated gold per sport for a year, sorted
// by sport name. Sports without gold are absent.
func SportFlows(results []model.AthleteResult, season, team string, year int) []SportFlow {
	index := make(map[string]int)
	var out []SportFlow
	for _, r := range Golds(results, GoldFilter{Season: season, Team: team, Year: year}) {
		i, ok := index[r.Sport]
		if !ok {
			i = len(out)
			index[r.Sport] = i
			out = append(out, SportFlow{Sport: r.Sport})
		}
		out[i].Gold++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sport < out[j].Sport })
	return out
}

// GoldYears returns the years with at least one gold in the season,
// most recent first.
func GoldYears(results []model.AthleteResult, season string) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range results {
		if !r.Won(model.Gold) || (season != "" && r.Season != season) {
			continue
		}
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Teams returns every distinct team of the season.
func Teams(results []model.AthleteResult, season string) []string {
	return distinct(results, season, func(r model.AthleteResult) string { return r.Team })
}

// Sports returns every distinct sport of the season in first-seen order.
func Sports(results []model.AthleteResult, season string) []string {
	return distinct(results, season, func(r model.AthleteResult) string { return r.Sport })
}

// ResultYears returns the distinct years of the season, ascending.
func ResultYears(results []model.AthleteResult, season string) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range results {
		if season != "" && r.Season != season {
			continue
		}
		if _, ok := seen[r.Year]; !ok {
			seen[r.Year] = struct{}{}
			out = append(out, r.Year)
		}
	}
	sort.Ints(out)
	return out
}

func distinct(results []model.AthleteResult, season string, field func(model.AthleteResult) string) []string {
	s := dedupe.NewSet[string]()
	var out []string
	for _, r := range results {
		if season != "" && r.Season != season {
			continue
		}
		v := field(r)
		if v == "" || s.SeenAndRecord(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
