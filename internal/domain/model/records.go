// Package model contains the immutable rows loaded from the Olympic datasets.
package model

// MedalRecord is one row of the per-country per-games medal table.
type MedalRecord struct {
	CountryCode string
	CountryName string
	Year        int
	HostCity    string
	HostCountry string
	Gold        int
	Silver      int
	Bronze      int
}

// Total is the sum of the three tiers.
func (r MedalRecord) Total() int {
	return r.Gold + r.Silver + r.Bronze
}

// Count returns the value of a tier, including the derived Total.
func (r MedalRecord) Count(t Tier) int {
	switch t {
	case Gold:
		return r.Gold
	case Silver:
		return r.Silver
	case Bronze:
		return r.Bronze
	default:
		return r.Total()
	}
}

// Host is one edition of the games and where it was held.
type Host struct {
	Slug     string
	Name     string
	Location string // host country
	Season   string // "Summer" or "Winter"
	Year     int
}

// GDPPoint is one year of the economy series.
type GDPPoint struct {
	Year         int
	GDP          float64 // trillions of US dollars
	WorldPercent float64
}

// AthleteResult is one athlete entry in one event. Medal is empty when the
// athlete did not place.
type AthleteResult struct {
	ID     string
	Name   string
	Team   string
	NOC    string
	Games  string
	Year   int
	Season string
	City   string
	Sport  string
	Event  string
	Medal  Tier
}

// Won reports whether the entry earned a medal of tier t.
func (a AthleteResult) Won(t Tier) bool {
	return a.Medal != "" && a.Medal == t
}
