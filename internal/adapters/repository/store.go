// Package repository loads the Olympic datasets into immutable in-memory
// tables and serves them read-only.
package repository

import "github.com/okian/medalboard/internal/domain/model"

// Dataset names, used for logs, metrics and row counts.
const (
	DatasetHosts    = "hosts"
	DatasetMedals   = "medals"
	DatasetGDP      = "gdp"
	DatasetAthletes = "athletes"
)

// Store provides read access to the loaded tables. Returned slices are
// shared and must not be modified.
type Store interface {
	Hosts() []model.Host
	Medals() []model.MedalRecord
	GDP() []model.GDPPoint
	Results() []model.AthleteResult

	// Counts returns the number of rows per dataset.
	Counts() map[string]int
}

// Tables is a Store over fixed slices.
type Tables struct {
	hosts   []model.Host
	medals  []model.MedalRecord
	gdp     []model.GDPPoint
	results []model.AthleteResult
}

// NewTables wraps already-parsed rows. Useful in tests and for callers that
// build their own tables.
func NewTables(hosts []model.Host, medals []model.MedalRecord, gdp []model.GDPPoint, results []model.AthleteResult) *Tables {
	return &Tables{hosts: hosts, medals: medals, gdp: gdp, results: results}
}

func (t *Tables) Hosts() []model.Host            { return t.hosts }
func (t *Tables) Medals() []model.MedalRecord    { return t.medals }
func (t *Tables) GDP() []model.GDPPoint          { return t.gdp }
func (t *Tables) Results() []model.AthleteResult { return t.results }

func (t *Tables) Counts() map[string]int {
	return map[string]int{
		DatasetHosts:    len(t.hosts),
		DatasetMedals:   len(t.medals),
		DatasetGDP:      len(t.gdp),
		DatasetAthletes: len(t.results),
	}
}
