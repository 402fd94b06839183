package repository

import (
	"fmt"
	"strings"

	"github.com/okian/medalboard/internal/domain/model"
)

// ReadHosts reads olympic_hosts.csv, keeping the games of one season.
// An empty season keeps every row.
func ReadHosts(path, season string) ([]model.Host, error) {
	var out []model.Host
	err := readCSV(path, ',', []string{"game_slug", "game_location", "game_name", "game_season", "game_year"}, func(r row) error {
		if season != "" && !strings.EqualFold(r.str("game_season"), season) {
			return nil
		}
		year, err := r.int("game_year")
		if err != nil {
			return err
		}
		out = append(out, model.Host{
			Slug:     r.str("game_slug"),
			Name:     r.str("game_name"),
			Location: r.str("game_location"),
			Season:   r.str("game_season"),
			Year:     year,
		})
		return nil
	})
	return out, err
}

// ReadMedals reads Country_Medals.csv.
func ReadMedals(path string, delim rune) ([]model.MedalRecord, error) {
	var out []model.MedalRecord
	cols := []string{"Year", "Country_Code", "Country_Name", "Host_city", "Host_country", "Gold", "Silver", "Bronze"}
	err := readCSV(path, delim, cols, func(r row) error {
		rec := model.MedalRecord{
			CountryCode: r.str("Country_Code"),
			CountryName: r.str("Country_Name"),
			HostCity:    r.str("Host_city"),
			HostCountry: r.str("Host_country"),
		}
		var err error
		if rec.Year, err = r.int("Year"); err != nil {
			return err
		}
		if rec.Gold, err = r.int("Gold"); err != nil {
			return err
		}
		if rec.Silver, err = r.int("Silver"); err != nil {
			return err
		}
		if rec.Bronze, err = r.int("Bronze"); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// ReadGDP reads the economy country's GDP series.
func ReadGDP(path string) ([]model.GDPPoint, error) {
	var out []model.GDPPoint
	err := readCSV(path, ',', []string{"Year", "GDP", "GDP_WorldPercent"}, func(r row) error {
		var (
			p   model.GDPPoint
			err error
		)
		if p.Year, err = r.int("Year"); err != nil {
			return err
		}
		if p.GDP, err = r.float("GDP"); err != nil {
			return err
		}
		if p.WorldPercent, err = r.float("GDP_WorldPercent"); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// ReadAthletes reads athlete_events.csv. "NA" medals mean no medal.
func ReadAthletes(path string) ([]model.AthleteResult, error) {
	var out []model.AthleteResult
	cols := []string{"ID", "Name", "Team", "NOC", "Games", "Year", "Season", "City", "Sport", "Event", "Medal"}
	err := readCSV(path, ',', cols, func(r row) error {
		year, err := r.int("Year")
		if err != nil {
			return err
		}
		res := model.AthleteResult{
			ID:     r.str("ID"),
			Name:   r.str("Name"),
			Team:   r.str("Team"),
			NOC:    r.str("NOC"),
			Games:  r.str("Games"),
			Year:   year,
			Season: r.str("Season"),
			City:   r.str("City"),
			Sport:  r.str("Sport"),
			Event:  r.str("Event"),
		}
		if medal := r.str("Medal"); medal != "" && medal != "NA" {
			tier, err := model.ParseTier(medal)
			if err != nil || tier == model.Total {
				return fmt.Errorf("line %d: medal %q: %w", r.line, medal, ErrMalformedRow)
			}
			res.Medal = tier
		}
		out = append(out, res)
		return nil
	})
	return out, err
}
