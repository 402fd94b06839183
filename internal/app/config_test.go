package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/config"
	"github.com/okian/medalboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromConfig(t *testing.T) {
	Convey("Given a config pointing at a data directory", t, func() {
		dir := t.TempDir()
		write := func(name, body string) {
			So(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600), ShouldBeNil)
		}
		cfg := config.New()
		cfg.DataDir = dir
		cfg.MedalsFile = "medals.tsv"
		cfg.MedalsDelimiter = "\t"
		cfg.EconomyCountry = "Greece"
		write(cfg.HostsFile, "game_slug,game_location,game_name,game_season,game_year\nathens-2004,Greece,Athens 2004,Summer,2004\n")
		write(cfg.MedalsFile, "Year\tCountry_Code\tCountry_Name\tHost_city\tHost_country\tGold\tSilver\tBronze\n2004\tGRE\tGreece\tAthens\tGreece\t6\t6\t4\n")
		write(cfg.GDPFile, "Year,GDP,GDP_WorldPercent\n2004,0.24,0.55\n")
		write(cfg.AthletesFile, "ID,Name,Team,NOC,Games,Year,Season,City,Sport,Event,Medal\n")

		Convey("When the dashboard is built from it", func() {
			d := service.New(append(service.FromConfig(cfg), service.WithLogger(logger.NewNop()))...)
			err := d.Start(context.Background())

			Convey("Then the files, delimiter and economy country are used", func() {
				So(err, ShouldBeNil)
				stats := d.GetStats()
				So(stats["economyCountry"], ShouldEqual, "Greece")
				So(stats["datasets"], ShouldResemble, map[string]int{"hosts": 1, "medals": 1, "gdp": 1, "athletes": 0})
			})
		})
	})
}
