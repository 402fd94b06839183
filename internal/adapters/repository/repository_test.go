package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/medalboard/internal/adapters/repository"
	"github.com/okian/medalboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	hostsCSV = `game_slug,game_end_date,game_start_date,game_location,game_name,game_season,game_year
beijing-2008,2008-08-24T12:00:00Z,2008-08-08T14:00:00Z,China,Beijing 2008,Summer,2008
turin-2006,2006-02-26T19:00:00Z,2006-02-10T19:00:00Z,Italy,Turin 2006,Winter,2006
athens-2004,2004-08-29T03:00:00Z,2004-08-13T16:00:00Z,Greece,Athens 2004,Summer,2004
`
	medalsCSV = "\ufeffYear;Country_Code;Country_Name;Host_city;Host_country;Gold;Silver;Bronze\n" +
		"2008;CHN;China;Beijing;China;48;22;30\n" +
		"2008;USA;United States;Beijing;China;36;38;36\n" +
		"2004.0;CHN;China;Athens;Greece;32;17;14\n"
	gdpCSV = `Year,GDP,GDP_WorldPercent
2004,1.95,4.46
2008,4.59,7.22
`
	athletesCSV = `ID,Name,Sex,Age,Height,Weight,Team,NOC,Games,Year,Season,City,Sport,Event,Medal
1,A Dijiang,M,24,180,80,China,CHN,1992 Summer,1992,Summer,Barcelona,Basketball,Basketball Men's Basketball,NA
2,"Lin, Dan",M,24,178,68,China,CHN,2008 Summer,2008,Summer,Beijing,Badminton,Badminton Men's Singles,Gold
3,Kjetil Andre Aamodt,M,30,NA,NA,Norway,NOR,2002 Winter,2002,Winter,Salt Lake City,Alpine Skiing,Alpine Skiing Men's Super G,Gold
`
)

func writeFiles(dir string, files map[string]string) repository.Paths {
	for name, body := range files {
		So(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600), ShouldBeNil)
	}
	return repository.Paths{
		Hosts:    filepath.Join(dir, "olympic_hosts.csv"),
		Medals:   filepath.Join(dir, "Country_Medals.csv"),
		GDP:      filepath.Join(dir, "China_GDP.csv"),
		Athletes: filepath.Join(dir, "athlete_events.csv"),
	}
}

func allFiles() map[string]string {
	return map[string]string{
		"olympic_hosts.csv":  hostsCSV,
		"Country_Medals.csv": medalsCSV,
		"China_GDP.csv":      gdpCSV,
		"athlete_events.csv": athletesCSV,
	}
}

func TestLoad(t *testing.T) {
	Convey("Given the four dataset files", t, func() {
		paths := writeFiles(t.TempDir(), allFiles())

		Convey("When loading them", func() {
			tables, err := repository.Load(context.Background(), paths, repository.WithWorkers(2))

			Convey("Then every table is populated", func() {
				So(err, ShouldBeNil)
				So(tables.Counts(), ShouldResemble, map[string]int{
					repository.DatasetHosts:    2,
					repository.DatasetMedals:   3,
					repository.DatasetGDP:      2,
					repository.DatasetAthletes: 3,
				})
			})

			Convey("And only summer hosts are kept", func() {
				for _, h := range tables.Hosts() {
					So(h.Season, ShouldEqual, "Summer")
				}
				So(tables.Hosts()[0], ShouldResemble, model.Host{
					Slug: "beijing-2008", Name: "Beijing 2008", Location: "China", Season: "Summer", Year: 2008,
				})
			})

			Convey("And years are integers even when written as floats", func() {
				So(tables.Medals()[2].Year, ShouldEqual, 2004)
				So(tables.Medals()[0].Total(), ShouldEqual, 100)
			})

			Convey("And NA medals are empty", func() {
				res := tables.Results()
				So(res[0].Medal, ShouldEqual, model.Tier(""))
				So(res[1].Medal, ShouldEqual, model.Gold)
				So(res[1].Name, ShouldEqual, "Lin, Dan")
			})

			Convey("And GDP values are parsed", func() {
				So(tables.GDP()[1], ShouldResemble, model.GDPPoint{Year: 2008, GDP: 4.59, WorldPercent: 7.22})
			})
		})

		Convey("When keeping every season", func() {
			tables, err := repository.Load(context.Background(), paths, repository.WithSeason(""))
			So(err, ShouldBeNil)
			So(len(tables.Hosts()), ShouldEqual, 3)
		})
	})

	Convey("Given a missing file", t, func() {
		files := allFiles()
		delete(files, "China_GDP.csv")
		paths := writeFiles(t.TempDir(), files)

		Convey("When loading", func() {
			_, err := repository.Load(context.Background(), paths)

			Convey("Then the load fails", func() {
				So(errors.Is(err, repository.ErrMissingFile), ShouldBeTrue)
			})
		})
	})

	Convey("Given a file missing a column", t, func() {
		files := allFiles()
		files["China_GDP.csv"] = "Year,GDP\n2008,4.59\n"
		paths := writeFiles(t.TempDir(), files)

		_, err := repository.Load(context.Background(), paths)
		So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
	})

	Convey("Given a non-numeric year", t, func() {
		files := allFiles()
		files["Country_Medals.csv"] = "Year;Country_Code;Country_Name;Host_city;Host_country;Gold;Silver;Bronze\nlate;CHN;China;x;y;1;1;1\n"
		paths := writeFiles(t.TempDir(), files)

		_, err := repository.Load(context.Background(), paths)
		So(errors.Is(err, repository.ErrMalformedRow), ShouldBeTrue)
	})

	Convey("Given an empty medals table", t, func() {
		files := allFiles()
		files["Country_Medals.csv"] = "Year;Country_Code;Country_Name;Host_city;Host_country;Gold;Silver;Bronze\n"
		paths := writeFiles(t.TempDir(), files)

		_, err := repository.Load(context.Background(), paths)
		So(errors.Is(err, repository.ErrEmptyDataset), ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		paths := writeFiles(t.TempDir(), allFiles())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repository.Load(ctx, paths)
		So(err, ShouldNotBeNil)
	})
}

func TestReadMedalsDelimiter(t *testing.T) {
	Convey("Given a comma separated medals file", t, func() {
		path := filepath.Join(t.TempDir(), "m.csv")
		body := "Year,Country_Code,Country_Name,Host_city,Host_country,Gold,Silver,Bronze\n2000,AUS,Australia,Sydney,Australia,16,25,17\n"
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)

		Convey("When read with the matching delimiter", func() {
			rows, err := repository.ReadMedals(path, ',')
			So(err, ShouldBeNil)
			So(rows[0].CountryCode, ShouldEqual, "AUS")
			So(rows[0].Total(), ShouldEqual, 58)
		})

		Convey("When read with the default delimiter", func() {
			_, err := repository.ReadMedals(path, ';')
			So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
		})
	})
}

func TestNewTables(t *testing.T) {
	Convey("Given hand-built rows", t, func() {
		tables := repository.NewTables(nil, []model.MedalRecord{{CountryName: "A"}}, nil, nil)
		So(tables.Counts()[repository.DatasetMedals], ShouldEqual, 1)
		So(tables.Hosts(), ShouldBeEmpty)
	})
}
