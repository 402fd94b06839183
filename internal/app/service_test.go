package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/medalboard/internal/adapters/repository"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/model"
	"github.com/okian/medalboard/internal/domain/selection"
	"github.com/okian/medalboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func medal(country string, year, g, s, b int) model.MedalRecord {
	return model.MedalRecord{CountryName: country, Year: year, Gold: g, Silver: s, Bronze: b}
}

func gold(team, sport, event string, year int) model.AthleteResult {
	return model.AthleteResult{Team: team, Sport: sport, Event: event, Year: year, Season: "Summer", Medal: model.Gold}
}

func fixture() *repository.Tables {
	medals := []model.MedalRecord{
		medal("United States", 2008, 36, 38, 36),
		medal("China", 2008, 48, 22, 30),
		medal("Greece", 2008, 0, 2, 2),
		medal("Tuvalu", 2008, 0, 0, 0),
		medal("China", 2004, 32, 17, 14),
		medal("Greece", 2004, 6, 6, 4),
		medal("United States", 2004, 36, 39, 26),
		medal("China", 2000, 28, 16, 14),
		medal("Greece", 2000, 4, 6, 3),
		medal("United States", 2000, 37, 24, 32),
		medal("China", 1988, 5, 11, 12),
		medal("China", 1984, 15, 8, 9),
	}
	hosts := []model.Host{
		{Location: "China", Year: 2008, Season: "Summer"},
		{Location: "Greece", Year: 2004, Season: "Summer"},
		{Location: "United States", Year: 1996, Season: "Summer"},
	}
	gdp := []model.GDPPoint{
		{Year: 1984, GDP: 0.31, WorldPercent: 2.5},
		{Year: 1988, GDP: 0.41, WorldPercent: 2.2},
		{Year: 1992, GDP: 0.49, WorldPercent: 2.0},
		{Year: 2000, GDP: 1.21, WorldPercent: 3.6},
		{Year: 2004, GDP: 1.95, WorldPercent: 4.5},
		{Year: 2008, GDP: 4.59, WorldPercent: 7.2},
	}
	results := []model.AthleteResult{
		gold("Australia", "Swimming", "4x100 Relay", 2000),
		gold("Australia", "Swimming", "4x100 Relay", 2000),
		gold("Australia", "Swimming", "400 Free", 2000),
		gold("United States", "Swimming", "100 Free", 2000),
		gold("United States", "Athletics", "100m", 2000),
		gold("China", "Diving", "10m Platform", 2008),
		gold("China", "Badminton", "Singles", 2008),
		gold("China", "Diving", "3m Springboard", 2008),
		gold("Jamaica", "Athletics", "100m", 2008),
	}
	for _, team := range []string{"Brazil", "Canada", "Denmark", "Egypt", "France", "Ghana"} {
		results = append(results, model.AthleteResult{Team: team, Sport: "Swimming", Event: "100 Free", Year: 2000, Season: "Summer"})
	}
	return repository.NewTables(hosts, medals, gdp, results)
}

func started(opts ...service.Option) *service.Dashboard {
	opts = append([]service.Option{service.WithStore(fixture()), service.WithLogger(logger.NewNop())}, opts...)
	d := service.New(opts...)
	So(d.Start(context.Background()), ShouldBeNil)
	return d
}

type bogus struct{}

func (bogus) Category() selection.Category { return "bogus" }
func (bogus) Kind() selection.Kind         { return "bogus" }

func TestDashboardLifecycle(t *testing.T) {
	Convey("Given a dashboard that was not started", t, func() {
		d := service.New(service.WithStore(fixture()), service.WithLogger(logger.NewNop()))

		Convey("Then rendering fails", func() {
			_, err := d.Render(context.Background(), selection.OverviewMap{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(d.GetStats()["started"], ShouldEqual, false)
		})

		Convey("When started twice and stopped", func() {
			So(d.Start(context.Background()), ShouldBeNil)
			So(d.Start(context.Background()), ShouldBeNil)
			So(d.GetStats()["started"], ShouldEqual, true)
			d.Stop()
			d.Stop()

			Convey("Then it is unusable again", func() {
				_, err := d.Options(context.Background())
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})

	Convey("Given dataset paths that do not exist", t, func() {
		dir := t.TempDir()
		d := service.New(service.WithLogger(logger.NewNop()), service.WithPaths(repository.Paths{
			Hosts:    filepath.Join(dir, "hosts.csv"),
			Medals:   filepath.Join(dir, "medals.csv"),
			GDP:      filepath.Join(dir, "gdp.csv"),
			Athletes: filepath.Join(dir, "athletes.csv"),
		}))

		Convey("Then Start fails with the load error", func() {
			err := d.Start(context.Background())
			So(errors.Is(err, repository.ErrMissingFile), ShouldBeTrue)
		})
	})

	Convey("Given dataset files on disk", t, func() {
		dir := t.TempDir()
		write := func(name, body string) string {
			p := filepath.Join(dir, name)
			So(os.WriteFile(p, []byte(body), 0o600), ShouldBeNil)
			return p
		}
		d := service.New(service.WithLogger(logger.NewNop()), service.WithLoadWorkers(1), service.WithPaths(repository.Paths{
			Hosts:    write("hosts.csv", "game_slug,game_location,game_name,game_season,game_year\nathens-2004,Greece,Athens 2004,Summer,2004\n"),
			Medals:   write("medals.csv", "Year;Country_Code;Country_Name;Host_city;Host_country;Gold;Silver;Bronze\n2004;GRE;Greece;Athens;Greece;6;6;4\n"),
			GDP:      write("gdp.csv", "Year,GDP,GDP_WorldPercent\n2004,1.95,4.46\n"),
			Athletes: write("athletes.csv", "ID,Name,Team,NOC,Games,Year,Season,City,Sport,Event,Medal\n"),
		}))

		Convey("Then Start loads them", func() {
			So(d.Start(context.Background()), ShouldBeNil)
			So(d.GetStats()["datasets"], ShouldResemble, map[string]int{"hosts": 1, "medals": 1, "gdp": 1, "athletes": 0})
		})
	})
}

func TestRenderOverview(t *testing.T) {
	Convey("Given a started dashboard", t, func() {
		d := started()
		ctx := context.Background()

		Convey("When rendering the 2008 table sorted by Total", func() {
			res, err := d.Render(ctx, selection.OverviewData{Year: 2008, Sort: model.Total})

			Convey("Then rows are sorted and the pie shows the first country", func() {
				So(err, ShouldBeNil)
				So(res.Type, ShouldEqual, chart.KindPie)
				So(res.Title, ShouldEqual, "Medals by Country: Summer Olympic Games 2008")
				So(res.Table.Columns, ShouldResemble, []string{"Country_Name", "Gold", "Silver", "Bronze", "Total"})
				So(res.Table.Rows[0], ShouldResemble, []string{"United States", "36", "38", "36", "110"})
				So(res.Table.Rows[1][0], ShouldEqual, "China")
				pie := res.Chart.(chart.Pie)
				So(pie.Country, ShouldEqual, "United States")
				So(pie.Values, ShouldResemble, []int{36, 38, 36})
				So(pie.Colors, ShouldResemble, []string{"#f0c05a", "#c0c0c0", "#a97142"})
				So(pie.Hole, ShouldEqual, 0.4)
			})
		})

		Convey("When the year is omitted", func() {
			res, err := d.Render(ctx, selection.OverviewData{})
			So(err, ShouldBeNil)
			So(res.Title, ShouldEqual, "Medals by Country: Summer Olympic Games 1984")
		})

		Convey("When the country won nothing", func() {
			res, err := d.Render(ctx, selection.OverviewData{Year: 2008, Country: "Tuvalu"})

			Convey("Then the table comes with a warning and no pie", func() {
				So(err, ShouldBeNil)
				So(res.HasChart(), ShouldBeFalse)
				So(res.Table, ShouldNotBeNil)
				So(res.Warnings, ShouldNotBeEmpty)
			})
		})

		Convey("When the country or year is unknown", func() {
			_, err := d.Render(ctx, selection.OverviewData{Year: 2008, Country: "Atlantis"})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
			_, err = d.Render(ctx, selection.OverviewData{Year: 1900})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})

		Convey("When rendering the map with defaults", func() {
			res, err := d.Render(ctx, selection.OverviewMap{})

			Convey("Then the latest year and gold are used", func() {
				So(err, ShouldBeNil)
				So(res.Title, ShouldEqual, "Gold Medals by Country in 2008")
				m := res.Chart.(chart.Choropleth)
				So(m.LocationMode, ShouldEqual, "country names")
				So(m.ColorScale, ShouldEqual, "Blues")
				So(m.Locations, ShouldResemble, []string{"United States", "China", "Greece", "Tuvalu"})
				So(m.Values, ShouldResemble, []int{36, 48, 0, 0})
			})
		})
	})
}

func TestRenderHost(t *testing.T) {
	Convey("Given a started dashboard", t, func() {
		d := started()
		ctx := context.Background()

		Convey("When rendering China's gold line", func() {
			res, err := d.Render(ctx, selection.HostLine{Country: "China", Tier: model.Gold})

			Convey("Then the host year is marked and the average spans the years", func() {
				So(err, ShouldBeNil)
				line := res.Chart.(chart.Line)
				So(len(line.Series), ShouldEqual, 3)
				So(line.Series[0].X, ShouldResemble, []float64{1984, 1988, 2000, 2004, 2008})
				So(line.Series[1].Name, ShouldEqual, "Host Year: 2008")
				So(line.Series[1].Y, ShouldResemble, []float64{48})
				avg := line.Series[2]
				So(avg.Dash, ShouldEqual, "dash")
				So(avg.X, ShouldResemble, []float64{1984, 2008})
				So(avg.Y[0], ShouldAlmostEqual, 25.6, 1e-9)
			})
		})

		Convey("When the country is omitted", func() {
			res, err := d.Render(ctx, selection.HostLine{})
			So(err, ShouldBeNil)
			So(res.Title, ShouldEqual, "United States Gold Medal History")
		})

		Convey("When rendering the box plot", func() {
			res, err := d.Render(ctx, selection.HostBox{Country: "Greece"})

			Convey("Then each tier has a box", func() {
				So(err, ShouldBeNil)
				plot := res.Chart.(chart.BoxPlot)
				So(len(plot.Boxes), ShouldEqual, 4)
				So(plot.Boxes[3].Name, ShouldEqual, "Total")
				So(plot.Boxes[3].Max, ShouldEqual, 16.0)
				So(plot.Boxes[3].Min, ShouldEqual, 4.0)
				So(plot.Boxes[0].Mean, ShouldAlmostEqual, 10.0/3, 1e-9)
			})
		})

		Convey("When regressing China's gold on hosting", func() {
			res, err := d.Render(ctx, selection.HostRegression{Country: "China"})

			Convey("Then the line joins the group means", func() {
				So(err, ShouldBeNil)
				reg := res.Chart.(chart.Regression)
				So(reg.Intercept, ShouldAlmostEqual, 20, 1e-9)
				So(reg.Slope, ShouldAlmostEqual, 28, 1e-9)
				So(reg.Line[1].Y, ShouldAlmostEqual, 48, 1e-9)
				So(len(reg.Points), ShouldEqual, 5)
				So(reg.Annotation, ShouldStartWith, "R-squared: ")
			})
		})

		Convey("When the country never hosted in its medal years", func() {
			_, err := d.Render(ctx, selection.HostRegression{Country: "United States", Tier: model.Total})
			So(errors.Is(err, service.ErrInsufficientVariation), ShouldBeTrue)
		})

		Convey("When the country is unknown", func() {
			_, err := d.Render(ctx, selection.HostBox{Country: "Atlantis"})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestRenderEconomy(t *testing.T) {
	Convey("Given a started dashboard", t, func() {
		d := started()
		ctx := context.Background()

		Convey("When rendering the economy line", func() {
			res, err := d.Render(ctx, selection.EconomyLine{})

			Convey("Then GDP and medals share years and host years are highlighted", func() {
				So(err, ShouldBeNil)
				So(res.Title, ShouldEqual, "China GDP and Medal Counts Over the Years")
				line := res.Chart.(chart.Line)
				So(line.Series[0].X, ShouldResemble, []float64{1984, 1988, 2000, 2004, 2008})
				So(line.Series[0].Axis, ShouldEqual, chart.AxisLeft)
				So(line.Series[1].Axis, ShouldEqual, chart.AxisRight)
				So(line.XTicks, ShouldResemble, []float64{1984, 1988, 1992, 1996, 2000, 2004, 2008})
				So(len(line.Series), ShouldEqual, 5)
				So(line.Series[3].Y, ShouldResemble, []float64{100})
			})
		})

		Convey("When the from-year excludes every row", func() {
			d := started(service.WithEconomyFromYear(2012))
			res, err := d.Render(ctx, selection.EconomyLine{})
			So(err, ShouldBeNil)
			So(res.HasChart(), ShouldBeFalse)
		})

		Convey("When rendering the heatmap with defaults", func() {
			res, err := d.Render(ctx, selection.EconomyHeatmap{})

			Convey("Then all four metrics form a symmetric matrix", func() {
				So(err, ShouldBeNil)
				So(res.Title, ShouldEqual, "Correlation between selected metrics from 1984 to 2008")
				hm := res.Chart.(chart.Heatmap)
				So(hm.Labels, ShouldResemble, []string{"GDP", "GDP_WorldPercent", "Gold", "Total_Medals"})
				So(hm.ZMin, ShouldEqual, -1.0)
				So(hm.ZMax, ShouldEqual, 1.0)
				for i := range hm.Z {
					So(*hm.Z[i][i], ShouldEqual, 1.0)
					So(hm.Text[i][i], ShouldEqual, "1")
					for j := range hm.Z {
						So(*hm.Z[i][j], ShouldEqual, *hm.Z[j][i])
					}
				}
			})
		})

		Convey("When the start is after the end", func() {
			res, err := d.Render(ctx, selection.EconomyHeatmap{Start: 2008, End: 1984})
			So(err, ShouldBeNil)
			So(res.HasChart(), ShouldBeFalse)
			So(res.Warnings[0], ShouldContainSubstring, "starting year")
		})

		Convey("When a single metric is chosen", func() {
			res, err := d.Render(ctx, selection.EconomyHeatmap{Metrics: []model.Metric{model.MetricGold, model.MetricGold}})
			So(err, ShouldBeNil)
			So(res.Warnings[0], ShouldContainSubstring, "at least two")
		})
	})
}

func TestRenderEvents(t *testing.T) {
	Convey("Given a started dashboard", t, func() {
		d := started()
		ctx := context.Background()

		Convey("When rendering the swimming bar for 2000", func() {
			res, err := d.Render(ctx, selection.EventsBar{Sport: "Swimming", Year: 2000})

			Convey("Then exactly eight teams are shown, winners first", func() {
				So(err, ShouldBeNil)
				bar := res.Chart.(chart.Bar)
				So(len(bar.Categories), ShouldEqual, 8)
				So(bar.Categories[:2], ShouldResemble, []string{"Australia", "United States"})
				So(bar.Values[:3], ShouldResemble, []int{2, 1, 0})
				So(bar.Categories[2], ShouldEqual, "Brazil")
				So(res.Title, ShouldEqual, "Top 8 Gold Medals in Swimming by Country in 2000 (Summer Olympics)")
			})
		})

		Convey("When the sport is unknown", func() {
			_, err := d.Render(ctx, selection.EventsBar{Sport: "Quidditch"})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})

		Convey("When rendering the Sankey with defaults", func() {
			res, err := d.Render(ctx, selection.EventsSankey{})

			Convey("Then the latest year and its top team are used", func() {
				So(err, ShouldBeNil)
				So(res.Title, ShouldEqual, "Gold Medals Flow by China in Sport (2008 Summer Olympics)")
				sk := res.Chart.(chart.Sankey)
				So(sk.Nodes[0].Label, ShouldEqual, "China")
				So(sk.Nodes[0].X, ShouldEqual, 0.03)
				So(*sk.Nodes[0].Y, ShouldEqual, 0.52)
				So(sk.Nodes[1].Label, ShouldEqual, "Badminton")
				So(sk.Nodes[2].X, ShouldEqual, 0.6)
				So(sk.Links[1].Value, ShouldEqual, 2)
				So(sk.Links[0].Color, ShouldEqual, "rgb(182, 212, 233)")
			})
		})

		Convey("When every flow has the same weight", func() {
			res, err := d.Render(ctx, selection.EventsSankey{Year: 2000, Country: "United States"})

			Convey("Then every link samples the middle of the scale", func() {
				So(err, ShouldBeNil)
				for _, l := range res.Chart.(chart.Sankey).Links {
					So(l.Color, ShouldEqual, "rgb(107, 174, 214)")
				}
			})
		})

		Convey("When the team won nothing", func() {
			res, err := d.Render(ctx, selection.EventsSankey{Year: 2000, Country: "Brazil"})
			So(err, ShouldBeNil)
			So(res.HasChart(), ShouldBeFalse)
		})

		Convey("When the year has no gold", func() {
			_, err := d.Render(ctx, selection.EventsSankey{Year: 1900})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestRenderUnknown(t *testing.T) {
	Convey("Given a selection outside the closed set", t, func() {
		d := started()
		_, err := d.Render(context.Background(), bogus{})
		So(errors.Is(err, service.ErrUnknownSelection), ShouldBeTrue)

		_, err = d.Render(context.Background(), nil)
		So(errors.Is(err, service.ErrUnknownSelection), ShouldBeTrue)
	})
}

func TestMenuAndTables(t *testing.T) {
	Convey("Given a started dashboard", t, func() {
		d := started(service.WithSankeyTopCountries(1))
		ctx := context.Background()

		Convey("When listing options", func() {
			m, err := d.Options(ctx)

			Convey("Then lists come from the tables", func() {
				So(err, ShouldBeNil)
				So(m.Years, ShouldResemble, []int{1984, 1988, 2000, 2004, 2008})
				So(m.SankeyYears, ShouldResemble, []int{2008, 2000})
				So(m.Sports, ShouldResemble, []string{"Swimming", "Athletics", "Diving", "Badminton"})
				So(len(m.GDPYears), ShouldEqual, 25)
				So(len(m.Categories), ShouldEqual, 4)
			})
		})

		Convey("When listing Sankey countries", func() {
			top, err := d.SankeyCountries(ctx, 2000)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 1)
			So(top[0].Team, ShouldEqual, "Australia")

			_, err = d.SankeyCountries(ctx, 1999)
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})

		Convey("When reading the medal table", func() {
			table, err := d.MedalTable(ctx, 2004, model.Silver)
			So(err, ShouldBeNil)
			So(table.Rows[0].Country, ShouldEqual, "United States")
			So(table.Table().Rows[1], ShouldResemble, []string{"China", "32", "17", "14", "63"})
		})

		Convey("When reading the averages", func() {
			avgs, err := d.Averages(ctx)
			So(err, ShouldBeNil)
			So(avgs[0].Country, ShouldEqual, "China")
			So(avgs[0].Games, ShouldEqual, 5)
		})
	})
}
