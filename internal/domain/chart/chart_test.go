package chart_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/medalboard/internal/domain/chart"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResult(t *testing.T) {
	Convey("Given a warning result", t, func() {
		r := chart.Warning("Correlation", "select at least two metrics")

		Convey("Then it carries no chart", func() {
			So(r.HasChart(), ShouldBeFalse)
			So(r.Type, ShouldEqual, chart.KindNone)
			So(r.Warnings, ShouldResemble, []string{"select at least two metrics"})
		})
	})

	Convey("Given a heatmap with an undefined cell", t, func() {
		one := 1.0
		r := chart.Result{Type: chart.KindHeatmap, Chart: chart.Heatmap{
			Labels: []string{"GDP", "Gold"},
			Z:      [][]*float64{{&one, nil}, {nil, &one}},
		}}

		Convey("When encoding to JSON", func() {
			b, err := json.Marshal(r)

			Convey("Then the cell is null", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"z":[[1,null],[null,1]]`)
				So(r.HasChart(), ShouldBeTrue)
			})
		})
	})
}
