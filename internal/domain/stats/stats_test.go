package stats_test

import (
	"errors"
	"testing"

	"github.com/okian/medalboard/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(f float64) *float64 { return &f }

func TestOLS(t *testing.T) {
	Convey("Given a host indicator and medal counts", t, func() {
		x := []float64{0, 0, 0, 1, 1}
		y := []float64{10, 12, 14, 30, 34}

		Convey("When fitting", func() {
			fit, err := stats.OLS(x, y)

			Convey("Then the line passes through the group means", func() {
				So(err, ShouldBeNil)
				So(fit.Intercept, ShouldAlmostEqual, 12, 1e-9)
				So(fit.Slope, ShouldAlmostEqual, 20, 1e-9)
				So(fit.Predict(1), ShouldAlmostEqual, 32, 1e-9)
				So(fit.RSquared, ShouldBeBetween, 0, 1)
				So(fit.N, ShouldEqual, 5)
			})
		})

		Convey("When the indicator never changes", func() {
			_, err := stats.OLS([]float64{0, 0, 0}, []float64{1, 2, 3})

			Convey("Then the fit is rejected", func() {
				So(errors.Is(err, stats.ErrInsufficientVariation), ShouldBeTrue)
			})
		})

		Convey("When there is a single observation", func() {
			_, err := stats.OLS([]float64{1}, []float64{1})
			So(errors.Is(err, stats.ErrInsufficientVariation), ShouldBeTrue)
		})

		Convey("When lengths differ", func() {
			_, err := stats.OLS([]float64{0, 1}, []float64{1})
			So(errors.Is(err, stats.ErrLengthMismatch), ShouldBeTrue)
		})

		Convey("When y is constant", func() {
			fit, err := stats.OLS([]float64{0, 1, 1}, []float64{5, 5, 5})

			Convey("Then the fit is exact", func() {
				So(err, ShouldBeNil)
				So(fit.Slope, ShouldAlmostEqual, 0, 1e-9)
				So(fit.RSquared, ShouldEqual, 1.0)
			})
		})

		Convey("When y is a perfect line", func() {
			fit, err := stats.OLS([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
			So(err, ShouldBeNil)
			So(fit.RSquared, ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestCorrelation(t *testing.T) {
	Convey("Given four metric columns", t, func() {
		cols := []stats.Column{
			{Name: "GDP", Values: []*float64{ptr(1), ptr(2), ptr(3), ptr(4)}},
			{Name: "GDP_WorldPercent", Values: []*float64{ptr(2), ptr(4), ptr(6), ptr(8)}},
			{Name: "Gold", Values: []*float64{ptr(8), nil, ptr(4), ptr(1)}},
			{Name: "Total_Medals", Values: []*float64{ptr(3), ptr(3), ptr(3), ptr(3)}},
		}

		Convey("When computing the matrix", func() {
			m := stats.Correlation(cols)

			Convey("Then it is symmetric with a unit diagonal", func() {
				So(m.Names, ShouldResemble, []string{"GDP", "GDP_WorldPercent", "Gold", "Total_Medals"})
				for i := range cols {
					v, ok := m.At(i, i)
					So(ok, ShouldBeTrue)
					So(v, ShouldEqual, 1.0)
					for j := range cols {
						a, okA := m.At(i, j)
						b, okB := m.At(j, i)
						So(okA, ShouldEqual, okB)
						So(a, ShouldEqual, b)
					}
				}
			})

			Convey("And linearly related columns correlate fully", func() {
				v, ok := m.At(0, 1)
				So(ok, ShouldBeTrue)
				So(v, ShouldAlmostEqual, 1, 1e-9)
			})

			Convey("And missing values are dropped per pair", func() {
				v, ok := m.At(0, 2)
				So(ok, ShouldBeTrue)
				So(v, ShouldBeLessThan, -0.9)
			})

			Convey("And a constant column has undefined cells", func() {
				_, ok := m.At(0, 3)
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given yearly totals", t, func() {
		Convey("When summarizing constant values", func() {
			s, err := stats.Summarize([]float64{4, 4, 4, 4})

			Convey("Then every statistic is the value", func() {
				So(err, ShouldBeNil)
				So(s.Min, ShouldEqual, 4.0)
				So(s.Q1, ShouldEqual, 4.0)
				So(s.Median, ShouldEqual, 4.0)
				So(s.Q3, ShouldEqual, 4.0)
				So(s.Max, ShouldEqual, 4.0)
				So(s.Mean, ShouldEqual, 4.0)
				So(s.StdDev, ShouldEqual, 0.0)
			})
		})

		Convey("When summarizing spread values", func() {
			s, err := stats.Summarize([]float64{9, 1, 5, 3, 7})

			Convey("Then order statistics are bounded and the sd is sample", func() {
				So(err, ShouldBeNil)
				So(s.Min, ShouldEqual, 1.0)
				So(s.Max, ShouldEqual, 9.0)
				So(s.Q1, ShouldBeBetween, 1, 5)
				So(s.Q3, ShouldBeBetween, 5, 9)
				So(s.Mean, ShouldEqual, 5.0)
				So(s.StdDev, ShouldAlmostEqual, 3.1622776601683795, 1e-9)
				So(s.N, ShouldEqual, 5)
			})
		})

		Convey("When there is one value", func() {
			s, err := stats.Summarize([]float64{2})
			So(err, ShouldBeNil)
			So(s.Mean, ShouldEqual, 2.0)
			So(s.StdDev, ShouldEqual, 0.0)
		})

		Convey("When there are no values", func() {
			_, err := stats.Summarize(nil)
			So(errors.Is(err, stats.ErrEmpty), ShouldBeTrue)
		})

		Convey("Mean of nothing is zero", func() {
			So(stats.Mean(nil), ShouldEqual, 0.0)
			So(stats.Mean([]float64{1, 2}), ShouldEqual, 1.5)
		})
	})
}
