package dedupe_test

import (
	"testing"

	"github.com/okian/medalboard/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

type eventKey struct {
	Year  int
	Event string
	Team  string
}

func TestSet(t *testing.T) {
	Convey("Given a new Set", t, func() {
		s := dedupe.NewSet[eventKey](dedupe.WithCapacity(4))

		Convey("Then it starts empty", func() {
			So(s.Size(), ShouldEqual, 0)
		})

		Convey("When a key is recorded", func() {
			k := eventKey{2008, "Basketball Men's Basketball", "United States"}
			first := s.SeenAndRecord(k)
			second := s.SeenAndRecord(k)

			Convey("Then only the first call reports it as new", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(s.Size(), ShouldEqual, 1)
			})

			Convey("And Unrecord forgets it", func() {
				s.Unrecord(k)
				So(s.Size(), ShouldEqual, 0)
				So(s.SeenAndRecord(k), ShouldBeFalse)
			})
		})

		Convey("When keys differ in one field", func() {
			s.SeenAndRecord(eventKey{2008, "Relay", "A"})
			dup := s.SeenAndRecord(eventKey{2012, "Relay", "A"})

			Convey("Then they are distinct", func() {
				So(dup, ShouldBeFalse)
				So(s.Size(), ShouldEqual, 2)
			})
		})

		Convey("When the capacity is negative", func() {
			neg := dedupe.NewSet[string](dedupe.WithCapacity(-1))

			Convey("Then the set still works", func() {
				So(neg.SeenAndRecord("x"), ShouldBeFalse)
			})
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given rows for a relay won by a four-athlete team", t, func() {
		type row struct {
			Athlete string
			Key     eventKey
		}
		relay := eventKey{2000, "Swimming Men's 4 x 100 metres Freestyle Relay", "Australia"}
		rows := []row{
			{"a", relay}, {"b", relay}, {"c", relay}, {"d", relay},
			{"e", eventKey{2000, "Swimming Men's 400 metres Freestyle", "Australia"}},
		}

		Convey("When filtering on the event key", func() {
			out := dedupe.Filter(rows, func(r row) eventKey { return r.Key })

			Convey("Then one row per event survives, in order", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].Athlete, ShouldEqual, "a")
				So(out[1].Athlete, ShouldEqual, "e")
			})
		})
	})
}
