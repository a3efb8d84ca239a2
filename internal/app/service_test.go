package service_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	service "github.com/okian/pitcheq/internal/app"
	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/internal/domain/reference"
	"github.com/okian/pitcheq/pkg/logger"
	"github.com/okian/pitcheq/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should use the default reference points", func() {
			So(svc, ShouldNotBeNil)
			So(svc.ReferencePoints(), ShouldResemble, reference.Defaults())
		})
	})

	Convey("Given a new service with custom options", t, func() {
		points := []reference.Point{{Name: "43ft (Softball)", Distance: 43}}
		svc := service.New(
			service.WithReferencePoints(points),
			service.WithIDGenerator(func() string { return "fixed" }),
			service.WithLogger(logger.Nop()),
			service.WithMetrics(metrics.NewManager()),
		)

		Convey("Then the options should apply", func() {
			So(svc.ReferencePoints(), ShouldResemble, points)
			chart, err := svc.Calculate(context.Background(), 90, 60.5)
			So(err, ShouldBeNil)
			So(chart.ID, ShouldEqual, "fixed")
		})
	})
}

func TestService_Calculate(t *testing.T) {
	Convey("Given a service", t, func() {
		m := metrics.NewManager()
		svc := service.New(service.WithMetrics(m))
		ctx := context.Background()

		Convey("When calculating 90 mph at 60.5 ft", func() {
			chart, err := svc.Calculate(ctx, 90, 60.5)

			Convey("Then the chart should hold the full curve", func() {
				So(err, ShouldBeNil)
				So(chart.ID, ShouldNotBeEmpty)
				So(float64(chart.ReactionTime), ShouldAlmostEqual, 60.5/(90*eq.MPHToFPS), 1e-12)
				So(len(chart.Curve), ShouldEqual, 92)
				So(chart.Curve[0].Distance, ShouldEqual, eq.Distance(15))
				So(float64(chart.Curve[91].Speed), ShouldAlmostEqual, 90, 1e-9)
			})

			Convey("And the MLB reference point is suppressed", func() {
				So(len(chart.Annotations), ShouldEqual, 5)
				So(chart.Annotations[4].Suppressed, ShouldBeTrue)
				So(len(chart.Visible()), ShouldEqual, 4)
			})

			Convey("And metrics and stats are recorded", func() {
				n, err := testutil.GatherAndCount(m.Registry(), "pitcheq_calculator_calculations_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(svc.GetStats()["calculations"], ShouldEqual, 1)
				So(svc.GetStats()["rejected"], ShouldEqual, 0)
			})
		})

		Convey("When each chart is computed", func() {
			a, _ := svc.Calculate(ctx, 80, 50)
			b, _ := svc.Calculate(ctx, 80, 50)

			Convey("Then IDs differ but the numbers are identical", func() {
				So(a.ID, ShouldNotEqual, b.ID)
				So(a.Curve, ShouldResemble, b.Curve)
				So(a.Annotations, ShouldResemble, b.Annotations)
			})
		})

		Convey("When the input is invalid", func() {
			var buf bytes.Buffer
			So(logger.Init(logger.WithWriter(&buf)), ShouldBeNil)
			svc := service.New(service.WithMetrics(m), service.WithLogger(logger.Get()))

			chart, err := svc.Calculate(ctx, -5, 70)

			Convey("Then no chart is built and all violations are reported", func() {
				So(chart, ShouldBeNil)
				So(errors.Is(err, eq.ErrInvalidInput), ShouldBeTrue)
				var ie *eq.InputError
				So(errors.As(err, &ie), ShouldBeTrue)
				So(ie.Messages(), ShouldResemble, []string{eq.MsgSpeed, eq.MsgDistance})
				So(svc.GetStats()["rejected"], ShouldEqual, 1)
				So(buf.String(), ShouldContainSubstring, "input rejected")
			})
		})
	})
}

func TestService_Concurrent(t *testing.T) {
	Convey("Given concurrent callers with different inputs", t, func() {
		svc := service.New(service.WithMetrics(metrics.NewManager()))
		inputs := []struct {
			s eq.Speed
			d eq.Distance
		}{{90, 60.5}, {70, 46}, {55, 30}, {40, 20}}

		Convey("Then each chart matches a serial computation", func() {
			var wg sync.WaitGroup
			results := make([]eq.Seconds, len(inputs))
			for i, in := range inputs {
				wg.Add(1)
				go func() {
					defer wg.Done()
					c, err := svc.Calculate(context.Background(), in.s, in.d)
					if err == nil {
						results[i] = c.ReactionTime
					}
				}()
			}
			wg.Wait()
			for i, in := range inputs {
				So(results[i], ShouldEqual, eq.ReactionTime(in.s, in.d))
			}
			So(svc.GetStats()["calculations"], ShouldEqual, len(inputs))
		})
	})
}
