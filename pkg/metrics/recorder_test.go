package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecorderOptions(t *testing.T) {
	Convey("Given recorder options", t, func() {
		Convey("When creating with defaults", func() {
			r := NewRecorder()

			Convey("Then it uses its own registry and the default namespace", func() {
				So(r, ShouldNotBeNil)
				So(r.Registry(), ShouldNotBeNil)
				So(r.namespace, ShouldEqual, "ccsgo")
				So(r.buckets, ShouldResemble, defaultBuckets)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			r := NewRecorder(
				WithNamespace("test"),
				WithSubsystem("generator"),
				WithHistogramBuckets([]float64{0.1, 1}),
				WithRegistry(registry),
				WithRuntimeCollectors(),
			)

			Convey("Then the options are applied", func() {
				So(r.Registry(), ShouldEqual, registry)
				So(r.namespace, ShouldEqual, "test")
				So(r.subsystem, ShouldEqual, "generator")
				So(r.buckets, ShouldResemble, []float64{0.1, 1})
			})
		})

		Convey("When options receive empty values", func() {
			r := NewRecorder(WithNamespace(""), WithHistogramBuckets(nil), WithRegistry(nil))

			Convey("Then the defaults are kept", func() {
				So(r.namespace, ShouldEqual, "ccsgo")
				So(r.buckets, ShouldResemble, defaultBuckets)
				So(r.Registry(), ShouldNotBeNil)
			})
		})
	})
}

func TestRecorderCounts(t *testing.T) {
	Convey("Given a recorder", t, func() {
		r := NewRecorder()

		Convey("When scenarios are generated and dropped", func() {
			r.ScenarioGenerated("common")
			r.ScenarioGenerated("common")
			r.ScenarioGenerated("exhaustive")
			r.ScenarioDropped("common")
			r.BatchCompleted("common", 3*time.Millisecond)

			Convey("Then the counters reflect each mode", func() {
				So(testutil.ToFloat64(r.scenariosGenerated.WithLabelValues("common")), ShouldEqual, 2)
				So(testutil.ToFloat64(r.scenariosGenerated.WithLabelValues("exhaustive")), ShouldEqual, 1)
				So(testutil.ToFloat64(r.scenariosDropped.WithLabelValues("common")), ShouldEqual, 1)
				So(testutil.CollectAndCount(r.batchDuration), ShouldEqual, 1)
			})
		})

		Convey("When HTTP requests are recorded", func() {
			r.RecordHTTPRequest("/health", "GET", "200", time.Millisecond)
			r.RecordHTTPRequest("/health", "GET", "200", time.Millisecond)
			r.RecordHTTPRequest("/api/scenarios", "POST", "400", time.Millisecond)

			Convey("Then requests are counted per label set", func() {
				So(testutil.ToFloat64(r.httpRequests.WithLabelValues("/health", "GET", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(r.httpRequests.WithLabelValues("/api/scenarios", "POST", "400")), ShouldEqual, 1)
			})
		})
	})
}

func TestRecorderHandler(t *testing.T) {
	Convey("Given a recorder with some activity", t, func() {
		r := NewRecorder()
		r.ScenarioGenerated("common")

		Convey("When the handler is scraped", func() {
			rec := httptest.NewRecorder()
			r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)

			Convey("Then it exposes the scenario counter", func() {
				So(rec.Code, ShouldEqual, 200)
				So(strings.Contains(string(body), `ccsgo_scenarios_generated_total{mode="common"} 1`), ShouldBeTrue)
			})
		})
	})
}
