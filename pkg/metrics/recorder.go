package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "ccsgo"
)

var defaultBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Recorder counts generated and dropped scenarios and HTTP traffic. It satisfies the
// scenario generator's Observer.
type Recorder struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  *prometheus.Registry
	runtime   bool

	scenariosGenerated *prometheus.CounterVec
	scenariosDropped   *prometheus.CounterVec
	batchDuration      *prometheus.HistogramVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewRecorder creates a recorder and registers its collectors.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: defaultNamespace,
		buckets:   defaultBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}
	if r.runtime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(r.registry)

	r.scenariosGenerated = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "scenarios_generated_total",
		Help:      "Scenarios built successfully, by generation mode.",
	}, []string{"mode"})

	r.scenariosDropped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "scenarios_dropped_total",
		Help:      "Day combinations that failed to build, by generation mode.",
	}, []string{"mode"})

	r.batchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "batch_duration_seconds",
		Help:      "Time to generate one batch of scenarios.",
		Buckets:   r.buckets,
	}, []string{"mode"})

	r.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"path", "method", "status"})

	r.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   r.buckets,
	}, []string{"path", "method"})

	return r
}

// ScenarioGenerated counts one built scenario.
func (r *Recorder) ScenarioGenerated(mode string) {
	r.scenariosGenerated.WithLabelValues(mode).Inc()
}

// ScenarioDropped counts one combination left out of a batch.
func (r *Recorder) ScenarioDropped(mode string) {
	r.scenariosDropped.WithLabelValues(mode).Inc()
}

// BatchCompleted observes how long a batch took.
func (r *Recorder) BatchCompleted(mode string, elapsed time.Duration) {
	r.batchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// RecordHTTPRequest counts a request and observes its latency.
func (r *Recorder) RecordHTTPRequest(path, method, status string, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(path, method, status).Inc()
	r.httpRequestDuration.WithLabelValues(path, method).Observe(elapsed.Seconds())
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
