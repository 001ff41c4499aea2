// Package metrics provides Prometheus metrics for scenario generation and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(r *Recorder) {
		if subsystem != "" {
			r.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(r *Recorder) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithRuntimeCollectors registers the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(r *Recorder) {
		r.runtime = true
	}
}
