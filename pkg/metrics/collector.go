package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds every metric this encoder instruments, registered against
// its own registry so tests can spin up isolated collectors without
// colliding on prometheus.DefaultRegisterer.
type Collector struct {
	registry *prometheus.Registry

	EncodeRequestsTotal   *prometheus.CounterVec
	EncodeDurationSeconds *prometheus.HistogramVec
	EncodeErrorsTotal     *prometheus.CounterVec
	TrajectorySamples     prometheus.Counter
	ActiveEncodes         prometheus.Gauge
}

// NewCollector creates and registers the metric set.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		EncodeRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ft8encode_requests_total",
			Help: "Total number of Encode calls, labeled by classified message subtype.",
		}, []string{"subtype"}),
		EncodeDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ft8encode_duration_seconds",
			Help:    "Time spent running the full encode pipeline.",
			Buckets: prometheus.DefBuckets,
		}, []string{"subtype"}),
		EncodeErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ft8encode_errors_total",
			Help: "Total number of Encode calls that returned an error, labeled by error kind.",
		}, []string{"kind"}),
		TrajectorySamples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ft8encode_trajectory_samples_total",
			Help: "Cumulative number of frequency-trajectory samples synthesized.",
		}),
		ActiveEncodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ft8encode_active_encodes",
			Help: "Number of Encode calls currently in flight.",
		}),
	}

	registry.MustRegister(
		c.EncodeRequestsTotal,
		c.EncodeDurationSeconds,
		c.EncodeErrorsTotal,
		c.TrajectorySamples,
		c.ActiveEncodes,
	)

	return c
}

// Registry returns the collector's registry for use with promhttp.Handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveEncode records one completed Encode call.
func (c *Collector) ObserveEncode(subtype string, seconds float64, trajectoryLen int) {
	c.EncodeRequestsTotal.WithLabelValues(subtype).Inc()
	c.EncodeDurationSeconds.WithLabelValues(subtype).Observe(seconds)
	c.TrajectorySamples.Add(float64(trajectoryLen))
}

// ObserveError records one failed Encode call.
func (c *Collector) ObserveError(kind string) {
	c.EncodeErrorsTotal.WithLabelValues(kind).Inc()
}
