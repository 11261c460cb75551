package gateway

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records gateway traffic as prometheus metrics. A nil *Collector
// is valid and records nothing, so the gateway never branches on wiring.
type Collector struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightshop_client_requests_total",
			Help: "Requests issued through the gateway by method and status class.",
		}, []string{"method", "status_class"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightshop_client_failures_total",
			Help: "Classified request failures by method and kind.",
		}, []string{"method", "kind"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lightshop_client_request_seconds",
			Help:    "Round-trip latency of gateway requests.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.requests, c.failures, c.latency)
	return c
}

// ObserveRequest records one completed round trip.
func (c *Collector) ObserveRequest(method string, status int, d time.Duration) {
	if c == nil {
		return
	}
	class := strconv.Itoa(status/100) + "xx"
	c.requests.WithLabelValues(method, class).Inc()
	c.latency.Observe(d.Seconds())
}

// ObserveFailure records one classified failure.
func (c *Collector) ObserveFailure(method, kind string) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(method, kind).Inc()
}
