// Package metrics exports Prometheus metrics about the requests the client
// sends to the catalog backend.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/catalogclient/internal/client/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector observes client exchanges. Each collector owns its registry so
// several can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_requests_total",
				Help:      "Requests sent to the catalog backend.",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "client_request_duration_seconds",
				Help:      "Round-trip time of backend requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_transport_failures_total",
				Help:      "Requests that got no response from the backend.",
			},
			[]string{"method", "route"},
		),
	}
	c.registry.MustRegister(c.requests, c.duration, c.failures)
	return c
}

// Observe implements client.Observer.
func (c *Collector) Observe(_ context.Context, ex client.Exchange) {
	route := Route(ex.Path)

	status := "none"
	if ex.StatusCode != 0 {
		status = strconv.Itoa(ex.StatusCode)
	}

	c.requests.WithLabelValues(ex.Method, route, status).Inc()
	c.duration.WithLabelValues(ex.Method, route).Observe(ex.Duration.Seconds())
	if ex.StatusCode == 0 && ex.Err != nil {
		c.failures.WithLabelValues(ex.Method, route).Inc()
	}
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Route replaces numeric path segments with ":id" to bound label
// cardinality.
func Route(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	parts := strings.Split(p, "/")
	for i, s := range parts {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
