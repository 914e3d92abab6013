package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so several apps (tests) can coexist in one process.
type Collector struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	leaveDecisions *prometheus.CounterVec
	ledgerRefusals *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dayflow",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dayflow",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		leaveDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dayflow",
			Name:      "leave_decisions_total",
			Help:      "Leave request decisions by resulting status.",
		}, []string{"status"}),
		ledgerRefusals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dayflow",
			Name:      "leave_insufficient_balance_total",
			Help:      "Leave operations refused for insufficient balance, by category.",
		}, []string{"category"}),
	}
	c.registry.MustRegister(
		c.requests,
		c.duration,
		c.leaveDecisions,
		c.ledgerRefusals,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Record(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) LeaveDecided(status string) {
	if c == nil {
		return
	}
	c.leaveDecisions.WithLabelValues(status).Inc()
}

func (c *Collector) InsufficientBalance(category string) {
	if c == nil {
		return
	}
	c.ledgerRefusals.WithLabelValues(category).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
