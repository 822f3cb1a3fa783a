// Package metrics exposes Prometheus instrumentation for the API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the server. Each Collector owns
// its own registry so tests can build them freely.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recordsSaved    prometheus.Counter
	weatherFetches  *prometheus.CounterVec
	usersRegistered prometheus.Counter
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "headache_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "headache_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		recordsSaved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "headache_records_saved_total",
				Help: "Total number of headache records created or updated",
			},
		),
		weatherFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "headache_weather_fetches_total",
				Help: "Total number of upstream weather fetches by outcome",
			},
			[]string{"outcome"},
		),
		usersRegistered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "headache_users_registered_total",
				Help: "Total number of registered users",
			},
		),
	}

	c.registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.recordsSaved,
		c.weatherFetches,
		c.usersRegistered,
	)

	return c
}

func (c *Collector) RecordSaved()    { c.recordsSaved.Inc() }
func (c *Collector) UserRegistered() { c.usersRegistered.Inc() }

func (c *Collector) WeatherFetch(outcome string) {
	c.weatherFetches.WithLabelValues(outcome).Inc()
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency. The route template is used
// as the path label to keep cardinality bounded.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())

		c.requestsTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
