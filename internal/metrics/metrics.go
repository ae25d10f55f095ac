// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the HTTP-level metrics plus counters for the side
// effects the mutation pipeline produces.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	votesRecorded   *prometheus.CounterVec
	notifications   prometheus.Counter
	historyEntries  prometheus.Counter
}

// NewCollector registers the metric set on reg and returns the collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "askdev_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "askdev_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		votesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "askdev_votes_total",
			Help: "Vote mutations by action (created, changed, removed).",
		}, []string{"action"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "askdev_notifications_emitted_total",
			Help: "Notifications written to user inboxes.",
		}),
		historyEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "askdev_history_entries_total",
			Help: "Activity history entries recorded.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.votesRecorded,
		c.notifications,
		c.historyEntries,
	)

	return c
}

func (c *Collector) RecordVote(action string) {
	c.votesRecorded.WithLabelValues(action).Inc()
}

func (c *Collector) RecordNotification() {
	c.notifications.Inc()
}

func (c *Collector) RecordHistoryEntry() {
	c.historyEntries.Inc()
}

// Middleware instruments every request with a count and a latency
// observation, labeled by the route template rather than the raw path.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.requests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
