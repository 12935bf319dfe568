package waitlist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission results used as the metric label.
const (
	resultAccepted    = "accepted"
	resultInvalid     = "invalid"
	resultFailed      = "failed"
	resultRateLimited = "rate_limited"
)

var (
	// MetricSubmissions counts waitlist submissions by outcome
	MetricSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waitlist_submissions_total",
		Help: "Total waitlist submissions by result",
	}, []string{"result"})

	// MetricDeliveryDuration tracks mail provider latency
	MetricDeliveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waitlist_delivery_duration_seconds",
		Help:    "Waitlist email delivery duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
)

// limiterCollector reports RateLimiter counters at scrape time.
type limiterCollector struct {
	limiter  *RateLimiter
	clients  *prometheus.Desc
	requests *prometheus.Desc
	denied   *prometheus.Desc
}

func newLimiterCollector(limiter *RateLimiter) *limiterCollector {
	return &limiterCollector{
		limiter:  limiter,
		clients:  prometheus.NewDesc("waitlist_rate_limit_clients", "Clients currently tracked by the rate limiter", nil, nil),
		requests: prometheus.NewDesc("waitlist_rate_limit_requests_total", "Requests checked by the rate limiter", nil, nil),
		denied:   prometheus.NewDesc("waitlist_rate_limit_denied_total", "Requests denied by the rate limiter", nil, nil),
	}
}

func (c *limiterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.clients
	ch <- c.requests
	ch <- c.denied
}

func (c *limiterCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.limiter.Stats()
	ch <- prometheus.MustNewConstMetric(c.clients, prometheus.GaugeValue, float64(stats.Clients))
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(stats.RequestCount))
	ch <- prometheus.MustNewConstMetric(c.denied, prometheus.CounterValue, float64(stats.DeniedCount))
}
