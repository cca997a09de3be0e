// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts gameplay and HTTP activity.
type Collector struct {
	httpRequests     *prometheus.CounterVec
	quizCompletions  prometheus.Counter
	eventCompletions prometheus.Counter
	xpGranted        prometheus.Counter
	coinsGranted     prometheus.Counter
	badgesAwarded    prometheus.Counter
}

// NewCollector registers the EcoQuest metrics on reg and returns the collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoquest_http_requests_total",
			Help: "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		quizCompletions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoquest_quiz_completions_total",
			Help: "Quiz completion submissions accepted.",
		}),
		eventCompletions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoquest_event_completions_total",
			Help: "Community event completions granted.",
		}),
		xpGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoquest_xp_granted_total",
			Help: "Total XP granted through the reward ledger.",
		}),
		coinsGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoquest_coins_granted_total",
			Help: "Total coins granted through the reward ledger.",
		}),
		badgesAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoquest_badges_awarded_total",
			Help: "Badges newly awarded by event completions.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.quizCompletions,
		c.eventCompletions,
		c.xpGranted,
		c.coinsGranted,
		c.badgesAwarded,
	)
	return c
}

// RecordHTTPRequest counts one handled request.
func (c *Collector) RecordHTTPRequest(method, path string, status int) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// RecordQuizCompletion counts one accepted quiz submission and its XP grant.
func (c *Collector) RecordQuizCompletion(xp int64) {
	c.quizCompletions.Inc()
	c.xpGranted.Add(float64(xp))
}

// RecordEventCompletion counts one granted event completion and its rewards.
func (c *Collector) RecordEventCompletion(xp, coins int64, newBadges int) {
	c.eventCompletions.Inc()
	c.xpGranted.Add(float64(xp))
	c.coinsGranted.Add(float64(coins))
	c.badgesAwarded.Add(float64(newBadges))
}

// SetupMetricsRoute returns the HTTP handler serving the registry.
func SetupMetricsRoute(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
