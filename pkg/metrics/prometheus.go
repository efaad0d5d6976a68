package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus metrics for the dashboard engine.
type Recorder struct {
	fetchesTotal    *prometheus.CounterVec
	staleDiscarded  *prometheus.CounterVec
	feedAge         *prometheus.GaugeVec
	activeOverrides prometheus.Gauge
	fetchLatency    *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_feed_fetches_total",
				Help: "Total feed fetch attempts by outcome",
			},
			[]string{"feed", "outcome"},
		),
		staleDiscarded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_stale_responses_discarded_total",
				Help: "Responses discarded because a newer request token was already applied",
			},
			[]string{"feed"},
		),
		feedAge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "terminal_feed_age_seconds",
				Help: "Seconds since the last applied snapshot per feed",
			},
			[]string{"feed"},
		),
		activeOverrides: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "terminal_active_overrides",
				Help: "Number of active manual overrides",
			},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "terminal_feed_fetch_seconds",
				Help:    "Feed fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"feed"},
		),
		commandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_commands_total",
				Help: "Dispatched console commands by kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordFetch records a feed fetch attempt.
func (r *Recorder) RecordFetch(feed, outcome string) {
	r.fetchesTotal.WithLabelValues(feed, outcome).Inc()
}

// RecordStaleDiscard records a response dropped by the token guard.
func (r *Recorder) RecordStaleDiscard(feed string) {
	r.staleDiscarded.WithLabelValues(feed).Inc()
}

// RecordFeedAge records the age of the current snapshot.
func (r *Recorder) RecordFeedAge(feed string, seconds float64) {
	r.feedAge.WithLabelValues(feed).Set(seconds)
}

// RecordActiveOverrides records the active override count.
func (r *Recorder) RecordActiveOverrides(n int) {
	r.activeOverrides.Set(float64(n))
}

// RecordFetchLatency records feed fetch duration in seconds.
func (r *Recorder) RecordFetchLatency(feed string, seconds float64) {
	r.fetchLatency.WithLabelValues(feed).Observe(seconds)
}

// RecordCommand records a dispatched console command.
func (r *Recorder) RecordCommand(kind string) {
	r.commandsTotal.WithLabelValues(kind).Inc()
}
