package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobName groups this tracker's series on the Pushgateway.
const JobName = "wallet_tracker"

// Metrics holds the collectors for one tracker run. A run is short lived, so
// the values are pushed to a Pushgateway rather than scraped.
type Metrics struct {
	registry *prometheus.Registry

	fetchTotal          *prometheus.CounterVec
	fetchDuration       prometheus.Histogram
	transactionsFetched prometheus.Gauge
	latestTxFailed      prometheus.Gauge
	notifyTotal         *prometheus.CounterVec
	lastRunTimestamp    prometheus.Gauge
}

// NewMetrics registers all collectors on registry. If registry is nil a fresh
// one is created.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		fetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_tracker_fetch_total",
				Help: "Explorer txlist requests by outcome (ok, empty, api_error, transport_error)",
			},
			[]string{"outcome"},
		),
		fetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wallet_tracker_fetch_duration_seconds",
				Help:    "Duration of explorer txlist requests in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
		),
		transactionsFetched: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wallet_tracker_transactions_fetched",
				Help: "Number of transactions returned by the last fetch",
			},
		),
		latestTxFailed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wallet_tracker_latest_transaction_failed",
				Help: "1 if the newest transaction was flagged as failed, 0 otherwise",
			},
		),
		notifyTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_tracker_notify_total",
				Help: "Telegram notifications by status (success, error)",
			},
			[]string{"status"},
		),
		lastRunTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wallet_tracker_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFetch counts one explorer request and stores how many transactions it
// returned.
func (m *Metrics) RecordFetch(outcome string, duration time.Duration, count int) {
	m.fetchTotal.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(duration.Seconds())
	m.transactionsFetched.Set(float64(count))
}

// RecordLatestFailed flags whether the newest transaction failed.
func (m *Metrics) RecordLatestFailed(failed bool) {
	if failed {
		m.latestTxFailed.Set(1)
		return
	}
	m.latestTxFailed.Set(0)
}

// RecordNotify counts a Telegram delivery as success or error.
func (m *Metrics) RecordNotify(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.notifyTotal.WithLabelValues(status).Inc()
}

// MarkRun stores the finish time of the run.
func (m *Metrics) MarkRun(t time.Time) {
	m.lastRunTimestamp.Set(float64(t.Unix()))
}

// Push sends the current values to the Pushgateway at url, grouped by node.
func (m *Metrics) Push(ctx context.Context, url, node string) error {
	err := push.New(url, JobName).
		Grouping("node", node).
		Gatherer(m.registry).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
