// Package metrics exposes ledger activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/ledger"
	"github.com/mmynk/budgetwise/internal/models"
)

const namespace = "budgetwise"

// Metrics holds the collectors for one server instance.
type Metrics struct {
	registry *prometheus.Registry

	friendsAdded   prometheus.Counter
	splitsApplied  *prometheus.CounterVec
	submitsSkipped *prometheus.CounterVec
	owed           prometheus.Gauge
	owing          prometheus.Gauge
	rpcRequests    *prometheus.CounterVec
	rpcDuration    *prometheus.HistogramVec
}

// New creates the collectors on a private registry, along with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		friendsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friends_added_total",
			Help:      "Friends added through the add-friend form.",
		}),
		splitsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_applied_total",
			Help:      "Bill splits applied to a friend's balance, by payer.",
		}, []string{"payer"}),
		submitsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submits_skipped_total",
			Help:      "Form submits ignored for missing fields, by form.",
		}, []string{"form"}),
		owed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance_owed",
			Help:      "Total friends owe the user.",
		}),
		owing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance_owing",
			Help:      "Total the user owes friends.",
		}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.friendsAdded,
		m.splitsApplied,
		m.submitsSkipped,
		m.owed,
		m.owing,
		m.rpcRequests,
		m.rpcDuration,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SetBalances updates the owed/owing gauges from a friend list.
func (m *Metrics) SetBalances(friends []models.Friend) {
	summary := calculator.Summarize(friends)
	m.owed.Set(summary.Owed)
	m.owing.Set(summary.Owing)
}

// Observe is a ledger.Observer recording session events.
func (m *Metrics) Observe(ev ledger.Event) {
	switch ev.Kind {
	case ledger.EventFriendAdded:
		m.friendsAdded.Inc()
	case ledger.EventSplitApplied:
		m.splitsApplied.WithLabelValues(string(ev.Settlement.Payer)).Inc()
		m.SetBalances(ev.State.Friends)
	case ledger.EventSubmitSkipped:
		m.submitsSkipped.WithLabelValues(ev.Form).Inc()
	}
}

// ObserveRPC records one finished RPC call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}
