package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gym"

// Metrics holds all Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	BillsCreatedTotal     prometheus.Counter
	BillsDeletedTotal     prometheus.Counter
	RenewalsTotal         prometheus.Counter
	PaymentsTotal         prometheus.Counter
	AmountCollectedTotal  prometheus.Counter
	VersionConflictsTotal *prometheus.CounterVec

	// Outbox metrics
	OutboxPublishedTotal *prometheus.CounterVec
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics creates and registers all collectors on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BillsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_created_total",
			Help:      "Bills created at intake",
		}),
		BillsDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_deleted_total",
			Help:      "Bills deleted",
		}),
		RenewalsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewals_total",
			Help:      "Membership renewals",
		}),
		PaymentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Payment events recorded",
		}),
		AmountCollectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_collected_total",
			Help:      "Sum of positive payment deltas",
		}),
		VersionConflictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bill_version_conflicts_total",
				Help:      "Bill writes rejected because of a concurrent modification",
			},
			[]string{"operation"},
		),
		OutboxPublishedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_messages_total",
				Help:      "Outbox messages relayed to the broker",
			},
			[]string{"topic", "status"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BillsCreatedTotal,
		m.BillsDeletedTotal,
		m.RenewalsTotal,
		m.PaymentsTotal,
		m.AmountCollectedTotal,
		m.VersionConflictsTotal,
		m.OutboxPublishedTotal,
	)
	return m
}

func (m *Metrics) BillCreated() {
	if m == nil {
		return
	}
	m.BillsCreatedTotal.Inc()
}

func (m *Metrics) BillDeleted() {
	if m == nil {
		return
	}
	m.BillsDeletedTotal.Inc()
}

func (m *Metrics) Renewed() {
	if m == nil {
		return
	}
	m.RenewalsTotal.Inc()
}

// PaymentRecorded counts the event; only positive deltas add to the collected amount.
func (m *Metrics) PaymentRecorded(delta float64) {
	if m == nil {
		return
	}
	m.PaymentsTotal.Inc()
	if delta > 0 {
		m.AmountCollectedTotal.Add(delta)
	}
}

func (m *Metrics) VersionConflict(operation string) {
	if m == nil {
		return
	}
	m.VersionConflictsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) OutboxPublished(topic string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.OutboxPublishedTotal.WithLabelValues(topic, status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
