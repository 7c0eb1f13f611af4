// Package metrics exposes the Prometheus instruments of the analysis engine,
// the envelope cache and the upstream fetch client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

const namespace = "opsatlas"

// Registry holds every instrument. Each Registry owns its own Prometheus
// registry so several can coexist in one process.
type Registry struct {
	reg *prometheus.Registry

	AnalysisDuration *prometheus.HistogramVec
	Analyses         *prometheus.CounterVec
	DomainFailures   *prometheus.CounterVec
	ActiveAlerts     *prometheus.GaugeVec
	SnapshotSequence prometheus.Gauge

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	CacheErrors prometheus.Counter

	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Duration of one envelope analysis in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"state"},
		),
		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Published analysis snapshots by final state",
			},
			[]string{"state"},
		),
		DomainFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "domain_failures_total",
				Help:      "Domain-scoped processing failures by domain",
			},
			[]string{"domain"},
		),
		ActiveAlerts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_alerts",
				Help:      "Alerts in the current snapshot by severity",
			},
			[]string{"severity"},
		),
		SnapshotSequence: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snapshot_sequence",
				Help:      "Sequence number of the current snapshot",
			},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelope_cache_hits_total",
			Help:      "Envelope cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelope_cache_misses_total",
			Help:      "Envelope cache misses",
		}),
		CacheErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelope_cache_errors_total",
			Help:      "Envelope cache read or write failures",
		}),
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Upstream metrics API requests by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream metrics API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	r.reg.MustRegister(
		r.AnalysisDuration,
		r.Analyses,
		r.DomainFailures,
		r.ActiveAlerts,
		r.SnapshotSequence,
		r.CacheHits,
		r.CacheMisses,
		r.CacheErrors,
		r.UpstreamRequests,
		r.UpstreamDuration,
	)

	return r
}

// Handler serves this registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer is exposed for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveAnalysis records one published snapshot and how long it took to
// produce.
func (r *Registry) ObserveAnalysis(s domain.Snapshot, took time.Duration) {
	state := s.State.String()
	r.AnalysisDuration.WithLabelValues(state).Observe(took.Seconds())
	r.Analyses.WithLabelValues(state).Inc()
	r.SnapshotSequence.Set(float64(s.Sequence))

	var counts domain.AlertCounts
	if s.Result != nil {
		counts = domain.CountAlerts(s.Result.Alerts)
		for _, st := range []domain.DomainStatus{
			s.Result.PlatformRatings.Status,
			s.Result.StoreOperations.Status,
			s.Result.HourlySales.Status,
		} {
			if !st.Succeeded() {
				r.DomainFailures.WithLabelValues(st.Domain.String()).Inc()
			}
		}
	}
	r.ActiveAlerts.WithLabelValues(domain.SeverityInfo.String()).Set(float64(counts.Info))
	r.ActiveAlerts.WithLabelValues(domain.SeverityWarning.String()).Set(float64(counts.Warning))
	r.ActiveAlerts.WithLabelValues(domain.SeverityError.String()).Set(float64(counts.Error))
	r.ActiveAlerts.WithLabelValues(domain.SeverityCritical.String()).Set(float64(counts.Critical))
}

func (r *Registry) RecordCacheHit()   { r.CacheHits.Inc() }
func (r *Registry) RecordCacheMiss()  { r.CacheMisses.Inc() }
func (r *Registry) RecordCacheError() { r.CacheErrors.Inc() }

// RecordUpstream records one upstream attempt. outcome is a short label such
// as ok, client_error, server_error or transport_error.
func (r *Registry) RecordUpstream(outcome string, took time.Duration) {
	r.UpstreamRequests.WithLabelValues(outcome).Inc()
	r.UpstreamDuration.Observe(took.Seconds())
}
