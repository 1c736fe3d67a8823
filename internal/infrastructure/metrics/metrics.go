package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the collectors of one registry so tests can build isolated
// instances.
type Metrics struct {
	registry *prometheus.Registry

	analyses           *prometheus.CounterVec
	scoringDuration    *prometheus.HistogramVec
	enrichmentFailures *prometheus.CounterVec
	documentsExtracted *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillsift_analyses_total",
				Help: "Resume analyses by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		scoringDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skillsift_scoring_duration_seconds",
				Help:    "Duration of compatibility scoring",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		enrichmentFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillsift_enrichment_failures_total",
				Help: "Market and industry lookups that failed and were skipped",
			},
			[]string{"lookup"},
		),
		documentsExtracted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillsift_documents_extracted_total",
				Help: "Uploaded documents by file type and outcome",
			},
			[]string{"type", "outcome"},
		),
	}
	reg.MustRegister(
		m.analyses,
		m.scoringDuration,
		m.enrichmentFailures,
		m.documentsExtracted,
		prometheus.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ObserveAnalysis(kind, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(kind, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.scoringDuration.WithLabelValues(kind).Observe(d.Seconds())
	}
}

func (m *Metrics) EnrichmentFailed(lookup string) {
	if m == nil {
		return
	}
	m.enrichmentFailures.WithLabelValues(lookup).Inc()
}

func (m *Metrics) DocumentExtracted(fileType, outcome string) {
	if m == nil {
		return
	}
	m.documentsExtracted.WithLabelValues(fileType, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
