package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ziahq/specstudio/importer"
	"github.com/ziahq/specstudio/validator"
)

// metrics holds the service's Prometheus collectors on a private registry
// so tests can run multiple services in one process.
type metrics struct {
	registry           *prometheus.Registry
	validations        *prometheus.CounterVec
	validationDuration prometheus.Histogram
	imports            *prometheus.CounterVec
	renders            *prometheus.CounterVec
	liveSessions       prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "specstudio",
			Name:      "validations_total",
			Help:      "Validation passes by worst severity of the result.",
		}, []string{"severity"}),
		validationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "specstudio",
			Name:      "validation_duration_seconds",
			Help:      "Wall time of one validation pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "specstudio",
			Name:      "imports_total",
			Help:      "Import merges by parse outcome.",
		}, []string{"outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "specstudio",
			Name:      "renders_total",
			Help:      "Document renders by output format.",
		}, []string{"format"}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "specstudio",
			Name:      "ws_sessions_active",
			Help:      "Open live-validation WebSocket sessions.",
		}),
	}
	m.registry.MustRegister(m.validations, m.validationDuration, m.imports, m.renders, m.liveSessions)
	return m
}

func (m *metrics) observeValidation(result *validator.Result, elapsed time.Duration) {
	m.validations.WithLabelValues(result.Severity.String()).Inc()
	m.validationDuration.Observe(elapsed.Seconds())
}

func (m *metrics) observeImport(outcome importer.Outcome) {
	label := "full"
	if !outcome.FullyParsed {
		label = "fallback"
	}
	m.imports.WithLabelValues(label).Inc()
}

func (m *metrics) observeRender(format string) {
	m.renders.WithLabelValues(format).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
