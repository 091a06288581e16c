// Package metrics exposes Prometheus metrics for the classification service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "traffic_classifier"

// Row stages counted by Rows.
const (
	StageReceived   = "received"
	StageClassified = "classified"
	StageDropped    = "dropped"
)

// Metrics holds the service collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	// Requests counts prediction requests by HTTP status.
	Requests *prometheus.CounterVec
	// Rows counts CSV rows by pipeline stage.
	Rows *prometheus.CounterVec
	// Predictions counts predicted labels.
	Predictions *prometheus.CounterVec
	// Duration observes end-to-end prediction latency in seconds.
	Duration prometheus.Histogram
	// ModelLoaded is 1 when a model is serving, 0 otherwise.
	ModelLoaded prometheus.Gauge
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_requests_total",
			Help:      "Prediction requests by response status.",
		}, []string{"status"}),
		Rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "CSV rows by pipeline stage.",
		}, []string{"stage"}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predicted labels.",
		}, []string{"label"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent classifying an upload.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_loaded",
			Help:      "Whether a classifier model is loaded.",
		}),
	}

	reg.MustRegister(m.Requests, m.Rows, m.Predictions, m.Duration, m.ModelLoaded)
	return m
}

// ObserveRequest counts one prediction request.
func (m *Metrics) ObserveRequest(status int) {
	m.Requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveDuration records the latency of one prediction request.
func (m *Metrics) ObserveDuration(d time.Duration) {
	m.Duration.Observe(d.Seconds())
}

// ObserveRows adds n rows to a stage.
func (m *Metrics) ObserveRows(stage string, n int) {
	m.Rows.WithLabelValues(stage).Add(float64(n))
}

// ObserveLabels adds the per-label counts of one run.
func (m *Metrics) ObserveLabels(counts map[string]int) {
	for label, n := range counts {
		m.Predictions.WithLabelValues(label).Add(float64(n))
	}
}

// SetModelLoaded records whether a model is serving.
func (m *Metrics) SetModelLoaded(loaded bool) {
	if loaded {
		m.ModelLoaded.Set(1)
		return
	}
	m.ModelLoaded.Set(0)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// RegisterRoutes mounts GET /metrics.
func (m *Metrics) RegisterRoutes(app fiber.Router) {
	app.Get("/metrics", m.Handler())
}
