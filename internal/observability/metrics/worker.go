package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

type WorkerMetrics struct {
	service  string
	registry *prometheus.Registry

	processTotal       *prometheus.CounterVec
	processDuration    *prometheus.HistogramVec
	processInFlight    prometheus.Gauge
	stageDegradedTotal *prometheus.CounterVec
	analysisTotal      *prometheus.CounterVec
	queueLag           *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartdocs",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartdocs",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "smartdocs",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	stageDegradedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartdocs",
			Subsystem: "analysis",
			Name:      "stage_degraded_total",
			Help:      "Total pipeline stages that fell back to defaults.",
		},
		[]string{"service", "stage"},
	)
	analysisTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartdocs",
			Subsystem: "analysis",
			Name:      "completed_total",
			Help:      "Total completed analyses by file type and content outcome.",
		},
		[]string{"service", "file_type", "outcome"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartdocs",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document upload and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(processTotal, processDuration, processInFlight, stageDegradedTotal, analysisTotal, queueLag)

	return &WorkerMetrics{
		service:            service,
		registry:           registry,
		processTotal:       processTotal,
		processDuration:    processDuration,
		processInFlight:    processInFlight,
		stageDegradedTotal: stageDegradedTotal,
		analysisTotal:      analysisTotal,
		queueLag:           queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(m.service, status).Inc()
	m.processDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(m.service).Observe(lag.Seconds())
}

// StageDegraded and AnalysisFinished feed per-pipeline telemetry from
// the processing use case.
func (m *WorkerMetrics) StageDegraded(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	m.stageDegradedTotal.WithLabelValues(m.service, stage).Inc()
}

func (m *WorkerMetrics) AnalysisFinished(fileType domain.FileType, noContent bool) {
	outcome := "with_content"
	if noContent {
		outcome = "no_content"
	}
	m.analysisTotal.WithLabelValues(m.service, string(fileType), outcome).Inc()
}
