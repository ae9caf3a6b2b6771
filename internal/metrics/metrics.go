// Package metrics считает результаты извлечения и сохраняет их в текстовый файл
// в формате Prometheus для node_exporter textfile collector.
package metrics

import (
	"context"
	"strings"
	"time"

	"fwPull/internal/batch"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "fwpull"

	resultSuccess = "success"
	resultFailure = "failure"

	unknownVendor = "unknown"
)

// Recorder реализует batch.Observer. Метрики живут в собственном реестре.
type Recorder struct {
	registry *prometheus.Registry
	path     string
	log      *zap.Logger

	extractionsTotal   *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	lastRunTimestamp   prometheus.Gauge
	lastRunRecords     prometheus.Gauge
}

// New создает рекордер. При пустом path файл не пишется.
func New(path string, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		path:     path,
		log:      log.With(zap.String("component", "metrics")),

		extractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Total number of firmware extractions by vendor and result",
			},
			[]string{"vendor", "result"},
		),
		extractionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "extraction_duration_seconds",
				Help:      "Firmware extraction duration in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"vendor"},
		),
		lastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished run",
		}),
		lastRunRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_records",
			Help:      "Number of records produced by the last run",
		}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) RunStarted(ctx context.Context, runID uuid.UUID, startedAt time.Time, total int) {}

func (r *Recorder) ItemDone(ctx context.Context, o batch.Outcome) {
	vendor := unknownVendor
	if o.KnownKind {
		vendor = o.Kind.String()
	}

	result := resultSuccess
	if o.Err != nil {
		result = resultFailure
	}

	r.extractionsTotal.WithLabelValues(vendor, result).Inc()
	if o.KnownKind {
		r.extractionDuration.WithLabelValues(vendor).Observe(o.Duration.Seconds())
	}
}

func (r *Recorder) RunFinished(ctx context.Context, res batch.Result) {
	r.lastRunTimestamp.Set(float64(res.FinishedAt.Unix()))
	r.lastRunRecords.Set(float64(len(res.Records)))

	if err := r.WriteTextfile(); err != nil {
		r.log.Warn("Не удалось записать файл метрик", zap.String("path", r.path), zap.Error(err))
	}
}

// WriteTextfile пишет текущее состояние реестра в r.path.
func (r *Recorder) WriteTextfile() error {
	if strings.TrimSpace(r.path) == "" {
		return nil
	}
	return prometheus.WriteToTextfile(r.path, r.registry)
}
