package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FilesProcessed    *prometheus.CounterVec
	LinesRead         prometheus.Counter
	DistinctAddresses prometheus.Gauge
	ActiveWorkers     prometheus.Gauge
	FileScanSeconds   prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		FilesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_files_processed_total",
			Help: "Total number of log files handled by the worker pool.",
		}, []string{"status"}),
		LinesRead: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tally_lines_read_total",
			Help: "Total number of log lines read across all files.",
		}),
		DistinctAddresses: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "tally_distinct_addresses",
			Help: "Number of distinct addresses observed by the current scan.",
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "tally_active_workers",
			Help: "Current number of workers scanning their file range.",
		}),
		FileScanSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "tally_file_scan_duration_seconds",
			Help:    "Duration of scanning a single log file.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
