// Пакет metrics содержит Prometheus-метрики filedesk.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filedesk_files_ingested_total",
		Help: "Количество загруженных файлов.",
	})
	FilesRenamed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filedesk_files_renamed_total",
		Help: "Количество файлов, переименованных массовым переименованием.",
	})
	FilesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filedesk_files_deleted_total",
		Help: "Количество удаленных файлов.",
	})
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filedesk_exports_total",
		Help: "Количество экспортов в ZIP по статусу.",
	}, []string{"status"})
	ActiveWorkspaces = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filedesk_workspaces_active",
		Help: "Текущее количество рабочих пространств в памяти.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filedesk_http_requests_total",
		Help: "Общее количество HTTP-запросов",
	}, []string{"method", "route", "status"})
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "filedesk_http_request_duration_seconds",
		Help:    "Длительность HTTP-запросов в секундах",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusEmpty  = "empty_selection"
)
