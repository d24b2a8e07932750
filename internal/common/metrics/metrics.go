// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_completed_total",
			Help: "Total number of pipeline stage runs completed",
		},
		[]string{"stage"},
	)

	PipelineRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_failed_total",
			Help: "Total number of pipeline stage runs failed",
		},
		[]string{"stage", "error_code"},
	)

	PipelineRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_run_duration_seconds",
			Help: "Duration of pipeline stage processing in seconds",
		},
		[]string{"stage"},
	)

	TopicsCovered = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_topics_covered",
			Help:    "Topics covered per analyzed transcript",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		},
		[]string{"outcome"},
	)

	RepairsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repair_fixes_applied_total",
			Help: "Total number of structural repairs applied per rule",
		},
		[]string{"rule"},
	)

	ExtractionMethod = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractor_method_total",
			Help: "Extraction outcomes per strategy that produced the document",
		},
		[]string{"slot", "method"},
	)
)
