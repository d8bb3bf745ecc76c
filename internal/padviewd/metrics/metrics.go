// Package metrics exposes Prometheus metrics for the padview daemon.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Frame loop metrics
	FramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padview_frames_total",
		Help: "Total frames rendered across all sessions",
	})

	FrameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "padview_frame_duration_seconds",
		Help:    "Time spent rendering and presenting one frame",
		Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .2},
	})

	// Fetch metrics
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padview_fetch_failures_total",
		Help: "Failed attempts to fetch the next launch",
	})

	// Session metrics
	SessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "padview_sessions_total",
		Help: "Countdown sessions by outcome (expired, refreshed, aborted)",
	}, []string{"outcome"})

	// Asset metrics
	AssetFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padview_asset_failures_total",
		Help: "Image downloads or decodes that failed and degraded to no background",
	})

	// Cache metrics
	CacheOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "padview_cache_operations_total",
		Help: "Launch cache operations by operation type and result",
	}, []string{"operation", "result"}) // operation: get|set, result: hit|miss|ok|error
)
