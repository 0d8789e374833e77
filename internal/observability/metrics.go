// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// VideoViews counts view increments on published videos.
	VideoViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidtube_video_views_total",
		Help: "Total number of recorded video views",
	})

	// MediaUploads counts media host uploads by provider, asset kind and outcome.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_media_uploads_total",
		Help: "Total number of media uploads by provider, kind and outcome",
	}, []string{"provider", "kind", "outcome"})

	// MediaUploadLatency records media host upload latency.
	MediaUploadLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidtube_media_upload_latency_seconds",
		Help:    "Media upload latency in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"provider", "kind"})

	// RelationToggles counts subscription and like toggles by relation and result.
	RelationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_relation_toggles_total",
		Help: "Total number of relation toggles by relation and result",
	}, []string{"relation", "result"})
)

// ObserveUpload records the outcome and latency of one media upload.
func ObserveUpload(provider, kind string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	MediaUploads.WithLabelValues(provider, kind, outcome).Inc()
	MediaUploadLatency.WithLabelValues(provider, kind).Observe(time.Since(start).Seconds())
}

// ObserveToggle records one toggle of a relation.
func ObserveToggle(relation string, added bool) {
	result := "removed"
	if added {
		result = "added"
	}
	RelationToggles.WithLabelValues(relation, result).Inc()
}
