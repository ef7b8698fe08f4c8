// Package metrics exposes Prometheus metrics for the extraction pipeline and
// the HTTP API. A custom registry keeps the default Go collectors out of the
// scrape output.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

var registry = prometheus.NewRegistry()

var (
	extractionsTotal = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "spanmark",
		Name:      "extractions_total",
		Help:      "Total extraction calls.",
	})
	extractionLatency = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: "spanmark",
		Name:      "extraction_duration_seconds",
		Help:      "End-to-end extraction latency.",
		Buckets:   prometheus.DefBuckets,
	})
	spansEmitted = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "spanmark",
		Name:      "spans_emitted_total",
		Help:      "Total spans in merged results.",
	})
	tierSpans = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "spanmark",
		Name:      "tier_spans_total",
		Help:      "Candidate spans produced per tier.",
	}, []string{"tier"})
	tierLatency = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spanmark",
		Name:      "tier_duration_seconds",
		Help:      "Per-tier extraction latency.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"tier"})

	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "spanmark",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, path, and status.",
	}, []string{"method", "path", "status"})
	httpDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spanmark",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and path.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// RecordExtraction updates the pipeline metrics from one call's stats.
func RecordExtraction(spanCount int, stats model.Stats) {
	extractionsTotal.Inc()
	extractionLatency.Observe(stats.TotalMillis / 1000)
	spansEmitted.Add(float64(spanCount))
	for _, tier := range stats.Tiers {
		tierSpans.WithLabelValues(string(tier.Source)).Add(float64(tier.Count))
		tierLatency.WithLabelValues(string(tier.Source)).Observe(tier.Millis / 1000)
	}
}

// RecordHTTPRequest updates the HTTP metrics for one served request.
func RecordHTTPRequest(method, path string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler serves the registry for GET /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
