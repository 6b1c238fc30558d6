package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vanadisheart"

var (
	// UpstreamRequests counts calls to third-party APIs by provider and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Requests sent to upstream recipe and image APIs.",
	}, []string{"provider", "outcome"})

	// UpstreamDuration observes upstream call latency.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of upstream recipe and image API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})

	// ImageFallbacks counts recipes that got a fallback image.
	ImageFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_fallbacks_total",
		Help:      "Recipes whose image lookup failed and used a fallback image.",
	})

	// RecipesServed counts enriched recipes returned by the aggregation pipeline.
	RecipesServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_served_total",
		Help:      "Enriched recipes returned to clients.",
	})
)

// ObserveUpstream records the outcome and latency of one upstream call.
func ObserveUpstream(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	UpstreamDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
