// Package metrics exposes Prometheus collectors for the generation pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "landing"

var (
	ImageProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_provider_requests_total",
		Help:      "Image provider calls by provider and outcome (ok, empty, error).",
	}, []string{"provider", "outcome"})

	FallbackImages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_fallback_images_total",
		Help:      "Synthetic placeholder images handed out.",
	})

	CompletionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_requests_total",
		Help:      "Text completion calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Wall-clock time of full page generations.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"outcome"})

	IntakeTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intake_turns_total",
		Help:      "Conversation turns by resulting state.",
	}, []string{"state"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
