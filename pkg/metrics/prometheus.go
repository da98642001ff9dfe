package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts served requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ongaku",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ongaku",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "route"},
	)

	// UpstreamDuration measures calls to geocoding, forecast and generation backends.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ongaku",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of outbound upstream calls in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"upstream", "outcome"},
	)

	// GenerationTokensTotal accumulates token usage reported by the language model.
	GenerationTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ongaku",
			Name:      "generation_tokens_total",
			Help:      "Tokens reported by the generation backend",
		},
		[]string{"provider", "kind"},
	)
)

// RecordRequest records a served HTTP request.
func RecordRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordUpstream records one outbound call. outcome is "ok", "timeout" or "error".
func RecordUpstream(upstream, outcome string, elapsed time.Duration) {
	UpstreamDuration.WithLabelValues(upstream, outcome).Observe(elapsed.Seconds())
}

// RecordTokens adds usage reported by a generation call.
func RecordTokens(provider string, usage TokenUsage) {
	if usage.IsZero() {
		return
	}
	GenerationTokensTotal.WithLabelValues(provider, "prompt").Add(float64(usage.PromptTokens))
	GenerationTokensTotal.WithLabelValues(provider, "completion").Add(float64(usage.CompletionTokens))
}

// Outcome classifies an upstream error for RecordUpstream.
func Outcome(err error, timedOut bool) string {
	switch {
	case err == nil:
		return "ok"
	case timedOut:
		return "timeout"
	default:
		return "error"
	}
}
