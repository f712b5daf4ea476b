package metrics

import (
	"errors"
	"time"

	"github.com/contre95/playdir/src/media"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdir_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playdir_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Listing metrics
var (
	ListingFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdir_listing_fetches_total",
			Help: "Total number of manifest and index page fetches",
		},
		[]string{"kind", "outcome"},
	)

	ListingFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playdir_listing_fetch_duration_seconds",
			Help:    "Listing fetch duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Resolver metrics
var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdir_resolutions_total",
			Help: "Total number of playlist resolutions",
		},
		[]string{"outcome"},
	)

	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playdir_resolution_duration_seconds",
			Help:    "End to end playlist resolution duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ResolvedEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playdir_resolved_entries_total",
			Help: "Total number of playable entries produced by resolutions",
		},
	)
)

// Playback metrics
var (
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playdir_sessions_active",
			Help: "Number of playback sessions currently held in memory",
		},
	)
)

// ObserveFetch records one listing fetch.
func ObserveFetch(kind media.ContentKind, err error, elapsed time.Duration) {
	ListingFetchDuration.Observe(elapsed.Seconds())
	ListingFetchesTotal.WithLabelValues(string(kind), outcome(err)).Inc()
}

// ObserveResolution records one finished resolution.
func ObserveResolution(entries int, err error, elapsed time.Duration) {
	ResolutionDuration.Observe(elapsed.Seconds())
	ResolutionsTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		ResolvedEntriesTotal.Add(float64(entries))
	}
}

func outcome(err error) string {
	var statusErr *media.StatusError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &statusErr):
		return "status_error"
	default:
		return "error"
	}
}
