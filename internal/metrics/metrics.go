package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostels_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostels_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	BookingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostels_bookings_submitted_total",
			Help: "Booking submissions by outcome",
		},
		[]string{"result"}, // "created", "invalid", "unavailable", "not_found", "failed"
	)

	BookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostels_booking_transitions_total",
			Help: "Booking status transitions applied",
		},
		[]string{"from", "to"},
	)

	ListingSearches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostels_listing_searches_total",
			Help: "Total listing searches",
		},
	)

	BookingExports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostels_booking_exports_total",
			Help: "Total booking spreadsheet exports",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostels_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)

	BlockedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostels_blocked_requests_total",
			Help: "Total blocked requests",
		},
		[]string{"reason"},
	)

	// Infrastructure metrics
	HostelCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostels_hostel_cache_total",
			Help: "Hostel cache lookups",
		},
		[]string{"result"}, // "hit" or "miss"
	)

	RedisLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostels_redis_latency_seconds",
			Help:    "Redis operation latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
	)

	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostels_store_latency_seconds",
			Help:    "SQL store query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1},
		},
		[]string{"backend"},
	)
)
