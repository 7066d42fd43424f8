package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbl_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubbl_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbl_appointment_admissions_total",
			Help: "Total number of appointment admission attempts",
		},
		[]string{"outcome"},
	)

	CancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hubbl_appointment_cancellations_total",
			Help: "Total number of appointment cancellations",
		},
	)

	DeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hubbl_appointment_deletions_total",
			Help: "Total number of appointment deletions",
		},
	)

	AvailabilityQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hubbl_availability_queries_total",
			Help: "Total number of availability searches served",
		},
	)

	AvailabilityCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbl_availability_cache_lookups_total",
			Help: "Availability cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAdmission(outcome string) {
	AdmissionsTotal.WithLabelValues(outcome).Inc()
}

func RecordCancellation() {
	CancellationsTotal.Inc()
}

func RecordDeletion() {
	DeletionsTotal.Inc()
}

func RecordAvailabilityQuery() {
	AvailabilityQueriesTotal.Inc()
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	AvailabilityCacheLookups.WithLabelValues(result).Inc()
}
