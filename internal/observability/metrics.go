package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	apiRequestsTotal        *prometheus.CounterVec
	apiLatencySeconds       *prometheus.HistogramVec
	activitiesRecordedTotal *prometheus.CounterVec
	contactSubmissionsTotal *prometheus.CounterVec
	backendRequestsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "techforge_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "techforge_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		activitiesRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "techforge_activities_recorded_total",
			Help: "Total number of user activities recorded, by kind.",
		}, []string{"kind"})

		contactSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "techforge_contact_submissions_total",
			Help: "Total number of contact submissions, by outcome.",
		}, []string{"outcome"})

		backendRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "techforge_backend_requests_total",
			Help: "Total number of proxied backend API requests, by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			activitiesRecordedTotal,
			contactSubmissionsTotal,
			backendRequestsTotal,
		)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for served requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// ActivitiesRecorded exposes the counter for recorded activities.
func ActivitiesRecorded() *prometheus.CounterVec {
	RegisterMetrics()
	return activitiesRecordedTotal
}

// ContactSubmissions exposes the counter for contact submission outcomes.
func ContactSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return contactSubmissionsTotal
}

// BackendRequests exposes the counter for proxied backend requests.
func BackendRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return backendRequestsTotal
}
