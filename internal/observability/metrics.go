package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route template and status code.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activity_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	usersRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_tracker",
		Name:      "users_registered_total",
		Help:      "Users successfully registered.",
	})
	logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_tracker",
		Name:      "logins_total",
		Help:      "Login attempts, by result (success or failure).",
	}, []string{"result"})
	activitiesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_tracker",
		Name:      "activities_created_total",
		Help:      "Activities successfully created.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, usersRegistered, logins, activitiesCreated)
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordUserRegistered increments the registration counter.
func RecordUserRegistered() {
	usersRegistered.Inc()
}

// RecordLogin counts a login attempt.
func RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	logins.WithLabelValues(result).Inc()
}

// RecordActivityCreated increments the activity creation counter.
func RecordActivityCreated() {
	activitiesCreated.Inc()
}
