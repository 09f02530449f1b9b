package ovh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ovhctl",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Number of OVHcloud API requests by method and status.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ovhctl",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of OVHcloud API requests by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)
