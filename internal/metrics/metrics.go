package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "savant"

// Service labels outside the enumerated service list.
const (
	NoService       = "none"
	UnlistedService = "unlisted"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Enquiry metrics
var (
	EnquiriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enquiries_total",
			Help:      "Total number of enquiries handed to the mail relay",
		},
		[]string{"service", "status"},
	)

	EnquiryDispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enquiry_dispatch_duration_seconds",
			Help:      "Time spent in the SMTP conversation per enquiry",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)
)

// Calculator metrics
var (
	RepaymentCalculations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repayment_calculations_total",
			Help:      "Total number of server-side repayment calculations",
		},
	)
)
